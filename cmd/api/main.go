package main

import (
	"fmt"
	"os"
)

// @title           Purchase Order API
// @version         1.0
// @description     Stores purchase orders, detects semantic duplicates and mirrors orders into Google Sheets.
// @host            localhost:5000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
