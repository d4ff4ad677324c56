package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"pobackend/internal/canonical"
	"pobackend/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type partyInput struct {
	Name         string `validate:"required"`
	Address      string `validate:"required"`
	CityStateZip string `validate:"required"`
	Country      string `validate:"required"`
}

type headerInput struct {
	PONumber  string `validate:"required"`
	LineItems int    `validate:"gt=0"`
}

// Upper bounds follow the line_items column precision.
type lineItemInput struct {
	Description string  `validate:"required"`
	Quantity    float64 `validate:"finite,gt=0,lte=9999999999.99"`
	Rate        float64 `validate:"finite,gte=0,lte=9999999999.99"`
	GST         float64 `validate:"finite,gte=0,lte=999.99"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// validateCreate is the gate in front of persistence. Checks run in a fixed
// order and the first failure is reported.
func validateCreate(v *validator.Validate, p model.PurchaseOrderPayload) error {
	company := partyInput{
		Name:         strings.TrimSpace(p.Company.Name.String()),
		Address:      strings.TrimSpace(p.Company.Address.String()),
		CityStateZip: strings.TrimSpace(p.Company.CityStateZip.String()),
		Country:      strings.TrimSpace(p.Company.Country.String()),
	}
	if err := v.Struct(company); err != nil {
		return invalid("Company information is required: name, address, cityStateZip, country")
	}

	vendor := partyInput{
		Name:         strings.TrimSpace(p.Vendor.Name.String()),
		Address:      strings.TrimSpace(p.Vendor.Address.String()),
		CityStateZip: strings.TrimSpace(p.Vendor.CityStateZip.String()),
		Country:      strings.TrimSpace(p.Vendor.Country.String()),
	}
	if err := v.Struct(vendor); err != nil {
		return invalid("Vendor information is required: name, address, cityStateZip, country")
	}

	header := headerInput{
		PONumber:  strings.TrimSpace(p.OrderInfo.PONumber.String()),
		LineItems: len(p.LineItems),
	}
	if err := v.Struct(header); err != nil {
		if fieldFailed(err, "PONumber") {
			return invalid("PO number is required")
		}
		return invalid("At least one line item is required")
	}

	for i, it := range p.LineItems {
		in := lineItemInput{
			Description: strings.TrimSpace(it.Description.String()),
			Quantity:    toFloat(it.Quantity, math.NaN()),
			Rate:        toFloat(it.Rate, math.NaN()),
			GST:         toFloat(it.GST, 0),
		}
		err := v.Struct(in)
		if err == nil {
			if !withinColumn(canonical.PayloadLineItem(it).Amount) {
				return invalid(fmt.Sprintf("Line item %d: amount must be <= 9999999999.99", i+1))
			}
			continue
		}
		switch {
		case fieldFailed(err, "Description"):
			return invalid(fmt.Sprintf("Line item %d: description is required", i+1))
		case fieldFailed(err, "Quantity"):
			if overLimit(in.Quantity) {
				return invalid(fmt.Sprintf("Line item %d: quantity must be <= 9999999999.99", i+1))
			}
			return invalid(fmt.Sprintf("Line item %d: quantity must be > 0", i+1))
		case fieldFailed(err, "Rate"):
			if overLimit(in.Rate) {
				return invalid(fmt.Sprintf("Line item %d: rate must be <= 9999999999.99", i+1))
			}
			return invalid(fmt.Sprintf("Line item %d: rate must be >= 0", i+1))
		default:
			if overLimit(in.GST) {
				return invalid(fmt.Sprintf("Line item %d: gst must be <= 999.99", i+1))
			}
			return invalid(fmt.Sprintf("Line item %d: gst must be >= 0", i+1))
		}
	}

	for _, n := range []model.Number{p.SubTotal, p.TaxAmount, p.Total} {
		if !withinColumn(canonical.Amount(n)) {
			return invalid("Order totals must be within +/-9999999999.99")
		}
	}
	if canonical.Amount(p.TaxRate).Abs().GreaterThan(maxRate) {
		return invalid("Tax rate must be within +/-999.99")
	}

	if d := p.OrderInfo.OrderDate.String(); !validDate(d) {
		return invalid("Order date is not a valid date")
	}
	if d := p.OrderInfo.DeliveryDate.String(); !validDate(d) {
		return invalid("Delivery date is not a valid date")
	}
	return nil
}

func fieldFailed(err error, field string) bool {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	for _, fe := range errs {
		if fe.Field() == field {
			return true
		}
	}
	return false
}

// toFloat parses n, returning empty when n is blank and NaN when it does not
// parse.
var (
	maxAmount = decimal.RequireFromString("9999999999.99")
	maxRate   = decimal.RequireFromString("999.99")
)

// withinColumn reports whether d fits a decimal(12,2) column.
func withinColumn(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(maxAmount)
}

func overLimit(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

func toFloat(n model.Number, empty float64) float64 {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return empty
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func validDate(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	_, ok := canonical.ParseDate(s)
	return ok
}
