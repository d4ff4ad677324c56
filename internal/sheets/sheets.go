// Package sheets mirrors purchase orders into a Google spreadsheet.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// ValueInputOption makes Sheets parse numbers and dates as if typed by a user.
const ValueInputOption = "USER_ENTERED"

// Appender appends rows to a range and reports how many rows were written.
type Appender interface {
	Append(ctx context.Context, spreadsheetRange string, rows [][]interface{}) (int64, error)
}

type googleAppender struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleAppender authenticates with a service-account key.
func NewGoogleAppender(ctx context.Context, credentialsJSON, spreadsheetID string) (Appender, error) {
	if strings.TrimSpace(credentialsJSON) == "" {
		return nil, &AppendError{Kind: KindCredentials, Err: errors.New("GOOGLE_CREDENTIALS is not set")}
	}
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, &AppendError{Kind: KindPermission, Err: errors.New("GOOGLE_SHEET_ID is not set")}
	}

	key, err := normalizeCredentials([]byte(credentialsJSON))
	if err != nil {
		return nil, &AppendError{Kind: KindCredentials, Err: err}
	}
	conf, err := google.JWTConfigFromJSON(key, sheetsapi.SpreadsheetsScope)
	if err != nil {
		return nil, &AppendError{Kind: KindCredentials, Err: fmt.Errorf("invalid credentials: %w", err)}
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, Classify(fmt.Errorf("create sheets service: %w", err))
	}
	return &googleAppender{service: svc, spreadsheetID: spreadsheetID}, nil
}

func (a *googleAppender) Append(ctx context.Context, spreadsheetRange string, rows [][]interface{}) (int64, error) {
	resp, err := a.service.Spreadsheets.Values.
		Append(a.spreadsheetID, spreadsheetRange, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption(ValueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return 0, Classify(err)
	}
	if resp.Updates != nil && resp.Updates.UpdatedRows > 0 {
		return resp.Updates.UpdatedRows, nil
	}
	return int64(len(rows)), nil
}

// normalizeCredentials restores newlines in private_key that were escaped
// when the key was pasted into a single-line environment variable.
func normalizeCredentials(raw []byte) ([]byte, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("invalid GOOGLE_CREDENTIALS JSON format: %w", err)
	}
	if pk, ok := fields["private_key"].(string); ok {
		fields["private_key"] = strings.ReplaceAll(pk, `\n`, "\n")
	}
	return json.Marshal(fields)
}
