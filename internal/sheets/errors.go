package sheets

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// Kind buckets a spreadsheet failure for user-facing messaging.
type Kind string

const (
	KindCredentials Kind = "credentials"
	KindPermission  Kind = "permission"
	KindQuota       Kind = "quota"
	KindMalformed   Kind = "malformed"
	KindUnknown     Kind = "unknown"
)

// AppendError is returned for every failed append. Appends are never retried.
type AppendError struct {
	Kind Kind
	Err  error
}

func (e *AppendError) Error() string {
	return "sheets append (" + string(e.Kind) + "): " + e.Err.Error()
}

func (e *AppendError) Unwrap() error { return e.Err }

// Message is safe to show to API clients.
func (e *AppendError) Message() string {
	switch e.Kind {
	case KindCredentials:
		return "Google API credentials issue. Please check GOOGLE_CREDENTIALS environment variable."
	case KindPermission:
		return "Cannot access Google Spreadsheet. Please check permissions and spreadsheet ID."
	case KindQuota:
		return "Google Sheets API quota exceeded. Please try again later."
	case KindMalformed:
		return "Google Sheets rejected the submitted rows. Please check the purchase order data."
	default:
		return e.Err.Error()
	}
}

// Classify wraps err in an *AppendError. API status codes win; otherwise
// the message text decides.
func Classify(err error) *AppendError {
	if err == nil {
		return nil
	}
	var ae *AppendError
	if errors.As(err, &ae) {
		return ae
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return &AppendError{Kind: KindCredentials, Err: err}
		case http.StatusForbidden, http.StatusNotFound:
			if strings.Contains(strings.ToLower(gerr.Message), "quota") {
				return &AppendError{Kind: KindQuota, Err: err}
			}
			return &AppendError{Kind: KindPermission, Err: err}
		case http.StatusTooManyRequests:
			return &AppendError{Kind: KindQuota, Err: err}
		case http.StatusBadRequest:
			return &AppendError{Kind: KindMalformed, Err: err}
		}
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return &AppendError{Kind: KindCredentials, Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "credential"):
		return &AppendError{Kind: KindCredentials, Err: err}
	case strings.Contains(msg, "spreadsheet"), strings.Contains(msg, "permission"):
		return &AppendError{Kind: KindPermission, Err: err}
	case strings.Contains(msg, "quota"):
		return &AppendError{Kind: KindQuota, Err: err}
	case strings.Contains(msg, "invalid"), strings.Contains(msg, "parse"):
		return &AppendError{Kind: KindMalformed, Err: err}
	}
	return &AppendError{Kind: KindUnknown, Err: err}
}
