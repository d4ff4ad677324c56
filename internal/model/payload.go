package model

import (
	"bytes"
	"encoding/json"
)

// Text is a lenient JSON string. Numbers and booleans keep their literal
// text, null/objects/arrays decode to "".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 {
		*t = ""
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*t = ""
			return nil
		}
		*t = Text(s)
	case 'n', '{', '[':
		*t = ""
	default:
		*t = Text(raw)
	}
	return nil
}

// String returns the raw text.
func (t Text) String() string { return string(t) }

// Number keeps the raw textual form of a numeric-like JSON value so parsing
// and rounding can be decided later. Quoted strings are unquoted, null and
// false become "", true becomes "1", objects and arrays become "".
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 {
		*n = ""
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			*n = ""
			return nil
		}
		*n = Number(s)
	case 't':
		*n = "1"
	case 'n', 'f', '{', '[':
		*n = ""
	default:
		*n = Number(raw)
	}
	return nil
}

// String returns the raw text.
func (n Number) String() string { return string(n) }

// CompanyInfo is the buyer block of a submitted order.
type CompanyInfo struct {
	Name         Text `json:"name"`
	Address      Text `json:"address"`
	CityStateZip Text `json:"cityStateZip"`
	Country      Text `json:"country"`
	Contact      Text `json:"contact"`
}

// VendorInfo is the seller block of a submitted order.
type VendorInfo struct {
	Name         Text `json:"name"`
	Address      Text `json:"address"`
	CityStateZip Text `json:"cityStateZip"`
	Country      Text `json:"country"`
}

// OrderInfo holds the user supplied PO number and date-like strings.
type OrderInfo struct {
	PONumber     Text `json:"poNumber"`
	OrderDate    Text `json:"orderDate"`
	DeliveryDate Text `json:"deliveryDate"`
}

// LineItemPayload is one submitted line. Amount is nil when the client did
// not send it (or sent null) and must be derived.
type LineItemPayload struct {
	Description Text    `json:"description"`
	Quantity    Number  `json:"quantity"`
	Rate        Number  `json:"rate"`
	GST         Number  `json:"gst"`
	Amount      *Number `json:"amount"`
}

// PurchaseOrderPayload is the request shape accepted by create, duplicate
// check and the spreadsheet mirror.
type PurchaseOrderPayload struct {
	Company   CompanyInfo       `json:"company"`
	Vendor    VendorInfo        `json:"vendor"`
	OrderInfo OrderInfo         `json:"orderInfo"`
	LineItems []LineItemPayload `json:"lineItems"`
	SubTotal  Number            `json:"subTotal"`
	TaxRate   Number            `json:"taxRate"`
	TaxAmount Number            `json:"taxAmount"`
	Total     Number            `json:"total"`
	UniqueID  Text              `json:"uniqueId"`
}
