// Package canonical normalizes submitted and stored purchase orders into a
// single comparable form so that semantically equal orders compare equal
// regardless of line ordering, surrounding whitespace or number formatting.
//
// Canonicalization is total: malformed input never produces an error, it
// normalizes to empty strings and zero amounts.
package canonical

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"pobackend/internal/model"
)

// Canonicalizer converts both source shapes into Order. It is safe for
// concurrent use.
type Canonicalizer struct {
	tag language.Tag
}

// New returns a Canonicalizer sorting line descriptions with the collation
// rules of tag.
func New(tag language.Tag) *Canonicalizer {
	return &Canonicalizer{tag: tag}
}

// Default sorts with English collation.
var Default = New(language.English)

// FromPayload canonicalizes a client-submitted order.
func (c *Canonicalizer) FromPayload(p model.PurchaseOrderPayload) Order {
	return Order{
		Company: Company{
			Name:         Text(p.Company.Name.String()),
			Address:      Text(p.Company.Address.String()),
			CityStateZip: Text(p.Company.CityStateZip.String()),
			Country:      Text(p.Company.Country.String()),
			Contact:      Text(p.Company.Contact.String()),
		},
		Vendor: Vendor{
			Name:         Text(p.Vendor.Name.String()),
			Address:      Text(p.Vendor.Address.String()),
			CityStateZip: Text(p.Vendor.CityStateZip.String()),
			Country:      Text(p.Vendor.Country.String()),
		},
		OrderInfo: OrderInfo{
			PONumber:     Text(p.OrderInfo.PONumber.String()),
			OrderDate:    Date(p.OrderInfo.OrderDate.String()),
			DeliveryDate: Date(p.OrderInfo.DeliveryDate.String()),
		},
		LineItems: c.PayloadLineItems(p.LineItems),
		SubTotal:  Amount(p.SubTotal),
		Total:     Amount(p.Total),
	}
}

// FromStored canonicalizes a persisted order together with its line items.
func (c *Canonicalizer) FromStored(po model.PurchaseOrder) Order {
	return Order{
		Company: Company{
			Name:         Text(po.CompanyName),
			Address:      Text(po.CompanyAddress),
			CityStateZip: Text(po.CompanyCityStateZip),
			Country:      Text(po.CompanyCountry),
			Contact:      Text(po.CompanyContact),
		},
		Vendor: Vendor{
			Name:         Text(po.VendorName),
			Address:      Text(po.VendorAddress),
			CityStateZip: Text(po.VendorCityStateZip),
			Country:      Text(po.VendorCountry),
		},
		OrderInfo: OrderInfo{
			PONumber:     Text(po.PONumber),
			OrderDate:    DateOf(po.OrderDate),
			DeliveryDate: DateOf(po.DeliveryDate),
		},
		LineItems: c.StoredLineItems(po.LineItems),
		SubTotal:  Round2(po.SubTotal),
		Total:     Round2(po.Total),
	}
}

// PayloadLineItem canonicalizes one submitted line. A missing amount is
// derived from the unrounded quantity, rate and gst.
func PayloadLineItem(it model.LineItemPayload) LineItem {
	line := LineItem{
		Description: Text(it.Description.String()),
		Quantity:    Amount(it.Quantity),
		Rate:        Amount(it.Rate),
		GST:         Amount(it.GST),
	}
	if it.Amount != nil {
		line.Amount = Amount(*it.Amount)
	} else {
		line.Amount = DeriveAmount(Parse(it.Quantity), Parse(it.Rate), Parse(it.GST))
	}
	return line
}

// StoredLineItem canonicalizes one persisted line.
func StoredLineItem(it model.LineItem) LineItem {
	return LineItem{
		Description: Text(it.Description),
		Quantity:    Round2(it.Quantity),
		Rate:        Round2(it.Rate),
		GST:         Round2(it.GST),
		Amount:      Round2(it.Amount),
	}
}

// PayloadLineItems canonicalizes and sorts submitted lines.
func (c *Canonicalizer) PayloadLineItems(items []model.LineItemPayload) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, PayloadLineItem(it))
	}
	return c.Sort(out)
}

// StoredLineItems canonicalizes and sorts persisted lines.
func (c *Canonicalizer) StoredLineItems(items []model.LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, StoredLineItem(it))
	}
	return c.Sort(out)
}

// Sort orders lines by description using locale collation. Lines whose
// descriptions collate equal are ordered by raw description, then by
// quantity, rate, gst and amount, so any permutation of the same lines sorts
// identically. items is sorted in place and returned.
func (c *Canonicalizer) Sort(items []LineItem) []LineItem {
	// collators keep internal buffers and must not be shared between goroutines
	col := collate.New(c.tag)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if r := col.CompareString(a.Description, b.Description); r != 0 {
			return r < 0
		}
		if a.Description != b.Description {
			return a.Description < b.Description
		}
		for _, pair := range [][2]decimal.Decimal{
			{a.Quantity, b.Quantity},
			{a.Rate, b.Rate},
			{a.GST, b.GST},
			{a.Amount, b.Amount},
		} {
			if r := pair[0].Cmp(pair[1]); r != 0 {
				return r < 0
			}
		}
		return false
	})
	return items
}
