package canonical

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Company is the canonical buyer block.
type Company struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	CityStateZip string `json:"cityStateZip"`
	Country      string `json:"country"`
	Contact      string `json:"contact"`
}

// Vendor is the canonical seller block. It has no contact field.
type Vendor struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	CityStateZip string `json:"cityStateZip"`
	Country      string `json:"country"`
}

// OrderInfo carries the PO number and YYYY-MM-DD dates ("" when absent).
type OrderInfo struct {
	PONumber     string `json:"poNumber"`
	OrderDate    string `json:"orderDate"`
	DeliveryDate string `json:"deliveryDate"`
}

// LineItem is a canonical line with every amount at Scale places.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	GST         decimal.Decimal `json:"gst"`
	Amount      decimal.Decimal `json:"amount"`
}

// Order is the comparable projection of a purchase order. It is only used
// for equality testing, never stored.
type Order struct {
	Company   Company         `json:"company"`
	Vendor    Vendor          `json:"vendor"`
	OrderInfo OrderInfo       `json:"orderInfo"`
	LineItems []LineItem      `json:"lineItems"`
	SubTotal  decimal.Decimal `json:"subTotal"`
	Total     decimal.Decimal `json:"total"`
}

// Equal reports whether both lines match field by field.
func (l LineItem) Equal(o LineItem) bool {
	return l.Description == o.Description &&
		l.Quantity.Equal(o.Quantity) &&
		l.Rate.Equal(o.Rate) &&
		l.GST.Equal(o.GST) &&
		l.Amount.Equal(o.Amount)
}

// Equal is structural deep equality over the canonical form.
func (o Order) Equal(other Order) bool {
	if o.Company != other.Company || o.Vendor != other.Vendor || o.OrderInfo != other.OrderInfo {
		return false
	}
	if !o.SubTotal.Equal(other.SubTotal) || !o.Total.Equal(other.Total) {
		return false
	}
	if len(o.LineItems) != len(other.LineItems) {
		return false
	}
	for i := range o.LineItems {
		if !o.LineItems[i].Equal(other.LineItems[i]) {
			return false
		}
	}
	return true
}

// Diff lists the paths of every field that differs between a and b, e.g.
// "company.name" or "lineItems[1].quantity". Empty means Equal.
func Diff(a, b Order) []string {
	var out []string
	str := func(path, x, y string) {
		if x != y {
			out = append(out, path)
		}
	}
	num := func(path string, x, y decimal.Decimal) {
		if !x.Equal(y) {
			out = append(out, path)
		}
	}

	str("company.name", a.Company.Name, b.Company.Name)
	str("company.address", a.Company.Address, b.Company.Address)
	str("company.cityStateZip", a.Company.CityStateZip, b.Company.CityStateZip)
	str("company.country", a.Company.Country, b.Company.Country)
	str("company.contact", a.Company.Contact, b.Company.Contact)

	str("vendor.name", a.Vendor.Name, b.Vendor.Name)
	str("vendor.address", a.Vendor.Address, b.Vendor.Address)
	str("vendor.cityStateZip", a.Vendor.CityStateZip, b.Vendor.CityStateZip)
	str("vendor.country", a.Vendor.Country, b.Vendor.Country)

	str("orderInfo.poNumber", a.OrderInfo.PONumber, b.OrderInfo.PONumber)
	str("orderInfo.orderDate", a.OrderInfo.OrderDate, b.OrderInfo.OrderDate)
	str("orderInfo.deliveryDate", a.OrderInfo.DeliveryDate, b.OrderInfo.DeliveryDate)

	if len(a.LineItems) != len(b.LineItems) {
		out = append(out, "lineItems.length")
	} else {
		for i := range a.LineItems {
			x, y := a.LineItems[i], b.LineItems[i]
			p := fmt.Sprintf("lineItems[%d].", i)
			str(p+"description", x.Description, y.Description)
			num(p+"quantity", x.Quantity, y.Quantity)
			num(p+"rate", x.Rate, y.Rate)
			num(p+"gst", x.GST, y.GST)
			num(p+"amount", x.Amount, y.Amount)
		}
	}

	num("subTotal", a.SubTotal, b.SubTotal)
	num("total", a.Total, b.Total)
	return out
}
