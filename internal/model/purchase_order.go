package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseOrder is the persisted header of a buyer-to-vendor order.
// PONumber is user supplied and not unique; UniqueID is the server-assigned
// reference handed back to clients.
type PurchaseOrder struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UniqueID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"unique_id"`

	CompanyName         string `gorm:"type:varchar(255);index:idx_po_candidate,priority:2" json:"company_name"`
	CompanyAddress      string `gorm:"type:text" json:"company_address"`
	CompanyCityStateZip string `gorm:"type:varchar(255)" json:"company_city_state_zip"`
	CompanyCountry      string `gorm:"type:varchar(255)" json:"company_country"`
	CompanyContact      string `gorm:"type:varchar(255)" json:"company_contact"`

	VendorName         string `gorm:"type:varchar(255);index:idx_po_candidate,priority:3" json:"vendor_name"`
	VendorAddress      string `gorm:"type:text" json:"vendor_address"`
	VendorCityStateZip string `gorm:"type:varchar(255)" json:"vendor_city_state_zip"`
	VendorCountry      string `gorm:"type:varchar(255)" json:"vendor_country"`

	PONumber     string     `gorm:"column:po_number;type:varchar(255);not null;index:idx_po_candidate,priority:1" json:"po_number"`
	OrderDate    *time.Time `gorm:"type:date" json:"order_date"`
	DeliveryDate *time.Time `gorm:"type:date" json:"delivery_date"`

	SubTotal  decimal.Decimal `gorm:"column:sub_total;type:decimal(12,2);not null;default:0" json:"sub_total"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`
	TaxAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`

	LineItems []LineItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE" json:"line_items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LineItem is exclusively owned by one PurchaseOrder and removed with it.
type LineItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	Position        int             `gorm:"not null" json:"position"` // submission order
	Description     string          `gorm:"type:text" json:"description"`
	Quantity        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"quantity"`
	Rate            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"rate"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount"`
	GST             decimal.Decimal `gorm:"column:gst;type:decimal(5,2);not null;default:0" json:"gst"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BeforeCreate fills the primary key when the caller did not assign one.
func (po *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	return nil
}

// BeforeCreate fills the primary key when the caller did not assign one.
func (li *LineItem) BeforeCreate(tx *gorm.DB) error {
	if li.ID == uuid.Nil {
		li.ID = uuid.New()
	}
	return nil
}
