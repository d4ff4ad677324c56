package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreatePurchaseOrder = "CREATE_PURCHASE_ORDER"
	ActionAppendSheet         = "APPEND_SHEET"
)

// AuditLog tracks what happened to which purchase order and when
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(64);index" json:"entity_id"`        // PurchaseOrder.UniqueID
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // PO number
	Details    string    `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
