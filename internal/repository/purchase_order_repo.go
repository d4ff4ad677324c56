package repository

import (
	"context"
	"fmt"

	"pobackend/internal/model"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CandidateKey holds the raw, untrimmed values used by the duplicate
// pre-filter. Matching is exact.
type CandidateKey struct {
	PONumber    string
	CompanyName string
	VendorName  string
}

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *model.PurchaseOrder) error
	FindCandidates(ctx context.Context, key CandidateKey) ([]model.PurchaseOrder, error)
	FindByUniqueID(ctx context.Context, uniqueID string) (*model.PurchaseOrder, error)
	List(ctx context.Context, page, limit int) ([]model.PurchaseOrder, int64, error)
}

type purchaseOrderRepository struct {
	db          *gorm.DB
	concurrency int
}

// NewPurchaseOrderRepository builds the GORM backed repository. concurrency
// bounds how many line-item reads FindCandidates issues at once.
func NewPurchaseOrderRepository(db *gorm.DB, concurrency int) PurchaseOrderRepository {
	if concurrency < 1 {
		concurrency = 1
	}
	return &purchaseOrderRepository{db: db, concurrency: concurrency}
}

// Create inserts the header and every line item atomically.
func (r *purchaseOrderRepository) Create(ctx context.Context, po *model.PurchaseOrder) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return tx.Create(po).Error
	})
}

// FindCandidates returns every order whose raw PO number, company name and
// vendor name equal key, each with its line items attached.
func (r *purchaseOrderRepository) FindCandidates(ctx context.Context, key CandidateKey) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	if err := GetDB(ctx, r.db).
		Where("po_number = ? AND company_name = ? AND vendor_name = ?", key.PONumber, key.CompanyName, key.VendorName).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if inTx(ctx) {
		// a transaction is bound to one connection
		g.SetLimit(1)
	} else {
		g.SetLimit(r.concurrency)
	}
	for i := range orders {
		i := i
		g.Go(func() error {
			items, err := r.lineItems(gctx, orders[i].ID)
			if err != nil {
				return fmt.Errorf("line items of %s: %w", orders[i].UniqueID, err)
			}
			orders[i].LineItems = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *purchaseOrderRepository) lineItems(ctx context.Context, orderID uuid.UUID) ([]model.LineItem, error) {
	var items []model.LineItem
	if err := GetDB(ctx, r.db).
		Where("purchase_order_id = ?", orderID).
		Order("position ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *purchaseOrderRepository) FindByUniqueID(ctx context.Context, uniqueID string) (*model.PurchaseOrder, error) {
	var po model.PurchaseOrder
	if err := GetDB(ctx, r.db).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&po, "unique_id = ?", uniqueID).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *purchaseOrderRepository) List(ctx context.Context, page, limit int) ([]model.PurchaseOrder, int64, error) {
	var orders []model.PurchaseOrder
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.PurchaseOrder{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}
