package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pobackend/internal/canonical"
	"pobackend/internal/idgen"
	"pobackend/internal/model"
	"pobackend/internal/observability"
	"pobackend/internal/repository"
	ws "pobackend/internal/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs

type LineItemResponse struct {
	Position    int             `json:"position"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	GST         decimal.Decimal `json:"gst"`
}

type PurchaseOrderResponse struct {
	ID                  string             `json:"id"`
	UniqueID            string             `json:"unique_id"`
	CompanyName         string             `json:"company_name"`
	CompanyAddress      string             `json:"company_address"`
	CompanyCityStateZip string             `json:"company_city_state_zip"`
	CompanyCountry      string             `json:"company_country"`
	CompanyContact      string             `json:"company_contact"`
	VendorName          string             `json:"vendor_name"`
	VendorAddress       string             `json:"vendor_address"`
	VendorCityStateZip  string             `json:"vendor_city_state_zip"`
	VendorCountry       string             `json:"vendor_country"`
	PONumber            string             `json:"po_number"`
	OrderDate           string             `json:"order_date,omitempty"`
	DeliveryDate        string             `json:"delivery_date,omitempty"`
	SubTotal            decimal.Decimal    `json:"sub_total"`
	TaxRate             decimal.Decimal    `json:"tax_rate"`
	TaxAmount           decimal.Decimal    `json:"tax_amount"`
	Total               decimal.Decimal    `json:"total"`
	LineItems           []LineItemResponse `json:"line_items"`
	CreatedAt           time.Time          `json:"created_at"`
}

// DuplicateResult reports whether an equivalent order is already stored.
type DuplicateResult struct {
	Exists   bool   `json:"exists"`
	UniqueID string `json:"unique_id,omitempty"`
}

// Recorder receives domain counters. *observability.Metrics implements it.
type Recorder interface {
	DuplicateCheck(result string)
	OrderCreated()
	SheetAppend(outcome string)
}

// Publisher pushes events to live clients. *websocket.Hub implements it.
type Publisher interface {
	Publish(event string, data interface{})
}

type noopRecorder struct{}

func (noopRecorder) DuplicateCheck(string) {}
func (noopRecorder) OrderCreated()         {}
func (noopRecorder) SheetAppend(string)    {}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

type PurchaseOrderService interface {
	Create(ctx context.Context, payload model.PurchaseOrderPayload) (PurchaseOrderResponse, error)
	CheckDuplicate(ctx context.Context, payload model.PurchaseOrderPayload) (DuplicateResult, error)
	Canonicalize(payload model.PurchaseOrderPayload) canonical.Order
	GetByUniqueID(ctx context.Context, uniqueID string) (PurchaseOrderResponse, error)
	List(ctx context.Context, page, limit int) ([]PurchaseOrderResponse, int64, error)
	// Drain waits for in-flight sheet mirrors, or until ctx is done.
	Drain(ctx context.Context) error
}

// PurchaseOrderDeps groups the collaborators of the purchase order service.
// Recorder, Publisher, Mirror and Logger are optional.
type PurchaseOrderDeps struct {
	Orders    repository.PurchaseOrderRepository
	Audit     repository.AuditRepository
	TxManager repository.TransactionManager
	IDs       idgen.Generator
	Canon     *canonical.Canonicalizer
	Recorder  Recorder
	Publisher Publisher
	// Mirror, when set, receives every created order asynchronously.
	Mirror        SheetService
	MirrorTimeout time.Duration
	Logger        *slog.Logger
}

type purchaseOrderService struct {
	orders        repository.PurchaseOrderRepository
	audit         repository.AuditRepository
	txManager     repository.TransactionManager
	ids           idgen.Generator
	canon         *canonical.Canonicalizer
	validate      *validator.Validate
	recorder      Recorder
	publisher     Publisher
	mirror        SheetService
	mirrorTimeout time.Duration
	mirrors       sync.WaitGroup
	logger        *slog.Logger
}

func NewPurchaseOrderService(deps PurchaseOrderDeps) PurchaseOrderService {
	s := &purchaseOrderService{
		orders:        deps.Orders,
		audit:         deps.Audit,
		txManager:     deps.TxManager,
		ids:           deps.IDs,
		canon:         deps.Canon,
		validate:      newValidator(),
		recorder:      deps.Recorder,
		publisher:     deps.Publisher,
		mirror:        deps.Mirror,
		mirrorTimeout: deps.MirrorTimeout,
		logger:        deps.Logger,
	}
	if s.ids == nil {
		s.ids = idgen.NewRandom()
	}
	if s.canon == nil {
		s.canon = canonical.Default
	}
	if s.recorder == nil {
		s.recorder = noopRecorder{}
	}
	if s.publisher == nil {
		s.publisher = noopPublisher{}
	}
	if s.mirrorTimeout <= 0 {
		s.mirrorTimeout = 30 * time.Second
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

func (s *purchaseOrderService) Canonicalize(payload model.PurchaseOrderPayload) canonical.Order {
	return s.canon.FromPayload(payload)
}

// Create validates and persists one order with all of its line items.
func (s *purchaseOrderService) Create(ctx context.Context, payload model.PurchaseOrderPayload) (PurchaseOrderResponse, error) {
	if err := validateCreate(s.validate, payload); err != nil {
		return PurchaseOrderResponse{}, err
	}

	po := toPurchaseOrderModel(payload)
	po.UniqueID = s.ids.New().String()

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.orders.Create(txCtx, po); err != nil {
			return fmt.Errorf("failed to create purchase order: %w", err)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"po_number":  po.PONumber,
			"company":    po.CompanyName,
			"vendor":     po.VendorName,
			"line_items": len(po.LineItems),
			"total":      po.Total,
		})
		entry := &model.AuditLog{
			Action:     model.ActionCreatePurchaseOrder,
			EntityID:   po.UniqueID,
			EntityName: po.PONumber,
			Details:    string(details),
		}
		if err := s.audit.Log(txCtx, entry); err != nil {
			return fmt.Errorf("failed to write audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return PurchaseOrderResponse{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.recorder.OrderCreated()
	res := toPurchaseOrderResponse(po)
	s.publisher.Publish(ws.EventPurchaseOrderCreated, map[string]interface{}{
		"unique_id": res.UniqueID,
		"po_number": res.PONumber,
		"total":     res.Total,
	})
	s.logger.Info("purchase order created",
		slog.String("unique_id", po.UniqueID),
		slog.String("po_number", po.PONumber),
		slog.Int("line_items", len(po.LineItems)))

	if s.mirror != nil {
		mirrored := payload
		mirrored.UniqueID = model.Text(po.UniqueID)
		s.mirrors.Add(1)
		go func() {
			defer s.mirrors.Done()
			s.mirrorToSheet(context.WithoutCancel(ctx), mirrored)
		}()
	}
	return res, nil
}

func (s *purchaseOrderService) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.mirrors.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *purchaseOrderService) mirrorToSheet(ctx context.Context, payload model.PurchaseOrderPayload) {
	ctx, cancel := context.WithTimeout(ctx, s.mirrorTimeout)
	defer cancel()
	if _, err := s.mirror.Append(ctx, payload); err != nil {
		s.logger.Warn("sheet mirror failed",
			slog.String("unique_id", payload.UniqueID.String()),
			slog.Any("error", err))
	}
}

// CheckDuplicate reports the first stored order whose canonical form equals
// the payload's. Candidates are narrowed by an exact match on the raw PO
// number, company name and vendor name.
func (s *purchaseOrderService) CheckDuplicate(ctx context.Context, payload model.PurchaseOrderPayload) (DuplicateResult, error) {
	target := s.canon.FromPayload(payload)

	candidates, err := s.orders.FindCandidates(ctx, repository.CandidateKey{
		PONumber:    payload.OrderInfo.PONumber.String(),
		CompanyName: payload.Company.Name.String(),
		VendorName:  payload.Vendor.Name.String(),
	})
	if err != nil {
		s.recorder.DuplicateCheck(observability.DuplicateError)
		return DuplicateResult{}, fmt.Errorf("%w: find candidates: %w", ErrStorage, err)
	}

	for _, po := range candidates {
		stored := s.canon.FromStored(po)
		if target.Equal(stored) {
			s.recorder.DuplicateCheck(observability.DuplicateExists)
			return DuplicateResult{Exists: true, UniqueID: po.UniqueID}, nil
		}
		s.logger.Debug("duplicate candidate differs",
			slog.String("unique_id", po.UniqueID),
			slog.Any("fields", canonical.Diff(target, stored)))
	}

	s.recorder.DuplicateCheck(observability.DuplicateAbsent)
	return DuplicateResult{Exists: false}, nil
}

func (s *purchaseOrderService) GetByUniqueID(ctx context.Context, uniqueID string) (PurchaseOrderResponse, error) {
	po, err := s.orders.FindByUniqueID(ctx, uniqueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PurchaseOrderResponse{}, ErrNotFound
		}
		return PurchaseOrderResponse{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return toPurchaseOrderResponse(po), nil
}

func (s *purchaseOrderService) List(ctx context.Context, page, limit int) ([]PurchaseOrderResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	orders, total, err := s.orders.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	res := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toPurchaseOrderResponse(&orders[i]))
	}
	return res, total, nil
}

// toPurchaseOrderModel keeps text exactly as submitted so later duplicate
// checks can match it with the raw pre-filter. Numbers are stored at scale 2.
func toPurchaseOrderModel(p model.PurchaseOrderPayload) *model.PurchaseOrder {
	po := &model.PurchaseOrder{
		CompanyName:         p.Company.Name.String(),
		CompanyAddress:      p.Company.Address.String(),
		CompanyCityStateZip: p.Company.CityStateZip.String(),
		CompanyCountry:      p.Company.Country.String(),
		CompanyContact:      p.Company.Contact.String(),
		VendorName:          p.Vendor.Name.String(),
		VendorAddress:       p.Vendor.Address.String(),
		VendorCityStateZip:  p.Vendor.CityStateZip.String(),
		VendorCountry:       p.Vendor.Country.String(),
		PONumber:            p.OrderInfo.PONumber.String(),
		OrderDate:           storedDate(p.OrderInfo.OrderDate.String()),
		DeliveryDate:        storedDate(p.OrderInfo.DeliveryDate.String()),
		SubTotal:            canonical.Amount(p.SubTotal),
		TaxRate:             canonical.Amount(p.TaxRate),
		TaxAmount:           canonical.Amount(p.TaxAmount),
		Total:               canonical.Amount(p.Total),
		LineItems:           make([]model.LineItem, 0, len(p.LineItems)),
	}
	for i, it := range p.LineItems {
		line := canonical.PayloadLineItem(it)
		po.LineItems = append(po.LineItems, model.LineItem{
			Position:    i,
			Description: it.Description.String(),
			Quantity:    line.Quantity,
			Rate:        line.Rate,
			Amount:      line.Amount,
			GST:         line.GST,
		})
	}
	return po
}

func storedDate(s string) *time.Time {
	t, ok := canonical.ParseDate(s)
	if !ok {
		return nil
	}
	d := canonical.CalendarDate(t)
	return &d
}

func toPurchaseOrderResponse(po *model.PurchaseOrder) PurchaseOrderResponse {
	items := make([]LineItemResponse, 0, len(po.LineItems))
	for _, it := range po.LineItems {
		items = append(items, LineItemResponse{
			Position:    it.Position,
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Amount,
			GST:         it.GST,
		})
	}
	return PurchaseOrderResponse{
		ID:                  po.ID.String(),
		UniqueID:            po.UniqueID,
		CompanyName:         po.CompanyName,
		CompanyAddress:      po.CompanyAddress,
		CompanyCityStateZip: po.CompanyCityStateZip,
		CompanyCountry:      po.CompanyCountry,
		CompanyContact:      po.CompanyContact,
		VendorName:          po.VendorName,
		VendorAddress:       po.VendorAddress,
		VendorCityStateZip:  po.VendorCityStateZip,
		VendorCountry:       po.VendorCountry,
		PONumber:            po.PONumber,
		OrderDate:           canonical.DateOf(po.OrderDate),
		DeliveryDate:        canonical.DateOf(po.DeliveryDate),
		SubTotal:            po.SubTotal,
		TaxRate:             po.TaxRate,
		TaxAmount:           po.TaxAmount,
		Total:               po.Total,
		LineItems:           items,
		CreatedAt:           po.CreatedAt,
	}
}
