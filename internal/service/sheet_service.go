package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"pobackend/internal/canonical"
	"pobackend/internal/idgen"
	"pobackend/internal/model"
	"pobackend/internal/repository"
	"pobackend/internal/sheets"
	ws "pobackend/internal/websocket"
)

// SheetColumns is the width of every appended row (columns A..R).
const SheetColumns = 18

type SheetAppendResult struct {
	UniqueID    string `json:"unique_id"`
	UpdatedRows int64  `json:"updatedRows"`
}

type SheetService interface {
	Append(ctx context.Context, payload model.PurchaseOrderPayload) (SheetAppendResult, error)
}

// SheetDeps groups the collaborators of the sheet service. A nil Appender
// makes every Append fail with ErrSheetsNotConfigured.
type SheetDeps struct {
	Appender  sheets.Appender
	Range     string
	IDs       idgen.Generator
	Canon     *canonical.Canonicalizer
	Audit     repository.AuditRepository
	Recorder  Recorder
	Publisher Publisher
	Logger    *slog.Logger
}

type sheetService struct {
	appender  sheets.Appender
	rng       string
	ids       idgen.Generator
	canon     *canonical.Canonicalizer
	audit     repository.AuditRepository
	recorder  Recorder
	publisher Publisher
	logger    *slog.Logger
}

func NewSheetService(deps SheetDeps) SheetService {
	s := &sheetService{
		appender:  deps.Appender,
		rng:       deps.Range,
		ids:       deps.IDs,
		canon:     deps.Canon,
		audit:     deps.Audit,
		recorder:  deps.Recorder,
		publisher: deps.Publisher,
		logger:    deps.Logger,
	}
	if s.rng == "" {
		s.rng = "Sheet1!A:R"
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
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Append writes one row per line item followed by a blank spacer row. The
// append is attempted once.
func (s *sheetService) Append(ctx context.Context, payload model.PurchaseOrderPayload) (SheetAppendResult, error) {
	if s.appender == nil {
		return SheetAppendResult{}, ErrSheetsNotConfigured
	}
	if len(payload.LineItems) == 0 {
		return SheetAppendResult{}, invalid("At least one line item is required")
	}

	uniqueID := strings.TrimSpace(payload.UniqueID.String())
	if uniqueID == "" {
		uniqueID = s.ids.New().String()
	}

	rows := BuildSheetRows(s.canon.FromPayload(payload), payload.LineItems, uniqueID)
	updated, err := s.appender.Append(ctx, s.rng, rows)
	if err != nil {
		appendErr := sheets.Classify(err)
		s.recorder.SheetAppend(string(appendErr.Kind))
		s.logger.Error("sheet append failed",
			slog.String("unique_id", uniqueID),
			slog.String("kind", string(appendErr.Kind)),
			slog.Any("error", err))
		return SheetAppendResult{}, appendErr
	}
	s.recorder.SheetAppend("ok")

	details, _ := json.Marshal(map[string]interface{}{
		"range":        s.rng,
		"updated_rows": updated,
	})
	if s.audit != nil {
		entry := &model.AuditLog{
			Action:     model.ActionAppendSheet,
			EntityID:   uniqueID,
			EntityName: payload.OrderInfo.PONumber.String(),
			Details:    string(details),
		}
		// the rows are already written; a lost audit entry must not fail the call
		if err := s.audit.Log(ctx, entry); err != nil {
			s.logger.Warn("failed to write audit log", slog.String("unique_id", uniqueID), slog.Any("error", err))
		}
	}
	s.publisher.Publish(ws.EventSheetAppended, map[string]interface{}{
		"unique_id":    uniqueID,
		"updated_rows": updated,
	})
	return SheetAppendResult{UniqueID: uniqueID, UpdatedRows: updated}, nil
}

// BuildSheetRows lays out header fields from o and line items in submission
// order, then appends an empty spacer row.
func BuildSheetRows(o canonical.Order, items []model.LineItemPayload, uniqueID string) [][]interface{} {
	rows := make([][]interface{}, 0, len(items)+1)
	for _, it := range items {
		line := canonical.PayloadLineItem(it)
		rows = append(rows, []interface{}{
			o.Company.Name,
			o.Company.Address,
			o.Company.CityStateZip,
			o.Company.Country,
			o.Vendor.Name,
			o.Vendor.Address,
			o.Vendor.CityStateZip,
			o.Vendor.Country,
			o.OrderInfo.PONumber,
			o.OrderInfo.OrderDate,
			o.OrderInfo.DeliveryDate,
			o.Total.StringFixed(canonical.Scale),
			line.Description,
			line.Quantity.String(),
			line.Rate.StringFixed(canonical.Scale),
			line.Amount.StringFixed(canonical.Scale),
			line.GST.String(),
			uniqueID,
		})
	}
	spacer := make([]interface{}, SheetColumns)
	for i := range spacer {
		spacer[i] = ""
	}
	return append(rows, spacer)
}

// AsAppendError extracts the spreadsheet failure wrapped in err, if any.
func AsAppendError(err error) (*sheets.AppendError, bool) {
	var ae *sheets.AppendError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
