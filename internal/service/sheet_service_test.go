package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"pobackend/internal/canonical"
	"pobackend/internal/idgen"
	"pobackend/internal/model"
	"pobackend/internal/sheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestBuildSheetRows(t *testing.T) {
	p := decodePayload(t, `{
		"company": {"name": " Acme ", "address": "1 Main St", "cityStateZip": "Springfield", "country": "USA"},
		"vendor": {"name": "Bolt Co", "address": "9 Dock Rd", "cityStateZip": "Portland", "country": "USA"},
		"orderInfo": {"poNumber": "PO-7", "orderDate": "2025-01-15T10:00:00Z", "deliveryDate": ""},
		"lineItems": [
			{"description": "Widget", "quantity": 2, "rate": 5, "gst": 0},
			{"description": "Anchor", "quantity": "1", "rate": "12.5", "gst": 10}
		],
		"total": 23.75
	}`)

	rows := BuildSheetRows(canonical.Default.FromPayload(p), p.LineItems, "u-1")
	require.Len(t, rows, 3)

	assert.Equal(t, []interface{}{
		"Acme", "1 Main St", "Springfield", "USA",
		"Bolt Co", "9 Dock Rd", "Portland", "USA",
		"PO-7", "2025-01-15", "", "23.75",
		"Widget", "2", "5.00", "10.00", "0", "u-1",
	}, rows[0])
	assert.Equal(t, "Anchor", rows[1][12], "lines keep submission order")
	assert.Equal(t, "13.75", rows[1][15])

	for _, row := range rows {
		assert.Len(t, row, SheetColumns)
	}
	for _, cell := range rows[2] {
		assert.Equal(t, "", cell)
	}
}

func TestSheetAppend_UsesPayloadUniqueID(t *testing.T) {
	appender := newFakeAppender()
	audit := &fakeAuditRepo{}
	rec := newFakeRecorder()
	pub := &fakePublisher{}
	svc := NewSheetService(SheetDeps{Appender: appender, Range: "Orders!A:R", Audit: audit, Recorder: rec, Publisher: pub})

	p := decodePayload(t, fullPayload)
	p.UniqueID = model.Text("from-client")

	res, err := svc.Append(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, SheetAppendResult{UniqueID: "from-client", UpdatedRows: 3}, res)
	assert.Equal(t, []string{"Orders!A:R"}, appender.ranges)

	logs := audit.entries()
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionAppendSheet, logs[0].Action)
	assert.Equal(t, "from-client", logs[0].EntityID)
	assert.Equal(t, 1, rec.get("sheet:ok"))
	assert.Len(t, pub.events, 1)
}

func TestSheetAppend_GeneratesUniqueID(t *testing.T) {
	appender := newFakeAppender()
	svc := NewSheetService(SheetDeps{Appender: appender, IDs: idgen.NewSeeded(3)})

	res, err := svc.Append(context.Background(), decodePayload(t, fullPayload))
	require.NoError(t, err)
	assert.Equal(t, idgen.NewSeeded(3).New().String(), res.UniqueID)
	assert.Equal(t, res.UniqueID, appender.rows[0][0][17])
}

func TestSheetAppend_ClassifiesFailures(t *testing.T) {
	appender := newFakeAppender()
	appender.err = &googleapi.Error{Code: http.StatusTooManyRequests, Message: "rate limit"}
	audit := &fakeAuditRepo{}
	rec := newFakeRecorder()
	svc := NewSheetService(SheetDeps{Appender: appender, Audit: audit, Recorder: rec})

	_, err := svc.Append(context.Background(), decodePayload(t, fullPayload))
	require.Error(t, err)
	ae, ok := AsAppendError(err)
	require.True(t, ok)
	assert.Equal(t, sheets.KindQuota, ae.Kind)
	assert.Equal(t, 1, rec.get("sheet:quota"))
	assert.Empty(t, audit.entries())
}

func TestSheetAppend_AuditFailureIsNotFatal(t *testing.T) {
	appender := newFakeAppender()
	svc := NewSheetService(SheetDeps{Appender: appender, Audit: &fakeAuditRepo{err: errors.New("down")}})

	_, err := svc.Append(context.Background(), decodePayload(t, fullPayload))
	assert.NoError(t, err)
}

func TestSheetAppend_NotConfiguredAndEmpty(t *testing.T) {
	_, err := NewSheetService(SheetDeps{}).Append(context.Background(), decodePayload(t, fullPayload))
	assert.ErrorIs(t, err, ErrSheetsNotConfigured)

	svc := NewSheetService(SheetDeps{Appender: newFakeAppender()})
	_, err = svc.Append(context.Background(), decodePayload(t, `{"lineItems": []}`))
	assert.ErrorIs(t, err, ErrValidation)
}
