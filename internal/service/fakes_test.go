package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"pobackend/internal/model"
	"pobackend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []model.PurchaseOrder
	err    error
}

func (r *fakeOrderRepo) Create(_ context.Context, po *model.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, existing := range r.orders {
		if existing.UniqueID == po.UniqueID {
			return gorm.ErrDuplicatedKey
		}
	}
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	po.CreatedAt = time.Now()
	r.orders = append(r.orders, *po)
	return nil
}

func (r *fakeOrderRepo) FindCandidates(_ context.Context, key repository.CandidateKey) ([]model.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []model.PurchaseOrder
	for _, po := range r.orders {
		if po.PONumber == key.PONumber && po.CompanyName == key.CompanyName && po.VendorName == key.VendorName {
			out = append(out, po)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByUniqueID(_ context.Context, uniqueID string) (*model.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.orders {
		if r.orders[i].UniqueID == uniqueID {
			po := r.orders[i]
			return &po, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) List(_ context.Context, page, limit int) ([]model.PurchaseOrder, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	start := (page - 1) * limit
	if start > len(r.orders) {
		start = len(r.orders)
	}
	end := start + limit
	if end > len(r.orders) {
		end = len(r.orders)
	}
	return append([]model.PurchaseOrder(nil), r.orders[start:end]...), int64(len(r.orders)), nil
}

type fakeAuditRepo struct {
	mu   sync.Mutex
	logs []model.AuditLog
	err  error
}

func (r *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, f repository.AuditFilter, page, limit int) ([]model.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}
	var out []model.AuditLog
	for _, l := range r.logs {
		if (f.Action == "" || l.Action == f.Action) && (f.EntityID == "" || l.EntityID == f.EntityID) {
			out = append(out, l)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeAuditRepo) entries() []model.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.AuditLog(nil), r.logs...)
}

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

type fakeRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeRecorder() *fakeRecorder { return &fakeRecorder{counts: map[string]int{}} }

func (r *fakeRecorder) inc(k string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[k]++
}

func (r *fakeRecorder) get(k string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[k]
}

func (r *fakeRecorder) DuplicateCheck(result string) { r.inc("duplicate:" + result) }
func (r *fakeRecorder) OrderCreated()                { r.inc("created") }
func (r *fakeRecorder) SheetAppend(outcome string)   { r.inc("sheet:" + outcome) }

type publishedEvent struct {
	name string
	data interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{name: event, data: data})
}

type fakeAppender struct {
	mu     sync.Mutex
	ranges []string
	rows   [][][]interface{}
	err    error
	called chan struct{}
	// release, when set, holds Append until it is closed
	release chan struct{}
}

func newFakeAppender() *fakeAppender { return &fakeAppender{called: make(chan struct{}, 8)} }

func (a *fakeAppender) Append(_ context.Context, rng string, rows [][]interface{}) (int64, error) {
	if a.release != nil {
		<-a.release
	}
	a.mu.Lock()
	defer func() {
		a.mu.Unlock()
		a.called <- struct{}{}
	}()
	if a.err != nil {
		return 0, a.err
	}
	a.ranges = append(a.ranges, rng)
	a.rows = append(a.rows, rows)
	return int64(len(rows)), nil
}

func decodePayload(t *testing.T, js string) model.PurchaseOrderPayload {
	t.Helper()
	var p model.PurchaseOrderPayload
	require.NoError(t, json.Unmarshal([]byte(js), &p))
	return p
}

const fullPayload = `{
	"company": {"name": "Acme", "address": "1 Main St", "cityStateZip": "Springfield, IL 62701", "country": "USA", "contact": "Jane"},
	"vendor": {"name": "Bolt Co", "address": "9 Dock Rd", "cityStateZip": "Portland, OR 97201", "country": "USA"},
	"orderInfo": {"poNumber": "PO-7", "orderDate": "2025-01-15", "deliveryDate": "2025-02-01T09:30:00Z"},
	"lineItems": [
		{"description": "Widget", "quantity": 2, "rate": 5, "gst": 0},
		{"description": "Anchor", "quantity": 1, "rate": 12.5, "gst": 10}
	],
	"subTotal": 22.5, "taxRate": 0, "taxAmount": 1.25, "total": 23.75
}`
