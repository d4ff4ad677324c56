package service

import (
	"context"
	"errors"
	"testing"

	"pobackend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuditLogs(t *testing.T) {
	repo := &fakeAuditRepo{}
	ctx := context.Background()
	require.NoError(t, repo.Log(ctx, &model.AuditLog{Action: model.ActionCreatePurchaseOrder, EntityID: "u-1", EntityName: "PO-1", Details: `{"total":"10"}`}))
	require.NoError(t, repo.Log(ctx, &model.AuditLog{Action: model.ActionAppendSheet, EntityID: "u-1", EntityName: "PO-1"}))

	svc := NewAuditService(repo)
	logs, total, err := svc.GetAuditLogs(ctx, AuditQuery{Action: model.ActionAppendSheet}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
	assert.Equal(t, "PO-1", logs[0].EntityName)
	assert.NotEmpty(t, logs[0].CreatedAt)

	repo.err = errors.New("down")
	_, _, err = svc.GetAuditLogs(ctx, AuditQuery{}, 1, 20)
	assert.ErrorIs(t, err, ErrStorage)
}
