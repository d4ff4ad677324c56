package service

import (
	"context"
	"fmt"

	"pobackend/internal/repository"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

// AuditQuery filters audit logs by action and purchase order unique id.
type AuditQuery struct {
	Action   string
	UniqueID string
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, q AuditQuery, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// GetAuditLogs returns one page of audit entries, newest first.
func (s *auditService) GetAuditLogs(ctx context.Context, q AuditQuery, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.auditRepo.List(ctx, repository.AuditFilter{Action: q.Action, EntityID: q.UniqueID}, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}
