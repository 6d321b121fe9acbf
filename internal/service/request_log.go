package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// RequestLogService writes the audit trail of API requests: a start row, a
// row carrying the request payload and an end row with the elapsed time.
// The audit trail is best effort and never fails the request it describes.
type RequestLogService struct {
	repo    repository.AuditLogRepository
	enabled bool
	log     *zap.Logger
	now     func() time.Time
}

func NewRequestLogService(repo repository.AuditLogRepository, enabled bool, log *zap.Logger) *RequestLogService {
	return &RequestLogService{
		repo:    repo,
		enabled: enabled,
		log:     log,
		now:     time.Now,
	}
}

// Track runs fn and records its lifecycle under a fresh request identifier.
// fn's error is returned unchanged.
func (s *RequestLogService) Track(ctx context.Context, name string, req any, fn func(ctx context.Context) error) error {
	if !s.enabled {
		return fn(ctx)
	}

	// audit rows are still written when the caller goes away
	auditCtx := context.WithoutCancel(ctx)
	requestID := uuid.NewString()
	started := s.now()

	s.write(auditCtx, &domain.AuditLog{
		RequestName:       name,
		RequestIdentifier: requestID,
		Message:           fmt.Sprintf("[STARTING] %s", name),
		Timestamp:         started,
	})

	if props, err := json.Marshal(req); err != nil {
		s.log.Warn("request audit: encode props", zap.String("request", name), zap.Error(err))
	} else {
		s.write(auditCtx, &domain.AuditLog{
			RequestName:       name,
			RequestIdentifier: requestID,
			Message:           fmt.Sprintf("[PROPS] %s", props),
			Props:             datatypes.JSON(props),
			Timestamp:         s.now(),
		})
	}

	err := fn(ctx)

	ended := s.now()
	elapsed := ended.Sub(started).Milliseconds()
	message := fmt.Sprintf("[ENDED] %s", name)
	if err != nil {
		message = fmt.Sprintf("[FAILED] %s: %s", name, err)
	}
	s.write(auditCtx, &domain.AuditLog{
		RequestName:       name,
		RequestIdentifier: requestID,
		Message:           message,
		Timestamp:         ended,
		ElapsedMillis:     &elapsed,
	})

	return err
}

func (s *RequestLogService) write(ctx context.Context, entry *domain.AuditLog) {
	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.Warn("request audit: write failed",
			zap.String("request", entry.RequestName),
			zap.String("request_identifier", entry.RequestIdentifier),
			zap.Error(err),
		)
	}
}
