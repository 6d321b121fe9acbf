package service

import (
	"github.com/dom/stargate-tracker/internal/config"
	"github.com/dom/stargate-tracker/internal/metrics"
	"github.com/dom/stargate-tracker/internal/repository"
	"go.uber.org/zap"
)

type Services struct {
	Person     *PersonService
	Duty       *DutyService
	Query      *QueryService
	RequestLog *RequestLogService
}

func NewServices(repos *repository.Repositories, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *Services {
	return &Services{
		Person:     NewPersonService(repos, log.Named("person"), m),
		Duty:       NewDutyService(repos, cfg.Duty, log.Named("duty"), m),
		Query:      NewQueryService(repos),
		RequestLog: NewRequestLogService(repos.AuditLog, cfg.RequestAuditEnabled, log.Named("audit")),
	}
}
