package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/service"
	"go.uber.org/zap"
)

type AstronautDutyHandler struct {
	dutyService  *service.DutyService
	queryService *service.QueryService
	requestLog   *service.RequestLogService
	log          *zap.Logger
}

func NewAstronautDutyHandler(dutyService *service.DutyService, queryService *service.QueryService, requestLog *service.RequestLogService, log *zap.Logger) *AstronautDutyHandler {
	return &AstronautDutyHandler{
		dutyService:  dutyService,
		queryService: queryService,
		requestLog:   requestLog,
		log:          log,
	}
}

type recordDutyRequest struct {
	Name          string   `json:"name"`
	Rank          string   `json:"rank"`
	DutyTitle     string   `json:"dutyTitle"`
	DutyStartDate flexTime `json:"dutyStartDate"`
}

func (h *AstronautDutyHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	req := nameRequest{Name: pathName(r)}

	var result domain.Lookup[domain.DutyHistory]
	err := h.requestLog.Track(r.Context(), "GetAstronautDutiesByName", req, func(ctx context.Context) error {
		var err error
		result, err = h.queryService.GetDutyHistoryByName(ctx, req.Name)
		return err
	})
	if err != nil {
		writeError(w, h.log, "astronautDuty.GetByName", err)
		return
	}

	history, found := result.Get()
	if !found {
		base := softNotFound(service.PersonNotFoundMessage(req.Name))
		respond(w, base, DutyHistoryResponse{
			BaseResponse:    base,
			AstronautDuties: []domain.AstronautDuty{},
		})
		return
	}

	base := successful()
	respond(w, base, DutyHistoryResponse{
		BaseResponse:    base,
		Person:          &history.Person,
		AstronautDuties: history.Duties,
	})
}

func (h *AstronautDutyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body recordDutyRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, h.log, "astronautDuty.Create", err)
		return
	}

	input := service.RecordDutyInput{
		Name:          body.Name,
		Rank:          body.Rank,
		DutyTitle:     body.DutyTitle,
		DutyStartDate: time.Time(body.DutyStartDate),
	}

	var id int64
	err := h.requestLog.Track(r.Context(), "CreateAstronautDuty", input, func(ctx context.Context) error {
		var err error
		id, err = h.dutyService.RecordDuty(ctx, input)
		return err
	})
	if err != nil {
		writeError(w, h.log, "astronautDuty.Create", err)
		return
	}

	base := successful()
	respond(w, base, CreatedResponse{BaseResponse: base, ID: id})
}
