package handlers

import (
	"context"
	"net/http"

	"github.com/dom/stargate-tracker/internal/domain"
	"github.com/dom/stargate-tracker/internal/service"
	"go.uber.org/zap"
)

type PersonHandler struct {
	personService *service.PersonService
	queryService  *service.QueryService
	requestLog    *service.RequestLogService
	log           *zap.Logger
}

func NewPersonHandler(personService *service.PersonService, queryService *service.QueryService, requestLog *service.RequestLogService, log *zap.Logger) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		queryService:  queryService,
		requestLog:    requestLog,
		log:           log,
	}
}

type createPersonRequest struct {
	Name string `json:"name"`
}

type renamePersonRequest struct {
	CurrentName string `json:"currentName"`
	NewName     string `json:"newName"`
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *PersonHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	var people []domain.PersonAstronaut
	err := h.requestLog.Track(r.Context(), "GetPeople", struct{}{}, func(ctx context.Context) error {
		var err error
		people, err = h.queryService.GetAllPeople(ctx)
		return err
	})
	if err != nil {
		writeError(w, h.log, "person.GetAll", err)
		return
	}

	base := successful()
	respond(w, base, PeopleResponse{BaseResponse: base, People: people})
}

func (h *PersonHandler) GetByName(w http.ResponseWriter, r *http.Request) {
	req := nameRequest{Name: pathName(r)}

	var result domain.Lookup[domain.PersonAstronaut]
	err := h.requestLog.Track(r.Context(), "GetPersonByName", req, func(ctx context.Context) error {
		var err error
		result, err = h.queryService.GetPersonByName(ctx, req.Name)
		return err
	})
	if err != nil {
		writeError(w, h.log, "person.GetByName", err)
		return
	}

	person, found := result.Get()
	if !found {
		base := softNotFound(service.PersonNotFoundMessage(req.Name))
		respond(w, base, PersonResponse{BaseResponse: base})
		return
	}

	base := successful()
	respond(w, base, PersonResponse{BaseResponse: base, Person: &person})
}

func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	name, err := decodeNameBody(r, "name")
	if err != nil {
		writeError(w, h.log, "person.Create", err)
		return
	}
	req := createPersonRequest{Name: name}

	var person *domain.Person
	err = h.requestLog.Track(r.Context(), "CreatePerson", req, func(ctx context.Context) error {
		var err error
		person, err = h.personService.CreatePerson(ctx, req.Name)
		return err
	})
	if err != nil {
		writeError(w, h.log, "person.Create", err)
		return
	}

	base := successful()
	respond(w, base, CreatedResponse{BaseResponse: base, ID: person.ID})
}

func (h *PersonHandler) Rename(w http.ResponseWriter, r *http.Request) {
	newName, err := decodeNameBody(r, "newName")
	if err != nil {
		writeError(w, h.log, "person.Rename", err)
		return
	}
	req := renamePersonRequest{CurrentName: pathName(r), NewName: newName}

	var id int64
	err = h.requestLog.Track(r.Context(), "UpdatePerson", req, func(ctx context.Context) error {
		var err error
		id, err = h.personService.RenamePerson(ctx, req.CurrentName, req.NewName)
		return err
	})
	if err != nil {
		writeError(w, h.log, "person.Rename", err)
		return
	}

	base := successful()
	respond(w, base, CreatedResponse{BaseResponse: base, ID: id})
}
