// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mm--/fatcat/internal/platform/apperr"
	requestutil "github.com/mm--/fatcat/internal/platform/request"
	"github.com/mm--/fatcat/internal/platform/respond"
	"github.com/mm--/fatcat/internal/platform/validate"
	"github.com/mm--/fatcat/pkg/convert"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the full catalog surface: one route set per entity
// kind plus the editing, changelog, editor and stats endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	for _, kind := range AllKinds {
		handler.registerEntityRoutes(router, kind)
	}
	handler.registerEditingRoutes(router)
}

func (handler *Handler) registerEntityRoutes(router chi.Router, kind Kind) {
	router.Route("/"+kind.String(), func(entityRoute chi.Router) {
		// Literal segments first; chi matches them ahead of {ident}.
		entityRoute.Get("/rev/{revision}", handler.getRevision(kind))
		entityRoute.Get("/edit/{edit_id}", handler.getEdit(kind))
		entityRoute.Delete("/edit/{edit_id}", handler.deleteEdit(kind))
		if _, ok := lookupColumns[kind]; ok {
			entityRoute.Get("/lookup", handler.lookupEntity(kind))
		}

		entityRoute.Post("/", handler.createEntity(kind))
		entityRoute.Post("/batch", handler.createEntityBatch(kind))

		entityRoute.Get("/{ident}", handler.getEntity(kind))
		entityRoute.Put("/{ident}", handler.updateEntity(kind))
		entityRoute.Delete("/{ident}", handler.deleteEntity(kind))
		entityRoute.Get("/{ident}/history", handler.getHistory(kind))
		entityRoute.Get("/{ident}/redirects", handler.getRedirects(kind))
	})
}

// # Shared Request Parsing

// mutationParams resolves the acting editor and the optional editgroup /
// autoaccept query parameters of a mutation request.
func mutationParams(request *http.Request) (MutationParams, error) {
	claims, err := requestutil.RequiredEditor(request)
	if err != nil {
		return MutationParams{}, err
	}

	queryValues := request.URL.Query()
	return MutationParams{
		EditorID:    claims.EditorID,
		EditgroupID: queryValues.Get("editgroup"),
		Autoaccept:  convert.ToBool(queryValues.Get("autoaccept")),
	}, nil
}

func parseEditID(request *http.Request) (int64, error) {
	raw := requestutil.Param(request, "edit_id")
	editID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid edit id: " + raw)
	}
	return editID, nil
}

func readFlags(request *http.Request) (ExpandFlags, HideFlags) {
	queryValues := request.URL.Query()
	return ParseExpand(queryValues.Get("expand")), ParseHide(queryValues.Get("hide"))
}

// decodeEntityBatch reads a JSON array of entities of one kind.
func decodeEntityBatch(request *http.Request, kind Kind) ([]Entity, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(request.Body).Decode(&raw); err != nil {
		return nil, validate.ErrInvalidJSON
	}

	entities := make([]Entity, 0, len(raw))
	for _, message := range raw {
		entity := NewEntity(kind)
		if err := json.Unmarshal(message, entity); err != nil {
			return nil, validate.ErrInvalidJSON
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// # Entity Handlers

func (handler *Handler) getEntity(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		expand, hide := readFlags(request)

		entity, err := handler.service.GetEntity(request.Context(), kind, requestutil.Param(request, "ident"), expand, hide)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, entity)
	}
}

func (handler *Handler) getRevision(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		_, hide := readFlags(request)

		entity, err := handler.service.GetRevision(request.Context(), kind, requestutil.Param(request, "revision"), hide)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, entity)
	}
}

func (handler *Handler) getHistory(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		limit := convert.ToInt(request.URL.Query().Get("limit"))

		history, err := handler.service.GetHistory(request.Context(), kind, requestutil.Param(request, "ident"), limit)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, history)
	}
}

func (handler *Handler) getRedirects(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		redirects, err := handler.service.GetRedirects(request.Context(), kind, requestutil.Param(request, "ident"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, redirects)
	}
}

func (handler *Handler) getEdit(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		editID, err := parseEditID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		edit, err := handler.service.GetEdit(request.Context(), kind, editID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, edit)
	}
}

func (handler *Handler) deleteEdit(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		editID, err := parseEditID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		if err := handler.service.DeleteEdit(request.Context(), kind, editID); err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.NoContent(writer)
	}
}

func (handler *Handler) createEntity(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		params, err := mutationParams(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		entity := NewEntity(kind)
		if err := requestutil.DecodeJSON(request, entity); err != nil {
			respond.Error(writer, request, err)
			return
		}

		edit, err := handler.service.CreateEntity(request.Context(), params, entity)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, edit)
	}
}

func (handler *Handler) createEntityBatch(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		params, err := mutationParams(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		entities, err := decodeEntityBatch(request, kind)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		edits, err := handler.service.CreateEntityBatch(request.Context(), params, entities)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.Created(writer, edits)
	}
}

func (handler *Handler) updateEntity(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		params, err := mutationParams(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		entity := NewEntity(kind)
		if err := requestutil.DecodeJSON(request, entity); err != nil {
			respond.Error(writer, request, err)
			return
		}

		edit, err := handler.service.UpdateEntity(request.Context(), params, requestutil.Param(request, "ident"), entity)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, edit)
	}
}

func (handler *Handler) deleteEntity(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		params, err := mutationParams(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		edit, err := handler.service.DeleteEntity(request.Context(), kind, params, requestutil.Param(request, "ident"))
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, edit)
	}
}

func (handler *Handler) lookupEntity(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		expand, hide := readFlags(request)

		queryValues := request.URL.Query()
		params := make(map[string]string)
		for column := range lookupColumns[kind] {
			if value := queryValues.Get(column); value != "" {
				params[column] = value
			}
		}

		entity, err := handler.service.LookupEntity(request.Context(), kind, params, expand, hide)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		respond.OK(writer, entity)
	}
}
