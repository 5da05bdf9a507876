// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mm--/fatcat/internal/platform/apperr"
	"github.com/mm--/fatcat/internal/platform/middleware"
	requestutil "github.com/mm--/fatcat/internal/platform/request"
	"github.com/mm--/fatcat/internal/platform/respond"
	"github.com/mm--/fatcat/pkg/convert"
)

func (handler *Handler) registerEditingRoutes(router chi.Router) {
	router.Route("/editgroup", func(editgroupRoute chi.Router) {
		editgroupRoute.Post("/", handler.createEditgroup)
		editgroupRoute.Get("/{editgroup_id}", handler.getEditgroup)
		editgroupRoute.Post("/{editgroup_id}/accept", handler.acceptEditgroup)
	})

	router.Route("/changelog", func(changelogRoute chi.Router) {
		changelogRoute.Get("/", handler.getChangelog)
		changelogRoute.Get("/{index}", handler.getChangelogEntry)
	})

	router.Route("/editor", func(editorRoute chi.Router) {
		editorRoute.With(middleware.RequireAdmin).Post("/", handler.createEditor)
		editorRoute.Get("/{editor_id}", handler.getEditor)
		editorRoute.Put("/{editor_id}", handler.updateEditor)
		editorRoute.Get("/{editor_id}/changelog", handler.getEditorChangelog)
	})

	router.Get("/stats", handler.getStats)
}

// # Editgroup Handlers

// editgroupInput is the POST /editgroup request body.
type editgroupInput struct {
	Description *string        `json:"description,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

func (handler *Handler) createEditgroup(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredEditor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input editgroupInput
	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	editgroup, err := handler.service.CreateEditgroup(request.Context(), claims.EditorID, input.Description, input.Extra)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, editgroup)
}

func (handler *Handler) getEditgroup(writer http.ResponseWriter, request *http.Request) {
	editgroup, err := handler.service.GetEditgroup(request.Context(), requestutil.Param(request, "editgroup_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, editgroup)
}

// acceptEditgroup promotes an editgroup. Only the owning editor or an
// admin may accept.
func (handler *Handler) acceptEditgroup(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredEditor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	editgroupID := requestutil.Param(request, "editgroup_id")

	if !claims.IsAdmin {
		editgroup, err := handler.service.GetEditgroup(request.Context(), editgroupID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		if editgroup.EditorID != claims.EditorID {
			respond.Error(writer, request, apperr.Forbidden("Only the editgroup owner or an admin can accept"))
			return
		}
	}

	entry, err := handler.service.AcceptEditgroup(request.Context(), editgroupID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

// # Changelog Handlers

func (handler *Handler) getChangelog(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToInt(request.URL.Query().Get("limit"))

	entries, err := handler.service.GetChangelog(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func (handler *Handler) getChangelogEntry(writer http.ResponseWriter, request *http.Request) {
	raw := requestutil.Param(request, "index")
	index, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respond.Error(writer, request, apperr.BadRequest("invalid changelog index: "+raw))
		return
	}

	entry, err := handler.service.GetChangelogEntry(request.Context(), index)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entry)
}

// # Editor Handlers

func (handler *Handler) createEditor(writer http.ResponseWriter, request *http.Request) {
	var input Editor
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateEditor(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) getEditor(writer http.ResponseWriter, request *http.Request) {
	editor, err := handler.service.GetEditor(request.Context(), requestutil.Param(request, "editor_id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, editor)
}

// updateEditor changes an editor's username. Admin or self only.
func (handler *Handler) updateEditor(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredEditor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	editorID := requestutil.Param(request, "editor_id")

	if !claims.IsAdmin && claims.EditorID != editorID {
		respond.Error(writer, request, apperr.Forbidden("Editors can only rename themselves"))
		return
	}

	var input Editor
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	editor, err := handler.service.UpdateEditorUsername(request.Context(), editorID, input.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, editor)
}

func (handler *Handler) getEditorChangelog(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToInt(request.URL.Query().Get("limit"))

	entries, err := handler.service.GetEditorChangelog(request.Context(), requestutil.Param(request, "editor_id"), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

// # Statistics Handler

func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.Stats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
