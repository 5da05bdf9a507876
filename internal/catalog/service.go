// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mm--/fatcat/internal/platform/apperr"
	"github.com/mm--/fatcat/internal/platform/constants"
)

// Service wires entity validation, identifier decoding and edit staging
// policy on top of the repository. Handlers talk catalog identifiers
// (26-char strings); the repository talks UUIDs; the conversion lives
// here.
type Service struct {
	repo         Repository
	logger       *slog.Logger
	cache        *redis.Client
	maxBatchSize int
}

// NewService builds the catalog service. cache may be nil, which disables
// statistics caching.
func NewService(repo Repository, logger *slog.Logger, cache *redis.Client, maxBatchSize int) *Service {
	return &Service{
		repo:         repo,
		logger:       logger,
		cache:        cache,
		maxBatchSize: maxBatchSize,
	}
}

// MutationParams carries the caller-supplied editing context of one
// mutation request: the acting editor, an optional explicit editgroup and
// the autoaccept switch (batch creates only).
type MutationParams struct {
	EditorID    string
	EditgroupID string
	Autoaccept  bool
	Description *string
	Extra       map[string]any
}

// editRequest decodes a MutationParams into repository form.
func (service *Service) editRequest(params MutationParams) (EditRequest, error) {
	editorID, err := fcidToUUID(params.EditorID)
	if err != nil {
		return EditRequest{}, err
	}

	request := EditRequest{
		EditorID:    editorID,
		Autoaccept:  params.Autoaccept,
		Description: params.Description,
		Extra:       params.Extra,
	}
	if params.EditgroupID != "" {
		editgroupID, err := fcidToUUID(params.EditgroupID)
		if err != nil {
			return EditRequest{}, err
		}
		request.EditgroupID = &editgroupID
	}
	return request, nil
}

// # Entity Reads

func (service *Service) GetEntity(ctx context.Context, kind Kind, ident string, expand ExpandFlags, hide HideFlags) (Entity, error) {
	identID, err := fcidToUUID(ident)
	if err != nil {
		return nil, err
	}
	return service.repo.GetEntity(ctx, kind, identID, expand, hide)
}

func (service *Service) GetRevision(ctx context.Context, kind Kind, revision string, hide HideFlags) (Entity, error) {
	revisionID, err := uuid.Parse(revision)
	if err != nil {
		return nil, apperr.BadRequest(fmt.Sprintf("invalid revision id: %q", revision))
	}
	return service.repo.GetRevision(ctx, kind, revisionID, hide)
}

func (service *Service) GetHistory(ctx context.Context, kind Kind, ident string, limit int) ([]*HistoryEntry, error) {
	identID, err := fcidToUUID(ident)
	if err != nil {
		return nil, err
	}
	return service.repo.GetHistory(ctx, kind, identID, clampLimit(limit, constants.DefaultHistoryLimit))
}

func (service *Service) GetRedirects(ctx context.Context, kind Kind, ident string) ([]string, error) {
	identID, err := fcidToUUID(ident)
	if err != nil {
		return nil, err
	}
	return service.repo.GetRedirects(ctx, kind, identID)
}

func (service *Service) GetEdit(ctx context.Context, kind Kind, editID int64) (*Edit, error) {
	return service.repo.GetEdit(ctx, kind, editID)
}

func (service *Service) DeleteEdit(ctx context.Context, kind Kind, editID int64) error {
	if err := service.repo.DeleteEdit(ctx, kind, editID); err != nil {
		return err
	}
	service.logger.Warn("edit_deleted", slog.String("kind", kind.String()), slog.Int64("edit_id", editID))
	return nil
}

// # Entity Mutations

func (service *Service) CreateEntity(ctx context.Context, params MutationParams, entity Entity) (*Edit, error) {
	request, err := service.editRequest(params)
	if err != nil {
		return nil, err
	}
	if err := entity.Validate(); err != nil {
		return nil, err
	}

	edit, err := service.repo.CreateEntity(ctx, request, entity)
	if err != nil {
		return nil, err
	}

	service.logger.Info("entity_created",
		slog.String("kind", entity.EntityKind().String()),
		slog.String("ident", edit.Ident),
		slog.String("editgroup_id", edit.EditgroupID),
	)
	return edit, nil
}

func (service *Service) CreateEntityBatch(ctx context.Context, params MutationParams, entities []Entity) ([]*Edit, error) {
	if len(entities) == 0 {
		return nil, apperr.BadRequest("batch is empty")
	}
	if len(entities) > service.maxBatchSize {
		return nil, apperr.BadRequest(fmt.Sprintf("batch exceeds %d entities", service.maxBatchSize))
	}

	request, err := service.editRequest(params)
	if err != nil {
		return nil, err
	}
	for _, entity := range entities {
		if err := entity.Validate(); err != nil {
			return nil, err
		}
	}

	edits, err := service.repo.CreateEntityBatch(ctx, request, entities)
	if err != nil {
		return nil, err
	}

	service.logger.Info("entity_batch_created",
		slog.String("kind", entities[0].EntityKind().String()),
		slog.Int("count", len(edits)),
		slog.Bool("autoaccept", params.Autoaccept),
	)
	return edits, nil
}

func (service *Service) UpdateEntity(ctx context.Context, params MutationParams, ident string, entity Entity) (*Edit, error) {
	request, err := service.editRequest(params)
	if err != nil {
		return nil, err
	}
	identID, err := fcidToUUID(ident)
	if err != nil {
		return nil, err
	}

	// Redirect and revert updates carry no entity body worth validating;
	// only a genuine new revision is checked.
	meta := entity.Common()
	if meta.Redirect == "" && meta.Revision == "" {
		if err := entity.Validate(); err != nil {
			return nil, err
		}
	}

	edit, err := service.repo.UpdateEntity(ctx, request, identID, entity)
	if err != nil {
		return nil, err
	}

	service.logger.Info("entity_updated",
		slog.String("kind", entity.EntityKind().String()),
		slog.String("ident", edit.Ident),
		slog.String("editgroup_id", edit.EditgroupID),
	)
	return edit, nil
}

func (service *Service) DeleteEntity(ctx context.Context, kind Kind, params MutationParams, ident string) (*Edit, error) {
	request, err := service.editRequest(params)
	if err != nil {
		return nil, err
	}
	identID, err := fcidToUUID(ident)
	if err != nil {
		return nil, err
	}

	edit, err := service.repo.DeleteEntity(ctx, kind, request, identID)
	if err != nil {
		return nil, err
	}

	service.logger.Warn("entity_deleted",
		slog.String("kind", kind.String()),
		slog.String("ident", edit.Ident),
		slog.String("editgroup_id", edit.EditgroupID),
	)
	return edit, nil
}

// # Lookups

// lookupValidators maps lookup columns to their syntax check. Columns
// without an entry (core_id) accept any non-empty value.
var lookupValidators = map[string]func(string) error{
	"doi":          CheckDOI,
	"wikidata_qid": CheckWikidataQID,
	"isbn13":       CheckISBN13,
	"pmcid":        CheckPMCID,
	"pmid":         CheckPMID,
	"issnl":        CheckISSN,
	"orcid":        CheckORCID,
	"md5":          CheckMD5,
	"sha1":         CheckSHA1,
	"sha256":       CheckSHA256,
}

// LookupEntity resolves an external identifier to a live entity. params
// holds the caller-supplied identifier query parameters; exactly one must
// be non-empty, and its value must pass the column's syntax check before
// any query runs.
func (service *Service) LookupEntity(ctx context.Context, kind Kind, params map[string]string, expand ExpandFlags, hide HideFlags) (Entity, error) {
	var column, value string
	supplied := 0
	for name, raw := range params {
		if raw == "" {
			continue
		}
		supplied++
		column, value = name, raw
	}
	if supplied != 1 {
		return nil, apperr.MissingOrMultipleExternalID()
	}

	if check, ok := lookupValidators[column]; ok {
		if err := check(value); err != nil {
			return nil, err
		}
	}

	return service.repo.LookupEntity(ctx, kind, column, value, expand, hide)
}

// clampLimit applies default and ceiling to a caller-supplied limit.
func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > constants.MaxPageLimit {
		return constants.MaxPageLimit
	}
	return limit
}
