// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mm--/fatcat/internal/platform/constants"
	"github.com/mm--/fatcat/internal/platform/validate"
)

// # Editors

func (service *Service) CreateEditor(ctx context.Context, editor *Editor) error {
	validator := &validate.Validator{}
	validator.Required("username", editor.Username).MaxLen("username", editor.Username, 64)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateEditor(ctx, editor); err != nil {
		return err
	}

	service.logger.Info("editor_created",
		slog.String("editor_id", editor.EditorID),
		slog.String("username", editor.Username),
		slog.Bool("is_bot", editor.IsBot),
	)
	return nil
}

func (service *Service) GetEditor(ctx context.Context, editorID string) (*Editor, error) {
	id, err := fcidToUUID(editorID)
	if err != nil {
		return nil, err
	}
	return service.repo.GetEditor(ctx, id)
}

func (service *Service) UpdateEditorUsername(ctx context.Context, editorID, username string) (*Editor, error) {
	id, err := fcidToUUID(editorID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required("username", username).MaxLen("username", username, 64)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	editor, err := service.repo.UpdateEditorUsername(ctx, id, username)
	if err != nil {
		return nil, err
	}

	service.logger.Info("editor_renamed",
		slog.String("editor_id", editorID),
		slog.String("username", username),
	)
	return editor, nil
}

// # Editgroups

func (service *Service) CreateEditgroup(ctx context.Context, editorID string, description *string, extra map[string]any) (*Editgroup, error) {
	id, err := fcidToUUID(editorID)
	if err != nil {
		return nil, err
	}

	editgroup, err := service.repo.CreateEditgroup(ctx, id, description, extra)
	if err != nil {
		return nil, err
	}

	service.logger.Info("editgroup_created",
		slog.String("editgroup_id", editgroup.EditgroupID),
		slog.String("editor_id", editorID),
	)
	return editgroup, nil
}

func (service *Service) GetEditgroup(ctx context.Context, editgroupID string) (*Editgroup, error) {
	id, err := fcidToUUID(editgroupID)
	if err != nil {
		return nil, err
	}
	return service.repo.GetEditgroup(ctx, id)
}

func (service *Service) AcceptEditgroup(ctx context.Context, editgroupID string) (*ChangelogEntry, error) {
	id, err := fcidToUUID(editgroupID)
	if err != nil {
		return nil, err
	}

	entry, err := service.repo.AcceptEditgroup(ctx, id)
	if err != nil {
		return nil, err
	}

	service.logger.Info("editgroup_accepted",
		slog.String("editgroup_id", editgroupID),
		slog.Int64("changelog_index", entry.Index),
	)
	return entry, nil
}

// # Changelog

func (service *Service) GetChangelog(ctx context.Context, limit int) ([]*ChangelogEntry, error) {
	return service.repo.GetChangelog(ctx, clampLimit(limit, constants.DefaultChangelogLimit))
}

func (service *Service) GetChangelogEntry(ctx context.Context, index int64) (*ChangelogEntry, error) {
	return service.repo.GetChangelogEntry(ctx, index)
}

func (service *Service) GetEditorChangelog(ctx context.Context, editorID string, limit int) ([]*ChangelogEntry, error) {
	id, err := fcidToUUID(editorID)
	if err != nil {
		return nil, err
	}
	return service.repo.GetEditorChangelog(ctx, id, clampLimit(limit, constants.DefaultChangelogLimit))
}

// # Statistics

// Stats returns catalog-wide counts, cached in Redis for a few minutes.
// Cache failures degrade to a direct computation, never to an error.
func (service *Service) Stats(ctx context.Context) (*Stats, error) {
	cacheKey := constants.RedisPrefixStats + "summary"

	if service.cache != nil {
		if payload, err := service.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached Stats
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats, err := service.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := service.cache.Set(ctx, cacheKey, payload, constants.StatsCacheTTL).Err(); err != nil {
				service.logger.Debug("stats_cache_write_failed", slog.String("error", err.Error()))
			}
		}
	}
	return stats, nil
}
