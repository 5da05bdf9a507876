// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mm--/fatcat/internal/platform/database/schema"
	"github.com/mm--/fatcat/internal/platform/dberr"
	"github.com/mm--/fatcat/pkg/fcid"
	"github.com/mm--/fatcat/pkg/uuidv7"

	"github.com/mm--/fatcat/internal/platform/apperr"
)

// # Edit Context

// editContext is the resolved editing frame a staged mutation runs under.
// It must be created, checked and consumed within one transaction:
// resolving the editgroup outside the transaction would allow staging an
// edit into an editgroup accepted in between.
type editContext struct {
	editorID    uuid.UUID
	editgroupID uuid.UUID
	autoaccept  bool
	extra       map[string]any
}

// makeEditContext resolves the editgroup a mutation belongs to.
//
// # Policy
//
//  1. An explicitly supplied editgroup wins; check() later verifies it is
//     still open.
//  2. Autoaccept without an editgroup inserts a fresh one private to this
//     transaction.
//  3. Otherwise the editor's active editgroup is used, created and marked
//     active first when the editor has none.
func (repository *PostgresRepository) makeEditContext(ctx context.Context, tx pgx.Tx, request EditRequest) (*editContext, error) {
	ec := &editContext{
		editorID:   request.EditorID,
		autoaccept: request.Autoaccept,
		extra:      request.Extra,
	}

	switch {
	case request.EditgroupID != nil:
		ec.editgroupID = *request.EditgroupID

	case request.Autoaccept:
		editgroupID, err := repository.insertEditgroup(ctx, tx, request.EditorID, request.Description, request.Extra)
		if err != nil {
			return nil, err
		}
		ec.editgroupID = editgroupID

	default:
		editgroupID, err := repository.getOrCreateActiveEditgroup(ctx, tx, request.EditorID)
		if err != nil {
			return nil, err
		}
		ec.editgroupID = editgroupID
	}

	return ec, nil
}

// check fails with EditgroupAlreadyAccepted when a changelog row exists for
// the context's editgroup. It must run inside the same transaction as the
// edit inserts whose correctness depends on the editgroup being open.
func (ec *editContext) check(ctx context.Context, tx pgx.Tx) error {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`,
		schema.Changelog.Table, schema.Changelog.EditgroupID,
	)

	var count int64
	if err := tx.QueryRow(ctx, query, ec.editgroupID).Scan(&count); err != nil {
		return dberr.Wrap(err, "check_edit_context")
	}

	if count > 0 {
		return apperr.EditgroupAlreadyAccepted(fcid.FromUUID(ec.editgroupID))
	}
	return nil
}

// insertEditgroup inserts a new editgroup row and returns its id.
func (repository *PostgresRepository) insertEditgroup(ctx context.Context, tx pgx.Tx, editorID uuid.UUID, description *string, extra map[string]any) (uuid.UUID, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, NOW(), $3, $4)
	`,
		schema.Editgroup.Table,
		schema.Editgroup.ID, schema.Editgroup.EditorID, schema.Editgroup.Created,
		schema.Editgroup.Description, schema.Editgroup.ExtraJSON,
	)

	editgroupID := uuid.MustParse(uuidv7.New())
	if _, err := tx.Exec(ctx, query, editgroupID, editorID, description, extra); err != nil {
		return uuid.Nil, dberr.Wrap(err, "insert_editgroup")
	}
	return editgroupID, nil
}

// getOrCreateActiveEditgroup returns the editor's active editgroup,
// creating one and marking it active when the editor has none.
//
// The editor row is locked so two concurrent mutations by the same editor
// cannot each create a distinct "active" editgroup.
func (repository *PostgresRepository) getOrCreateActiveEditgroup(ctx context.Context, tx pgx.Tx, editorID uuid.UUID) (uuid.UUID, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 FOR UPDATE`,
		schema.Editor.ActiveEditgroupID, schema.Editor.Table, schema.Editor.ID,
	)

	var active *uuid.UUID
	if err := tx.QueryRow(ctx, query, editorID).Scan(&active); err != nil {
		return uuid.Nil, dberr.Wrap(err, "get_active_editgroup")
	}
	if active != nil {
		return *active, nil
	}

	editgroupID, err := repository.insertEditgroup(ctx, tx, editorID, nil, nil)
	if err != nil {
		return uuid.Nil, err
	}

	update := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Editor.Table, schema.Editor.ActiveEditgroupID, schema.Editor.ID,
	)
	if _, err := tx.Exec(ctx, update, editorID, editgroupID); err != nil {
		return uuid.Nil, dberr.Wrap(err, "set_active_editgroup")
	}

	return editgroupID, nil
}
