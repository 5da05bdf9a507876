// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mm--/fatcat/internal/platform/apperr"
	"github.com/mm--/fatcat/internal/platform/database/schema"
	"github.com/mm--/fatcat/internal/platform/dberr"
	"github.com/mm--/fatcat/pkg/fcid"
	"github.com/mm--/fatcat/pkg/uuidv7"
)

// dbtx abstracts over the pool and an open transaction so read helpers can
// serve both paths. Both *pgxpool.Pool and pgx.Tx satisfy it.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements [Repository] on top of a pgx connection
// pool, with one revision store per entity kind.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	stores map[Kind]revStore
}

// NewPostgresRepository wires the per-kind revision stores into a repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	repository := &PostgresRepository{pool: pool}
	repository.stores = map[Kind]revStore{
		KindContainer:  &containerRevStore{},
		KindCreator:    &creatorRevStore{},
		KindFile:       &fileRevStore{},
		KindFileset:    &filesetRevStore{},
		KindWebcapture: &webcaptureRevStore{},
		KindRelease:    &releaseRevStore{},
		KindWork:       &workRevStore{},
	}
	return repository
}

// beginSerializable opens the transaction every mutation runs in.
//
// Serializable isolation plus the schema's uniqueness constraints (one
// changelog row per editgroup, unique usernames) is what makes concurrent
// acceptance safe without any in-process locking.
func (repository *PostgresRepository) beginSerializable(ctx context.Context) (pgx.Tx, error) {
	tx, err := repository.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, dberr.Wrap(err, "begin_transaction")
	}
	return tx, nil
}

// beginSnapshot opens the read-only transaction cross-row reads share, so
// expansion joins observe one consistent snapshot.
func (repository *PostgresRepository) beginSnapshot(ctx context.Context) (pgx.Tx, error) {
	tx, err := repository.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, dberr.Wrap(err, "begin_snapshot")
	}
	return tx, nil
}

// # Editors

// CreateEditor inserts a new editor. The id is assigned here; the username
// must be unique (violation surfaces as BadRequest via dberr).
func (repository *PostgresRepository) CreateEditor(ctx context.Context, editor *Editor) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`,
		schema.Editor.Table,
		schema.Editor.ID, schema.Editor.Username, schema.Editor.IsAdmin, schema.Editor.IsBot,
	)

	editorID := uuid.MustParse(uuidv7.New())
	if _, err := repository.pool.Exec(ctx, query, editorID, editor.Username, editor.IsAdmin, editor.IsBot); err != nil {
		return dberr.Wrap(err, "create_editor")
	}

	editor.EditorID = fcid.FromUUID(editorID)
	return nil
}

// GetEditor returns an editor by id.
func (repository *PostgresRepository) GetEditor(ctx context.Context, editorID uuid.UUID) (*Editor, error) {
	return repository.getEditor(ctx, repository.pool, editorID)
}

func (repository *PostgresRepository) getEditor(ctx context.Context, db dbtx, editorID uuid.UUID) (*Editor, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Editor.ID, schema.Editor.Username, schema.Editor.IsAdmin,
		schema.Editor.IsBot, schema.Editor.ActiveEditgroupID,
		schema.Editor.Table, schema.Editor.ID,
	)

	var (
		id     uuid.UUID
		editor Editor
		active *uuid.UUID
	)
	err := db.QueryRow(ctx, query, editorID).Scan(&id, &editor.Username, &editor.IsAdmin, &editor.IsBot, &active)
	if err != nil {
		return nil, dberr.Wrap(err, "get_editor")
	}

	editor.EditorID = fcid.FromUUID(id)
	if active != nil {
		activeID := fcid.FromUUID(*active)
		editor.ActiveEditgroupID = &activeID
	}
	return &editor, nil
}

// UpdateEditorUsername renames an editor and returns the updated row.
func (repository *PostgresRepository) UpdateEditorUsername(ctx context.Context, editorID uuid.UUID, username string) (*Editor, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Editor.Table, schema.Editor.Username, schema.Editor.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, editorID, username)
	if err != nil {
		return nil, dberr.Wrap(err, "update_editor_username")
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("editor")
	}

	return repository.GetEditor(ctx, editorID)
}

// # Editgroups

// CreateEditgroup opens a fresh editgroup for the editor. Unlike the
// resolve path in makeEditContext it never touches active_editgroup_id:
// explicitly created editgroups are managed by the client.
func (repository *PostgresRepository) CreateEditgroup(ctx context.Context, editorID uuid.UUID, description *string, extra map[string]any) (*Editgroup, error) {
	tx, err := repository.beginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	editgroupID, err := repository.insertEditgroup(ctx, tx, editorID, description, extra)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit_create_editgroup")
	}

	return repository.GetEditgroup(ctx, editgroupID)
}

// GetEditgroup returns an editgroup with its staged edits grouped by kind.
func (repository *PostgresRepository) GetEditgroup(ctx context.Context, editgroupID uuid.UUID) (*Editgroup, error) {
	editgroup, err := repository.getEditgroupRow(ctx, repository.pool, editgroupID)
	if err != nil {
		return nil, err
	}

	edits := &EditgroupEdits{}
	for _, kind := range AllKinds {
		kindEdits, err := repository.listEditgroupEdits(ctx, repository.pool, kind, editgroupID)
		if err != nil {
			return nil, err
		}
		*edits.byKind(kind) = kindEdits
	}
	editgroup.Edits = edits

	return editgroup, nil
}

func (repository *PostgresRepository) getEditgroupRow(ctx context.Context, db dbtx, editgroupID uuid.UUID) (*Editgroup, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Editgroup.ID, schema.Editgroup.EditorID, schema.Editgroup.Created,
		schema.Editgroup.Description, schema.Editgroup.ExtraJSON,
		schema.Editgroup.Table, schema.Editgroup.ID,
	)

	var (
		id        uuid.UUID
		editorID  uuid.UUID
		editgroup Editgroup
	)
	err := db.QueryRow(ctx, query, editgroupID).Scan(&id, &editorID, &editgroup.Created, &editgroup.Description, &editgroup.Extra)
	if err != nil {
		return nil, dberr.Wrap(err, "get_editgroup")
	}

	editgroup.EditgroupID = fcid.FromUUID(id)
	editgroup.EditorID = fcid.FromUUID(editorID)
	return &editgroup, nil
}

// # Acceptance Protocol

// AcceptEditgroup promotes every staged edit of the editgroup inside one
// serializable transaction.
//
// # Steps
//
//  1. Assert the editgroup exists and has no changelog row yet.
//  2. Project edits onto idents, kind by kind, in acceptance order.
//  3. Append the changelog row (UNIQUE editgroup_id backstops step 1).
//  4. Clear every editor's active_editgroup_id pointing here.
//
// Any failure aborts the transaction; no partial acceptance is visible.
func (repository *PostgresRepository) AcceptEditgroup(ctx context.Context, editgroupID uuid.UUID) (*ChangelogEntry, error) {
	tx, err := repository.beginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	entry, err := repository.acceptEditgroupTx(ctx, tx, editgroupID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit_accept_editgroup")
	}
	return entry, nil
}

// acceptEditgroupTx is the transaction body of acceptance, shared with the
// autoaccept path of batch creation.
func (repository *PostgresRepository) acceptEditgroupTx(ctx context.Context, tx pgx.Tx, editgroupID uuid.UUID) (*ChangelogEntry, error) {

	// 1. The editgroup must exist and must not be accepted already.
	editgroup, err := repository.getEditgroupRow(ctx, tx, editgroupID)
	if err != nil {
		return nil, err
	}

	guard := &editContext{editgroupID: editgroupID}
	if err := guard.check(ctx, tx); err != nil {
		return nil, err
	}

	// 2. Project staged edits onto the ident tables, kind by kind.
	for _, kind := range AllKinds {
		if err := repository.acceptEdits(ctx, tx, kind, editgroupID); err != nil {
			return nil, err
		}
	}

	// 3. Append the changelog row.
	insert := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1)
		RETURNING %s, %s
	`,
		schema.Changelog.Table, schema.Changelog.EditgroupID,
		schema.Changelog.ID, schema.Changelog.Timestamp,
	)

	entry := &ChangelogEntry{EditgroupID: editgroup.EditgroupID}
	if err := tx.QueryRow(ctx, insert, editgroupID).Scan(&entry.Index, &entry.Timestamp); err != nil {
		return nil, dberr.Wrap(err, "insert_changelog")
	}

	// 4. The accepted editgroup is no longer anyone's active editgroup.
	clearActive := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		schema.Editor.Table, schema.Editor.ActiveEditgroupID, schema.Editor.ActiveEditgroupID,
	)
	if _, err := tx.Exec(ctx, clearActive, editgroupID); err != nil {
		return nil, dberr.Wrap(err, "clear_active_editgroup")
	}

	return entry, nil
}

// # Changelog

// GetChangelog lists changelog entries, newest first.
func (repository *PostgresRepository) GetChangelog(ctx context.Context, limit int) ([]*ChangelogEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		ORDER BY %s DESC
		LIMIT $1
	`,
		schema.Changelog.ID, schema.Changelog.EditgroupID, schema.Changelog.Timestamp,
		schema.Changelog.Table, schema.Changelog.ID,
	)

	rows, err := repository.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_changelog")
	}
	defer rows.Close()

	return scanChangelogEntries(rows)
}

// GetChangelogEntry returns one changelog entry with its editgroup.
func (repository *PostgresRepository) GetChangelogEntry(ctx context.Context, index int64) (*ChangelogEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Changelog.ID, schema.Changelog.EditgroupID, schema.Changelog.Timestamp,
		schema.Changelog.Table, schema.Changelog.ID,
	)

	var (
		entry       ChangelogEntry
		editgroupID uuid.UUID
	)
	err := repository.pool.QueryRow(ctx, query, index).Scan(&entry.Index, &editgroupID, &entry.Timestamp)
	if err != nil {
		return nil, dberr.Wrap(err, "get_changelog_entry")
	}

	entry.EditgroupID = fcid.FromUUID(editgroupID)

	editgroup, err := repository.GetEditgroup(ctx, editgroupID)
	if err != nil {
		return nil, err
	}
	entry.Editgroup = editgroup

	return &entry, nil
}

// GetEditorChangelog lists changelog entries for one editor's editgroups,
// newest first.
func (repository *PostgresRepository) GetEditorChangelog(ctx context.Context, editorID uuid.UUID, limit int) ([]*ChangelogEntry, error) {
	query := fmt.Sprintf(`
		SELECT cl.%s, cl.%s, cl.%s
		FROM %s cl
		JOIN %s eg ON eg.%s = cl.%s
		WHERE eg.%s = $1
		ORDER BY cl.%s DESC
		LIMIT $2
	`,
		schema.Changelog.ID, schema.Changelog.EditgroupID, schema.Changelog.Timestamp,
		schema.Changelog.Table,
		schema.Editgroup.Table, schema.Editgroup.ID, schema.Changelog.EditgroupID,
		schema.Editgroup.EditorID,
		schema.Changelog.ID,
	)

	rows, err := repository.pool.Query(ctx, query, editorID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_editor_changelog")
	}
	defer rows.Close()

	return scanChangelogEntries(rows)
}

func scanChangelogEntries(rows pgx.Rows) ([]*ChangelogEntry, error) {
	entries := make([]*ChangelogEntry, 0)
	for rows.Next() {
		var (
			entry       ChangelogEntry
			editgroupID uuid.UUID
		)
		if err := rows.Scan(&entry.Index, &editgroupID, &entry.Timestamp); err != nil {
			return nil, dberr.Wrap(err, "scan_changelog_entry")
		}
		entry.EditgroupID = fcid.FromUUID(editgroupID)
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// # Statistics

// Stats counts live idents per kind plus changelog, editgroup and editor
// totals, sharing one read snapshot.
func (repository *PostgresRepository) Stats(ctx context.Context) (*Stats, error) {
	tx, err := repository.beginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	stats := &Stats{Entities: make(map[string]int64, len(AllKinds))}

	for _, kind := range AllKinds {
		tables := schema.Entity(kind.String())
		query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s AND %s IS NOT NULL`,
			tables.Ident.Table, tables.Ident.IsLive, tables.Ident.RevID,
		)

		var count int64
		if err := tx.QueryRow(ctx, query).Scan(&count); err != nil {
			return nil, dberr.Wrap(err, "count_"+kind.String())
		}
		stats.Entities[kind.String()] = count
	}

	changelogQuery := fmt.Sprintf(`SELECT COALESCE(max(%s), 0) FROM %s`,
		schema.Changelog.ID, schema.Changelog.Table,
	)
	if err := tx.QueryRow(ctx, changelogQuery).Scan(&stats.ChangelogIndex); err != nil {
		return nil, dberr.Wrap(err, "max_changelog")
	}

	editgroupQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Editgroup.Table)
	if err := tx.QueryRow(ctx, editgroupQuery).Scan(&stats.Editgroups); err != nil {
		return nil, dberr.Wrap(err, "count_editgroups")
	}

	editorQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Editor.Table)
	if err := tx.QueryRow(ctx, editorQuery).Scan(&stats.Editors); err != nil {
		return nil, dberr.Wrap(err, "count_editors")
	}

	return stats, tx.Commit(ctx)
}
