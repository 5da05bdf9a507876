// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mm--/fatcat/internal/platform/apperr"
	"github.com/mm--/fatcat/internal/platform/database/schema"
	"github.com/mm--/fatcat/internal/platform/dberr"
	"github.com/mm--/fatcat/pkg/fcid"
	"github.com/mm--/fatcat/pkg/uuidv7"
)

// # Per-Kind Revision Stores

// revStore is the capability a single entity kind contributes to the CRUD
// engine: how to persist and load its revision rows. Everything else
// (idents, edits, history, redirects, acceptance) is generic and lives in
// this file.
type revStore interface {
	// kind names the entity kind this store serves.
	kind() Kind

	// insertRev persists the entity's content as a new immutable revision
	// and returns the revision id.
	insertRev(ctx context.Context, tx pgx.Tx, entity Entity) (uuid.UUID, error)

	// loadRev populates the entity from a revision row. Fields suppressed
	// by hide are not queried at all.
	loadRev(ctx context.Context, db dbtx, revision uuid.UUID, entity Entity, hide HideFlags) error
}

// identRow mirrors one `{kind}_ident` row.
type identRow struct {
	id         uuid.UUID
	isLive     bool
	revID      *uuid.UUID
	redirectID *uuid.UUID
}

// tombstoned reports a live ident with neither revision nor redirect.
func (row identRow) tombstoned() bool {
	return row.isLive && row.revID == nil && row.redirectID == nil
}

// loadIdent fetches an ident row. forUpdate locks it for the duration of
// the enclosing transaction (mutation paths only).
func (repository *PostgresRepository) loadIdent(ctx context.Context, db dbtx, kind Kind, identID uuid.UUID, forUpdate bool) (identRow, error) {
	tables := schema.Entity(kind.String())

	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		tables.Ident.ID, tables.Ident.IsLive, tables.Ident.RevID, tables.Ident.RedirectID,
		tables.Ident.Table, tables.Ident.ID,
	)
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var row identRow
	err := db.QueryRow(ctx, query, identID).Scan(&row.id, &row.isLive, &row.revID, &row.redirectID)
	if err != nil {
		return identRow{}, dberr.Wrap(err, "load_"+kind.String()+"_ident")
	}
	return row, nil
}

// # Entity Reads

// GetEntity returns the current live revision contents of an ident,
// resolving at most one redirect hop. Expansions share a read snapshot
// with the primary fetch.
func (repository *PostgresRepository) GetEntity(ctx context.Context, kind Kind, ident uuid.UUID, expand ExpandFlags, hide HideFlags) (Entity, error) {
	if !expand.Any() {
		return repository.getEntity(ctx, repository.pool, kind, ident, hide)
	}

	// Cross-row reads share one consistent snapshot.
	tx, err := repository.beginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	entity, err := repository.getEntity(ctx, tx, kind, ident, hide)
	if err != nil {
		return nil, err
	}
	if err := repository.expandEntity(ctx, tx, entity, expand, hide); err != nil {
		return nil, err
	}

	return entity, tx.Commit(ctx)
}

func (repository *PostgresRepository) getEntity(ctx context.Context, db dbtx, kind Kind, identID uuid.UUID, hide HideFlags) (Entity, error) {
	row, err := repository.loadIdent(ctx, db, kind, identID, false)
	if err != nil {
		return nil, err
	}

	// Idents become visible only through acceptance; tombstones have no
	// content to return.
	if !row.isLive || row.tombstoned() {
		return nil, apperr.NotFound(kind.String())
	}

	meta := Meta{Ident: fcid.FromUUID(row.id), State: StateActive}
	revisionID := row.revID

	// Resolve one redirect hop. Targets are never redirects themselves
	// (enforced at staging), so no loop is needed.
	if row.redirectID != nil {
		target, err := repository.loadIdent(ctx, db, kind, *row.redirectID, false)
		if err != nil {
			return nil, err
		}
		if !target.isLive || target.revID == nil {
			return nil, apperr.NotFound(kind.String())
		}
		meta.State = StateRedirect
		meta.Redirect = fcid.FromUUID(target.id)
		revisionID = target.revID
	}

	store := repository.stores[kind]
	entity := NewEntity(kind)
	if err := store.loadRev(ctx, db, *revisionID, entity, hide); err != nil {
		return nil, err
	}

	meta.Revision = revisionID.String()
	meta.Extra = entity.Common().Extra
	*entity.Common() = meta

	return entity, nil
}

// GetRevision returns a revision's contents directly, with no ident context.
func (repository *PostgresRepository) GetRevision(ctx context.Context, kind Kind, revision uuid.UUID, hide HideFlags) (Entity, error) {
	store := repository.stores[kind]

	entity := NewEntity(kind)
	if err := store.loadRev(ctx, repository.pool, revision, entity, hide); err != nil {
		return nil, err
	}

	entity.Common().Revision = revision.String()
	return entity, nil
}

// GetHistory returns the accepted mutations of an ident, newest changelog
// entry first.
func (repository *PostgresRepository) GetHistory(ctx context.Context, kind Kind, ident uuid.UUID, limit int) ([]*HistoryEntry, error) {
	tables := schema.Entity(kind.String())

	query := fmt.Sprintf(`
		SELECT
			cl.%s, cl.%s, cl.%s,
			eg.%s, eg.%s, eg.%s, eg.%s, eg.%s,
			ed.%s, ed.%s, ed.%s, ed.%s, ed.%s, ed.%s, ed.%s
		FROM %s ed
		JOIN %s eg ON eg.%s = ed.%s
		JOIN %s cl ON cl.%s = eg.%s
		WHERE ed.%s = $1
		ORDER BY cl.%s DESC
		LIMIT $2
	`,
		schema.Changelog.ID, schema.Changelog.EditgroupID, schema.Changelog.Timestamp,
		schema.Editgroup.ID, schema.Editgroup.EditorID, schema.Editgroup.Created,
		schema.Editgroup.Description, schema.Editgroup.ExtraJSON,
		tables.Edit.ID, tables.Edit.EditgroupID, tables.Edit.IdentID,
		tables.Edit.RevID, tables.Edit.RedirectID, tables.Edit.PrevRev, tables.Edit.ExtraJSON,
		tables.Edit.Table,
		schema.Editgroup.Table, schema.Editgroup.ID, tables.Edit.EditgroupID,
		schema.Changelog.Table, schema.Changelog.EditgroupID, schema.Editgroup.ID,
		tables.Edit.IdentID,
		schema.Changelog.ID,
	)

	rows, err := repository.pool.Query(ctx, query, ident, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "get_"+kind.String()+"_history")
	}
	defer rows.Close()

	entries := make([]*HistoryEntry, 0)
	for rows.Next() {
		var (
			entry         HistoryEntry
			clEditgroupID uuid.UUID
			egID          uuid.UUID
			egEditorID    uuid.UUID
			edIdentID     uuid.UUID
			edRevID       *uuid.UUID
			edRedirectID  *uuid.UUID
			edPrevRev     *uuid.UUID
		)
		err := rows.Scan(
			&entry.ChangelogEntry.Index, &clEditgroupID, &entry.ChangelogEntry.Timestamp,
			&egID, &egEditorID, &entry.Editgroup.Created, &entry.Editgroup.Description, &entry.Editgroup.Extra,
			&entry.Edit.EditID, &egID, &edIdentID, &edRevID, &edRedirectID, &edPrevRev, &entry.Edit.Extra,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_"+kind.String()+"_history")
		}

		entry.ChangelogEntry.EditgroupID = fcid.FromUUID(clEditgroupID)
		entry.Editgroup.EditgroupID = fcid.FromUUID(egID)
		entry.Editgroup.EditorID = fcid.FromUUID(egEditorID)
		entry.Edit.EditgroupID = fcid.FromUUID(egID)
		entry.Edit.Ident = fcid.FromUUID(edIdentID)
		entry.Edit.Revision = uuidStringPtr(edRevID)
		entry.Edit.PrevRevision = uuidStringPtr(edPrevRev)
		entry.Edit.RedirectIdent = fcidStringPtr(edRedirectID)

		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}

// GetRedirects lists the idents redirecting to the given ident.
func (repository *PostgresRepository) GetRedirects(ctx context.Context, kind Kind, ident uuid.UUID) ([]string, error) {
	tables := schema.Entity(kind.String())

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		tables.Ident.ID, tables.Ident.Table, tables.Ident.RedirectID, tables.Ident.ID,
	)

	rows, err := repository.pool.Query(ctx, query, ident)
	if err != nil {
		return nil, dberr.Wrap(err, "get_"+kind.String()+"_redirects")
	}
	defer rows.Close()

	redirects := make([]string, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_"+kind.String()+"_redirect")
		}
		redirects = append(redirects, fcid.FromUUID(id))
	}
	return redirects, rows.Err()
}

// # Edit Reads

// GetEdit returns a single edit by id.
func (repository *PostgresRepository) GetEdit(ctx context.Context, kind Kind, editID int64) (*Edit, error) {
	tables := schema.Entity(kind.String())

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		tables.Edit.ID, tables.Edit.EditgroupID, tables.Edit.IdentID,
		tables.Edit.RevID, tables.Edit.RedirectID, tables.Edit.PrevRev, tables.Edit.ExtraJSON,
		tables.Edit.Table, tables.Edit.ID,
	)

	return scanEdit(repository.pool.QueryRow(ctx, query, editID), kind)
}

// DeleteEdit removes a staged edit. Edits of accepted editgroups are
// immutable history and cannot be deleted.
func (repository *PostgresRepository) DeleteEdit(ctx context.Context, kind Kind, editID int64) error {
	tables := schema.Entity(kind.String())

	tx, err := repository.beginSerializable(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	lookup := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		tables.Edit.EditgroupID, tables.Edit.Table, tables.Edit.ID,
	)

	var editgroupID uuid.UUID
	if err := tx.QueryRow(ctx, lookup, editID).Scan(&editgroupID); err != nil {
		return dberr.Wrap(err, "get_"+kind.String()+"_edit")
	}

	guard := &editContext{editgroupID: editgroupID}
	if err := guard.check(ctx, tx); err != nil {
		return err
	}

	remove := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, tables.Edit.Table, tables.Edit.ID)
	if _, err := tx.Exec(ctx, remove, editID); err != nil {
		return dberr.Wrap(err, "delete_"+kind.String()+"_edit")
	}

	return tx.Commit(ctx)
}

// listEditgroupEdits lists one kind's edits staged in an editgroup.
func (repository *PostgresRepository) listEditgroupEdits(ctx context.Context, db dbtx, kind Kind, editgroupID uuid.UUID) ([]*Edit, error) {
	tables := schema.Entity(kind.String())

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s
	`,
		tables.Edit.ID, tables.Edit.EditgroupID, tables.Edit.IdentID,
		tables.Edit.RevID, tables.Edit.RedirectID, tables.Edit.PrevRev, tables.Edit.ExtraJSON,
		tables.Edit.Table, tables.Edit.EditgroupID, tables.Edit.ID,
	)

	rows, err := db.Query(ctx, query, editgroupID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_"+kind.String()+"_edits")
	}
	defer rows.Close()

	edits := make([]*Edit, 0)
	for rows.Next() {
		edit, err := scanEdit(rows, kind)
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}
	return edits, rows.Err()
}

// # Entity Mutations

// CreateEntity stages a create in one serializable transaction.
func (repository *PostgresRepository) CreateEntity(ctx context.Context, request EditRequest, entity Entity) (*Edit, error) {
	edits, err := repository.CreateEntityBatch(ctx, request, []Entity{entity})
	if err != nil {
		return nil, err
	}
	return edits[0], nil
}

// CreateEntityBatch stages many creates in one transaction; with
// request.Autoaccept the acceptance happens in the same transaction,
// making the whole batch visible atomically.
func (repository *PostgresRepository) CreateEntityBatch(ctx context.Context, request EditRequest, entities []Entity) ([]*Edit, error) {
	tx, err := repository.beginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	editCtx, err := repository.makeEditContext(ctx, tx, request)
	if err != nil {
		return nil, err
	}
	if err := editCtx.check(ctx, tx); err != nil {
		return nil, err
	}

	edits := make([]*Edit, 0, len(entities))
	for _, entity := range entities {
		edit, err := repository.stageCreate(ctx, tx, editCtx, entity)
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}

	if editCtx.autoaccept {
		if _, err := repository.acceptEditgroupTx(ctx, tx, editCtx.editgroupID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit_create_batch")
	}
	return edits, nil
}

// stageCreate inserts revision + ident + edit for one new entity.
func (repository *PostgresRepository) stageCreate(ctx context.Context, tx pgx.Tx, editCtx *editContext, entity Entity) (*Edit, error) {
	kind := entity.EntityKind()

	// A release without a work gets a fresh one staged in the same
	// editgroup; every release must group under exactly one work.
	if release, ok := entity.(*Release); ok && release.WorkID == "" {
		workEdit, err := repository.stageCreate(ctx, tx, editCtx, &Work{})
		if err != nil {
			return nil, err
		}
		release.WorkID = workEdit.Ident
	}

	store := repository.stores[kind]
	revisionID, err := store.insertRev(ctx, tx, entity)
	if err != nil {
		return nil, err
	}

	tables := schema.Entity(kind.String())
	identID := uuid.MustParse(uuidv7.New())

	insertIdent := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, false, $2, NULL)
	`,
		tables.Ident.Table,
		tables.Ident.ID, tables.Ident.IsLive, tables.Ident.RevID, tables.Ident.RedirectID,
	)
	if _, err := tx.Exec(ctx, insertIdent, identID, revisionID); err != nil {
		return nil, dberr.Wrap(err, "insert_"+kind.String()+"_ident")
	}

	edit, err := repository.insertEdit(ctx, tx, kind, editCtx, identID, &revisionID, nil, nil)
	if err != nil {
		return nil, err
	}

	meta := entity.Common()
	meta.Ident = edit.Ident
	meta.Revision = revisionID.String()
	meta.State = StateWIP

	return edit, nil
}

// UpdateEntity stages an update, revert or redirect for an existing ident.
func (repository *PostgresRepository) UpdateEntity(ctx context.Context, request EditRequest, ident uuid.UUID, entity Entity) (*Edit, error) {
	kind := entity.EntityKind()
	tables := schema.Entity(kind.String())

	tx, err := repository.beginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	editCtx, err := repository.makeEditContext(ctx, tx, request)
	if err != nil {
		return nil, err
	}
	if err := editCtx.check(ctx, tx); err != nil {
		return nil, err
	}

	row, err := repository.loadIdent(ctx, tx, kind, ident, true)
	if err != nil {
		return nil, err
	}
	if row.tombstoned() {
		return nil, apperr.NotFound(kind.String())
	}
	if row.redirectID != nil {
		return nil, apperr.BadRequest("cannot update a redirect ident; update the canonical ident instead")
	}

	// At most one open edit per ident per editgroup: replace, don't stack.
	replace := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		tables.Edit.Table, tables.Edit.EditgroupID, tables.Edit.IdentID,
	)
	if _, err := tx.Exec(ctx, replace, editCtx.editgroupID, ident); err != nil {
		return nil, dberr.Wrap(err, "replace_"+kind.String()+"_edit")
	}

	meta := entity.Common()
	var edit *Edit

	switch {
	case meta.Redirect != "":
		// Stage a redirect: the target must be a live, canonical ident of
		// the same kind, and never the ident itself (no chains, no cycles).
		targetID, err := fcid.ToUUID(meta.Redirect)
		if err != nil {
			return nil, apperr.InvalidFatcatID(meta.Redirect)
		}
		if targetID == ident {
			return nil, apperr.BadRequest("self-redirect is forbidden")
		}

		target, err := repository.loadIdent(ctx, tx, kind, targetID, false)
		if err != nil {
			return nil, err
		}
		if !target.isLive {
			return nil, apperr.BadRequest("redirect target is not live")
		}
		if target.redirectID != nil {
			return nil, apperr.BadRequest("redirect target is itself a redirect; chains longer than one hop are forbidden")
		}

		edit, err = repository.insertEdit(ctx, tx, kind, editCtx, ident, nil, &targetID, row.revID)
		if err != nil {
			return nil, err
		}

	case meta.Revision != "":
		// Revert: reuse a prior revision instead of minting a new one.
		revisionID, err := uuid.Parse(meta.Revision)
		if err != nil {
			return nil, apperr.BadRequest("invalid revision UUID: " + meta.Revision)
		}
		if err := repository.checkRevisionExists(ctx, tx, kind, revisionID); err != nil {
			return nil, err
		}

		edit, err = repository.insertEdit(ctx, tx, kind, editCtx, ident, &revisionID, nil, row.revID)
		if err != nil {
			return nil, err
		}

	default:
		revisionID, err := repository.stores[kind].insertRev(ctx, tx, entity)
		if err != nil {
			return nil, err
		}

		edit, err = repository.insertEdit(ctx, tx, kind, editCtx, ident, &revisionID, nil, row.revID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit_update")
	}

	meta.Ident = edit.Ident
	if edit.Revision != nil {
		meta.Revision = *edit.Revision
	}
	return edit, nil
}

// DeleteEntity stages a tombstone edit for the ident.
func (repository *PostgresRepository) DeleteEntity(ctx context.Context, kind Kind, request EditRequest, ident uuid.UUID) (*Edit, error) {
	tx, err := repository.beginSerializable(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	editCtx, err := repository.makeEditContext(ctx, tx, request)
	if err != nil {
		return nil, err
	}
	if err := editCtx.check(ctx, tx); err != nil {
		return nil, err
	}

	row, err := repository.loadIdent(ctx, tx, kind, ident, true)
	if err != nil {
		return nil, err
	}
	if row.tombstoned() {
		return nil, apperr.BadRequest(kind.String() + " is already deleted")
	}

	// At most one open edit per ident per editgroup: replace, don't stack.
	tables := schema.Entity(kind.String())
	replace := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		tables.Edit.Table, tables.Edit.EditgroupID, tables.Edit.IdentID,
	)
	if _, err := tx.Exec(ctx, replace, editCtx.editgroupID, ident); err != nil {
		return nil, dberr.Wrap(err, "replace_"+kind.String()+"_edit")
	}

	edit, err := repository.insertEdit(ctx, tx, kind, editCtx, ident, nil, nil, row.revID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "commit_delete")
	}
	return edit, nil
}

// checkRevisionExists verifies a revision id against the kind's rev table.
func (repository *PostgresRepository) checkRevisionExists(ctx context.Context, db dbtx, kind Kind, revision uuid.UUID) error {
	tables := schema.Entity(kind.String())

	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, tables.Rev.Table, tables.Rev.ID)

	var count int64
	if err := db.QueryRow(ctx, query, revision).Scan(&count); err != nil {
		return dberr.Wrap(err, "check_"+kind.String()+"_rev")
	}
	if count == 0 {
		return apperr.NotFound(kind.String() + " revision")
	}
	return nil
}

// insertEdit inserts one edit row and returns its wire form.
func (repository *PostgresRepository) insertEdit(ctx context.Context, tx pgx.Tx, kind Kind, editContext *editContext, identID uuid.UUID, revisionID, redirectID, prevRev *uuid.UUID) (*Edit, error) {
	tables := schema.Entity(kind.String())

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, NOW(), $2, $3, $4, $5, $6)
		RETURNING %s
	`,
		tables.Edit.Table,
		tables.Edit.EditgroupID, tables.Edit.Updated, tables.Edit.IdentID,
		tables.Edit.RevID, tables.Edit.RedirectID, tables.Edit.PrevRev, tables.Edit.ExtraJSON,
		tables.Edit.ID,
	)

	edit := &Edit{
		Ident:         fcid.FromUUID(identID),
		EditgroupID:   fcid.FromUUID(editContext.editgroupID),
		Revision:      uuidStringPtr(revisionID),
		PrevRevision:  uuidStringPtr(prevRev),
		RedirectIdent: fcidStringPtr(redirectID),
		Extra:         editContext.extra,
	}

	err := tx.QueryRow(ctx, query,
		editContext.editgroupID, identID, revisionID, redirectID, prevRev, editContext.extra,
	).Scan(&edit.EditID)
	if err != nil {
		return nil, dberr.Wrap(err, "insert_"+kind.String()+"_edit")
	}

	return edit, nil
}

// # Acceptance

// acceptEdits projects one kind's staged edits onto its ident table: a
// single set-based update flipping rev/redirect and is_live together.
// Running it twice over the same rows is idempotent.
func (repository *PostgresRepository) acceptEdits(ctx context.Context, tx pgx.Tx, kind Kind, editgroupID uuid.UUID) error {
	tables := schema.Entity(kind.String())

	query := fmt.Sprintf(`
		UPDATE %s AS ident
		SET %s = true, %s = ed.%s, %s = ed.%s
		FROM %s AS ed
		WHERE ed.%s = ident.%s AND ed.%s = $1
	`,
		tables.Ident.Table,
		tables.Ident.IsLive,
		tables.Ident.RevID, tables.Edit.RevID,
		tables.Ident.RedirectID, tables.Edit.RedirectID,
		tables.Edit.Table,
		tables.Edit.IdentID, tables.Ident.ID,
		tables.Edit.EditgroupID,
	)

	if _, err := tx.Exec(ctx, query, editgroupID); err != nil {
		return dberr.Wrap(err, "accept_"+kind.String()+"_edits")
	}
	return nil
}

// # Scan Helpers

// editScanner covers pgx.Row and pgx.Rows.
type editScanner interface {
	Scan(dest ...any) error
}

func scanEdit(row editScanner, kind Kind) (*Edit, error) {
	var (
		edit        Edit
		editgroupID uuid.UUID
		identID     uuid.UUID
		revisionID  *uuid.UUID
		redirectID  *uuid.UUID
		prevRev     *uuid.UUID
	)
	err := row.Scan(&edit.EditID, &editgroupID, &identID, &revisionID, &redirectID, &prevRev, &edit.Extra)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_"+kind.String()+"_edit")
	}

	edit.EditgroupID = fcid.FromUUID(editgroupID)
	edit.Ident = fcid.FromUUID(identID)
	edit.Revision = uuidStringPtr(revisionID)
	edit.PrevRevision = uuidStringPtr(prevRev)
	edit.RedirectIdent = fcidStringPtr(redirectID)

	return &edit, nil
}

// uuidStringPtr renders an optional UUID as an optional string.
func uuidStringPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	value := id.String()
	return &value
}

// fcidStringPtr renders an optional UUID as an optional public identifier.
func fcidStringPtr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	value := fcid.FromUUID(*id)
	return &value
}

// fcidToUUID decodes a public identifier, mapping failures to the API
// error taxonomy.
func fcidToUUID(value string) (uuid.UUID, error) {
	id, err := fcid.ToUUID(value)
	if err != nil {
		return uuid.Nil, apperr.InvalidFatcatID(value)
	}
	return id, nil
}

// identsToUUIDs decodes a list of public identifiers for storage.
func identsToUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		id, err := fcidToUUID(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
