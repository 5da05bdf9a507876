// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/google/uuid"
)

// # Edit Staging Parameters

// EditRequest carries the editing context a mutation runs under: who is
// editing, which editgroup the edit should land in, and whether the
// editgroup should be accepted in the same transaction.
//
// EditgroupID nil means "resolve": with autoaccept a fresh editgroup is
// created for the transaction, otherwise the editor's active editgroup is
// used (created and marked active if absent).
type EditRequest struct {
	EditorID    uuid.UUID
	EditgroupID *uuid.UUID
	Autoaccept  bool
	Description *string
	Extra       map[string]any
}

// # Data Access Contract

// Repository defines the data access contract for the catalog domain.
//
// All mutating methods open a single serializable transaction: the edit
// context resolution, the staging writes and (for autoaccept) the
// acceptance all commit or abort together. Reads see accepted state only.
type Repository interface {

	// ## Entity Reads

	/*
		GetEntity returns the current live revision contents of an ident.

		A redirect is resolved one hop: the result carries the original
		ident, the target as redirect, and the target's revision. Absent,
		tombstoned and not-yet-accepted idents all yield NotFound.
	*/
	GetEntity(ctx context.Context, kind Kind, ident uuid.UUID, expand ExpandFlags, hide HideFlags) (Entity, error)

	/*
		GetRevision returns a revision's contents directly, with no ident
		context attached.
	*/
	GetRevision(ctx context.Context, kind Kind, revision uuid.UUID, hide HideFlags) (Entity, error)

	/*
		GetHistory returns the accepted mutations of an ident, newest
		changelog entry first.
	*/
	GetHistory(ctx context.Context, kind Kind, ident uuid.UUID, limit int) ([]*HistoryEntry, error)

	/*
		GetRedirects lists the idents redirecting to the given ident, as
		public identifiers.
	*/
	GetRedirects(ctx context.Context, kind Kind, ident uuid.UUID) ([]string, error)

	/*
		GetEdit returns a single staged or accepted edit by its id.
	*/
	GetEdit(ctx context.Context, kind Kind, editID int64) (*Edit, error)

	/*
		DeleteEdit removes a staged edit. Fails with
		EditgroupAlreadyAccepted once the owning editgroup is in the
		changelog: accepted history is immutable.
	*/
	DeleteEdit(ctx context.Context, kind Kind, editID int64) error

	// ## Entity Mutations

	/*
		CreateEntity stages a create: new revision, new ident (not live),
		new edit in the resolved editgroup. The entity's Meta is updated
		in place with the assigned ident and revision.
	*/
	CreateEntity(ctx context.Context, request EditRequest, entity Entity) (*Edit, error)

	/*
		CreateEntityBatch stages many creates in one transaction. With
		request.Autoaccept the editgroup is accepted in the same
		transaction, making the whole batch visible atomically.
	*/
	CreateEntityBatch(ctx context.Context, request EditRequest, entities []Entity) ([]*Edit, error)

	/*
		UpdateEntity stages an update of an existing ident: a new revision
		with prev pointing at the current one. When the entity carries a
		Redirect, a redirect edit is staged instead; when it carries only
		a known prior Revision, that revision is reused (revert). An open
		edit for the same ident in the same editgroup is replaced, not
		duplicated. Updating a redirect ident is a BadRequest; updates
		must target the canonical ident.
	*/
	UpdateEntity(ctx context.Context, request EditRequest, ident uuid.UUID, entity Entity) (*Edit, error)

	/*
		DeleteEntity stages a tombstone edit (no revision, no redirect)
		for the ident. Deleting an already tombstoned ident is a
		BadRequest.
	*/
	DeleteEntity(ctx context.Context, kind Kind, request EditRequest, ident uuid.UUID) (*Edit, error)

	// ## Lookups

	/*
		LookupEntity resolves an external identifier column ("doi",
		"orcid", "md5", ...) to the first live, non-redirect ident whose
		current revision matches, and returns that entity.
	*/
	LookupEntity(ctx context.Context, kind Kind, column, value string, expand ExpandFlags, hide HideFlags) (Entity, error)

	// ## Editors

	CreateEditor(ctx context.Context, editor *Editor) error
	GetEditor(ctx context.Context, editorID uuid.UUID) (*Editor, error)

	/*
		UpdateEditorUsername renames an editor. Uniqueness violations
		surface as BadRequest.
	*/
	UpdateEditorUsername(ctx context.Context, editorID uuid.UUID, username string) (*Editor, error)

	// ## Editgroups & Changelog

	CreateEditgroup(ctx context.Context, editorID uuid.UUID, description *string, extra map[string]any) (*Editgroup, error)

	/*
		GetEditgroup returns an editgroup with its staged edits grouped
		by kind.
	*/
	GetEditgroup(ctx context.Context, editgroupID uuid.UUID) (*Editgroup, error)

	/*
		AcceptEditgroup atomically promotes every staged edit of the
		editgroup, appends a changelog row and clears matching active
		editgroup pointers. A second accept fails with
		EditgroupAlreadyAccepted.
	*/
	AcceptEditgroup(ctx context.Context, editgroupID uuid.UUID) (*ChangelogEntry, error)

	/*
		GetChangelog lists changelog entries, newest first.
	*/
	GetChangelog(ctx context.Context, limit int) ([]*ChangelogEntry, error)

	/*
		GetChangelogEntry returns one changelog entry with its editgroup.
	*/
	GetChangelogEntry(ctx context.Context, index int64) (*ChangelogEntry, error)

	/*
		GetEditorChangelog lists the changelog entries whose editgroups
		belong to the given editor, newest first.
	*/
	GetEditorChangelog(ctx context.Context, editorID uuid.UUID, limit int) ([]*ChangelogEntry, error)

	// ## Statistics

	/*
		Stats counts live entities per kind plus changelog, editgroup and
		editor totals.
	*/
	Stats(ctx context.Context) (*Stats, error)
}
