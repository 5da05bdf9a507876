// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "time"

// # Editing Surface

// Editor is an actor authorized to author edits. EditorID and
// ActiveEditgroupID are public catalog identifiers.
type Editor struct {
	EditorID string `json:"editor_id,omitempty"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	IsBot    bool   `json:"is_bot"`

	// ActiveEditgroupID is the editor's one open editgroup, if any. Cleared
	// automatically when that editgroup is accepted.
	ActiveEditgroupID *string `json:"active_editgroup_id,omitempty"`
}

// Edit is a staged intent to create, update, delete or redirect one ident.
//
// Exactly one shape per intent: a create/update carries Revision; a
// redirect carries RedirectIdent; a delete carries neither.
type Edit struct {
	EditID        int64          `json:"edit_id"`
	Ident         string         `json:"ident"`
	Revision      *string        `json:"revision,omitempty"`
	PrevRevision  *string        `json:"prev_revision,omitempty"`
	RedirectIdent *string        `json:"redirect_ident,omitempty"`
	EditgroupID   string         `json:"editgroup_id"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// EditgroupEdits groups an editgroup's staged edits by entity kind, in
// acceptance order.
type EditgroupEdits struct {
	Containers  []*Edit `json:"containers,omitempty"`
	Creators    []*Edit `json:"creators,omitempty"`
	Files       []*Edit `json:"files,omitempty"`
	Filesets    []*Edit `json:"filesets,omitempty"`
	Webcaptures []*Edit `json:"webcaptures,omitempty"`
	Releases    []*Edit `json:"releases,omitempty"`
	Works       []*Edit `json:"works,omitempty"`
}

// byKind returns the slice holding edits of the given kind.
func (e *EditgroupEdits) byKind(kind Kind) *[]*Edit {
	switch kind {
	case KindContainer:
		return &e.Containers
	case KindCreator:
		return &e.Creators
	case KindFile:
		return &e.Files
	case KindFileset:
		return &e.Filesets
	case KindWebcapture:
		return &e.Webcaptures
	case KindRelease:
		return &e.Releases
	case KindWork:
		return &e.Works
	}
	return nil
}

// Editgroup is a container of related edits, visible only to its author
// until accepted. Status is derived: accepted iff a changelog row exists.
type Editgroup struct {
	EditgroupID string         `json:"editgroup_id,omitempty"`
	EditorID    string         `json:"editor_id,omitempty"`
	Created     time.Time      `json:"created,omitempty"`
	Description *string        `json:"description,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`

	// Edits is populated on single-editgroup reads, never on listings.
	Edits *EditgroupEdits `json:"edits,omitempty"`
}

// ChangelogEntry is one accepted editgroup in the global linearization.
// Index is the monotonic changelog id.
type ChangelogEntry struct {
	Index       int64     `json:"index"`
	EditgroupID string    `json:"editgroup_id"`
	Timestamp   time.Time `json:"timestamp"`

	// Editgroup is populated on single-entry reads.
	Editgroup *Editgroup `json:"editgroup,omitempty"`
}

// HistoryEntry is one accepted mutation of a specific ident: the edit, the
// editgroup that carried it, and the changelog entry that accepted it.
type HistoryEntry struct {
	ChangelogEntry ChangelogEntry `json:"changelog_entry"`
	Editgroup      Editgroup      `json:"editgroup"`
	Edit           Edit           `json:"edit"`
}

// Stats summarizes catalog size for the /stats endpoint.
type Stats struct {
	// Entities counts live idents per kind.
	Entities map[string]int64 `json:"entities"`

	// ChangelogIndex is the latest changelog id (0 when empty).
	ChangelogIndex int64 `json:"changelog_index"`

	// Editgroups counts all editgroups ever created.
	Editgroups int64 `json:"editgroups"`

	// Editors counts registered editors.
	Editors int64 `json:"editors"`
}
