// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog implements the versioned, editgroup-mediated catalog of
bibliographic entities.

It manages the lifecycle of seven entity kinds (containers, creators, files,
filesets, webcaptures, releases, works) through a three-layer data model:

  - Revision: An immutable content snapshot, never mutated after insert.
  - Ident: A stable public identity pointing at the current revision, at a
    redirect target, or at nothing (tombstone).
  - Edit: A staged intent owned by an editgroup until acceptance.

Core Responsibility:

  - Editing: Staging of create/update/delete/redirect edits in editgroups.
  - Acceptance: Atomic promotion of an editgroup's edits plus a changelog append.
  - Lookup: Resolution of external identifiers (DOI, ORCID, ISSN-L, hashes).
  - Expansion: Joining referenced entities into responses under flag control.

This package acts as the source of truth for all catalog data models and the
mutation protocol. Nothing staged is visible outside its editgroup until a
changelog row exists for it.
*/
package catalog

// # Entity Kinds

// Kind identifies one of the seven catalog entity kinds.
type Kind string

const (
	KindContainer  Kind = "container"
	KindCreator    Kind = "creator"
	KindFile       Kind = "file"
	KindFileset    Kind = "fileset"
	KindWebcapture Kind = "webcapture"
	KindRelease    Kind = "release"
	KindWork       Kind = "work"
)

// AllKinds lists every entity kind in acceptance order.
//
// # Ordering
//
// Acceptance iterates kinds in this fixed order. The set-based ident updates
// are order-independent, but a fixed order keeps accepted state deterministic
// and satisfies release→work/container references in mixed batches.
var AllKinds = []Kind{
	KindContainer,
	KindCreator,
	KindFile,
	KindFileset,
	KindWebcapture,
	KindRelease,
	KindWork,
}

// IsValid reports whether k names a recognised entity kind.
func (k Kind) IsValid() bool {
	switch k {
	case
		KindContainer,
		KindCreator,
		KindFile,
		KindFileset,
		KindWebcapture,
		KindRelease,
		KindWork:
		return true
	}
	return false
}

// String returns the lowercase wire name of the kind.
func (k Kind) String() string { return string(k) }

// ParseKind converts a wire name ("release") into a [Kind].
// The boolean result is false for unknown names.
func ParseKind(name string) (Kind, bool) {
	k := Kind(name)
	return k, k.IsValid()
}
