// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

// # Entity States

// State describes the public lifecycle phase of an ident.
type State string

const (
	// StateWIP marks an ident staged in an open editgroup, not yet accepted.
	StateWIP State = "wip"

	// StateActive marks a live ident pointing at its current revision.
	StateActive State = "active"

	// StateRedirect marks a live ident forwarding to another ident.
	StateRedirect State = "redirect"

	// StateDeleted marks a live ident with neither revision nor redirect (tombstone).
	StateDeleted State = "deleted"
)

// # Common Entity Shape

// Meta carries the identity fields shared by every entity kind. It is
// embedded in each concrete entity so the fields inline into its JSON.
//
// Ident and Redirect are public catalog identifiers (26-char base32);
// Revision is a plain UUID string. All are optional on input: a create
// supplies none of them, an update may supply Redirect to stage a redirect
// or Revision to revert to a prior snapshot.
type Meta struct {
	State    State          `json:"state,omitempty"`
	Ident    string         `json:"ident,omitempty"`
	Revision string         `json:"revision,omitempty"`
	Redirect string         `json:"redirect,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// Entity is the capability contract every catalog entity kind implements.
//
// # Why an interface?
//
// The CRUD engine, acceptance protocol and HTTP layer are generic over the
// seven kinds; only revision storage and validation differ. One concrete
// struct per kind plus this contract replaces any inheritance hierarchy.
type Entity interface {
	// EntityKind names the kind ("release", "work", ...).
	EntityKind() Kind

	// Common exposes the shared identity fields for mutation by the engine.
	Common() *Meta

	// Validate checks external identifiers and controlled vocabularies.
	// It never touches the database.
	Validate() error

	// ApplyHide clears the optional heavyweight fields selected by flags.
	ApplyHide(hide HideFlags)
}

// NewEntity constructs an empty entity of the given kind, ready for JSON
// decoding or revision loading.
func NewEntity(kind Kind) Entity {
	switch kind {
	case KindContainer:
		return &Container{}
	case KindCreator:
		return &Creator{}
	case KindFile:
		return &File{}
	case KindFileset:
		return &Fileset{}
	case KindWebcapture:
		return &Webcapture{}
	case KindRelease:
		return &Release{}
	case KindWork:
		return &Work{}
	}
	return nil
}

// # Container

// Container is a publication venue: a journal, conference series, book
// series or repository that releases appear in.
type Container struct {
	Meta

	Name          string  `json:"name"`
	ContainerType *string `json:"container_type,omitempty"`
	Publisher     *string `json:"publisher,omitempty"`
	ISSNL         *string `json:"issnl,omitempty"`
	WikidataQID   *string `json:"wikidata_qid,omitempty"`
	Abbrev        *string `json:"abbrev,omitempty"`
	Coden         *string `json:"coden,omitempty"`
}

func (c *Container) EntityKind() Kind { return KindContainer }
func (c *Container) Common() *Meta    { return &c.Meta }

// Validate checks the ISSN-L and Wikidata QID syntax.
func (c *Container) Validate() error {
	if c.ISSNL != nil {
		if err := CheckISSN(*c.ISSNL); err != nil {
			return err
		}
	}
	if c.WikidataQID != nil {
		if err := CheckWikidataQID(*c.WikidataQID); err != nil {
			return err
		}
	}
	return nil
}

// ApplyHide is a no-op: containers carry no hideable fields.
func (c *Container) ApplyHide(hide HideFlags) {}

// # Creator

// Creator is a person or organisation that contributes to releases.
type Creator struct {
	Meta

	DisplayName string  `json:"display_name"`
	GivenName   *string `json:"given_name,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	ORCID       *string `json:"orcid,omitempty"`
	WikidataQID *string `json:"wikidata_qid,omitempty"`

	// Releases is populated by expansion (releases flag): releases this
	// creator contributed to.
	Releases []*Release `json:"releases,omitempty"`
}

func (c *Creator) EntityKind() Kind { return KindCreator }
func (c *Creator) Common() *Meta    { return &c.Meta }

// Validate checks the ORCID and Wikidata QID syntax.
func (c *Creator) Validate() error {
	if c.ORCID != nil {
		if err := CheckORCID(*c.ORCID); err != nil {
			return err
		}
	}
	if c.WikidataQID != nil {
		if err := CheckWikidataQID(*c.WikidataQID); err != nil {
			return err
		}
	}
	return nil
}

// ApplyHide is a no-op: creators carry no hideable fields.
func (c *Creator) ApplyHide(hide HideFlags) {}

// # Work

// Work is the abstract grouping of all releases of one piece of scholarship.
// It carries no metadata of its own beyond extra; releases point at it.
type Work struct {
	Meta

	// Releases is populated by expansion (releases flag): releases grouped
	// under this work.
	Releases []*Release `json:"releases,omitempty"`
}

func (w *Work) EntityKind() Kind { return KindWork }
func (w *Work) Common() *Meta    { return &w.Meta }

// Validate is trivially satisfied: works carry no external identifiers.
func (w *Work) Validate() error { return nil }

// ApplyHide is a no-op: works carry no hideable fields.
func (w *Work) ApplyHide(hide HideFlags) {}
