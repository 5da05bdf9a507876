// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

// # Release

// Contrib is one ordered contribution to a release (author, editor, ...).
// CreatorID optionally links to a creator ident; RawName preserves the
// name exactly as it appeared on the release.
type Contrib struct {
	Index     *int64         `json:"index,omitempty"`
	CreatorID *string        `json:"creator_id,omitempty"`
	RawName   *string        `json:"raw_name,omitempty"`
	Role      *string        `json:"role,omitempty"`
	Extra     map[string]any `json:"extra,omitempty"`

	// Creator is populated by expansion (creators flag) from CreatorID.
	Creator *Creator `json:"creator,omitempty"`
}

// Ref is one ordered outbound citation from a release. TargetReleaseID
// optionally links the citation to a catalogued release.
type Ref struct {
	Index           *int64         `json:"index,omitempty"`
	TargetReleaseID *string        `json:"target_release_id,omitempty"`
	Key             *string        `json:"key,omitempty"`
	Year            *int64         `json:"year,omitempty"`
	ContainerName   *string        `json:"container_name,omitempty"`
	Title           *string        `json:"title,omitempty"`
	Locator         *string        `json:"locator,omitempty"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// Abstract is one abstract of a release. Content is addressed by its SHA-1
// so identical abstracts are stored once.
type Abstract struct {
	SHA1     string  `json:"sha1,omitempty"`
	Content  string  `json:"content,omitempty"`
	Mimetype *string `json:"mimetype,omitempty"`
	Lang     *string `json:"lang,omitempty"`
}

// Release is a published version of a work: a preprint, a journal article,
// a book edition. Every release belongs to exactly one work and may appear
// in one container.
type Release struct {
	Meta

	Title string `json:"title"`

	// WorkID is the ident of the owning work. On create it may be left
	// empty, in which case a new work is created alongside the release.
	WorkID string `json:"work_id,omitempty"`

	// ContainerID is the ident of the publication venue, when known.
	ContainerID *string `json:"container_id,omitempty"`

	ReleaseType   *string `json:"release_type,omitempty"`
	ReleaseStatus *string `json:"release_status,omitempty"`
	ReleaseDate   *string `json:"release_date,omitempty"`

	DOI         *string `json:"doi,omitempty"`
	WikidataQID *string `json:"wikidata_qid,omitempty"`
	ISBN13      *string `json:"isbn13,omitempty"`
	PMID        *string `json:"pmid,omitempty"`
	PMCID       *string `json:"pmcid,omitempty"`
	CoreID      *string `json:"core_id,omitempty"`

	Volume    *string `json:"volume,omitempty"`
	Issue     *string `json:"issue,omitempty"`
	Pages     *string `json:"pages,omitempty"`
	Publisher *string `json:"publisher,omitempty"`
	Language  *string `json:"language,omitempty"`

	// Contribs and Refs are ordered. Hidden by their hide flags.
	Contribs  []Contrib  `json:"contribs,omitempty"`
	Refs      []Ref      `json:"refs,omitempty"`
	Abstracts []Abstract `json:"abstracts,omitempty"`

	// Expansion fields, populated under flag control.
	Container   *Container    `json:"container,omitempty"`
	Files       []*File       `json:"files,omitempty"`
	Filesets    []*Fileset    `json:"filesets,omitempty"`
	Webcaptures []*Webcapture `json:"webcaptures,omitempty"`
}

func (r *Release) EntityKind() Kind { return KindRelease }
func (r *Release) Common() *Meta    { return &r.Meta }

// Validate checks every external identifier and vocabulary value carried
// by the release and its contribs/refs.
func (r *Release) Validate() error {
	if r.DOI != nil {
		if err := CheckDOI(*r.DOI); err != nil {
			return err
		}
	}
	if r.WikidataQID != nil {
		if err := CheckWikidataQID(*r.WikidataQID); err != nil {
			return err
		}
	}
	if r.ISBN13 != nil {
		if err := CheckISBN13(*r.ISBN13); err != nil {
			return err
		}
	}
	if r.PMID != nil {
		if err := CheckPMID(*r.PMID); err != nil {
			return err
		}
	}
	if r.PMCID != nil {
		if err := CheckPMCID(*r.PMCID); err != nil {
			return err
		}
	}
	if r.ReleaseType != nil {
		if err := CheckReleaseType(*r.ReleaseType); err != nil {
			return err
		}
	}

	for _, contrib := range r.Contribs {
		if contrib.Role != nil {
			if err := CheckContribRole(*contrib.Role); err != nil {
				return err
			}
		}
		if contrib.CreatorID != nil {
			if err := checkIdent(*contrib.CreatorID); err != nil {
				return err
			}
		}
	}
	for _, ref := range r.Refs {
		if ref.TargetReleaseID != nil {
			if err := checkIdent(*ref.TargetReleaseID); err != nil {
				return err
			}
		}
	}

	if r.WorkID != "" {
		if err := checkIdent(r.WorkID); err != nil {
			return err
		}
	}
	if r.ContainerID != nil {
		if err := checkIdent(*r.ContainerID); err != nil {
			return err
		}
	}
	return nil
}

// ApplyHide clears abstracts, refs and contribs when requested.
func (r *Release) ApplyHide(hide HideFlags) {
	if hide.Abstracts {
		r.Abstracts = nil
	}
	if hide.Refs {
		r.Refs = nil
	}
	if hide.Contribs {
		r.Contribs = nil
	}
}
