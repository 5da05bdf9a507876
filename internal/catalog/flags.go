// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "github.com/mm--/fatcat/pkg/query"

// # Expansion Flags

// ExpandFlags selects which referenced entities get joined into a response.
//
// Flags are independent booleans; each kind defines which of them are
// meaningful and ignores the rest. Parsed once per request, never consulted
// as strings at use sites.
type ExpandFlags struct {
	Files       bool
	Filesets    bool
	Webcaptures bool
	Container   bool
	Releases    bool
	Creators    bool
}

// ParseExpand parses a comma-separated flag list ("files,container").
// Unknown tokens are ignored; an empty parameter yields all-false.
func ParseExpand(param string) ExpandFlags {
	var flags ExpandFlags
	for _, token := range query.StringSlice(param) {
		switch token {
		case "files":
			flags.Files = true
		case "filesets":
			flags.Filesets = true
		case "webcaptures":
			flags.Webcaptures = true
		case "container":
			flags.Container = true
		case "releases":
			flags.Releases = true
		case "creators":
			flags.Creators = true
		}
	}
	return flags
}

// Any reports whether at least one expansion was requested.
func (f ExpandFlags) Any() bool {
	return f.Files || f.Filesets || f.Webcaptures || f.Container || f.Releases || f.Creators
}

// # Hide Flags

// HideFlags suppresses heavyweight optional fields from responses.
//
// Each token governs exactly its own field: abstracts, refs and contribs on
// releases, manifest on filesets, cdx on webcaptures.
type HideFlags struct {
	Abstracts bool
	Refs      bool
	Contribs  bool
	Manifest  bool
	CDX       bool
}

// ParseHide parses a comma-separated flag list ("refs,abstracts").
// Unknown tokens are ignored; an empty parameter yields all-false.
func ParseHide(param string) HideFlags {
	var flags HideFlags
	for _, token := range query.StringSlice(param) {
		switch token {
		case "abstracts":
			flags.Abstracts = true
		case "refs":
			flags.Refs = true
		case "contribs":
			flags.Contribs = true
		case "manifest":
			flags.Manifest = true
		case "cdx":
			flags.CDX = true
		}
	}
	return flags
}

// Any reports whether at least one field was hidden.
func (f HideFlags) Any() bool {
	return f.Abstracts || f.Refs || f.Contribs || f.Manifest || f.CDX
}
