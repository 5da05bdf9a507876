// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mm--/fatcat/internal/catalog"
)

/*
TestParseExpand checks comma-list parsing: every known token sets exactly
its flag, unknown tokens are silently ignored, whitespace is tolerated.
*/
func TestParseExpand(t *testing.T) {
	tests := []struct {
		name  string
		param string
		want  catalog.ExpandFlags
	}{
		{"empty", "", catalog.ExpandFlags{}},
		{"single", "files", catalog.ExpandFlags{Files: true}},
		{"multiple", "container,creators", catalog.ExpandFlags{Container: true, Creators: true}},
		{"all", "files,filesets,webcaptures,container,releases,creators", catalog.ExpandFlags{
			Files: true, Filesets: true, Webcaptures: true,
			Container: true, Releases: true, Creators: true,
		}},
		{"unknown_ignored", "files,everything,container", catalog.ExpandFlags{Files: true, Container: true}},
		{"whitespace", " files , container ", catalog.ExpandFlags{Files: true, Container: true}},
		{"only_unknown", "bogus", catalog.ExpandFlags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.ParseExpand(tt.param)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want != catalog.ExpandFlags{}, got.Any())
		})
	}
}

/*
TestParseHide checks that each hide token governs exactly its own field:
hiding the fileset manifest never hides webcapture cdx lines, and vice
versa.
*/
func TestParseHide(t *testing.T) {
	tests := []struct {
		name  string
		param string
		want  catalog.HideFlags
	}{
		{"empty", "", catalog.HideFlags{}},
		{"abstracts", "abstracts", catalog.HideFlags{Abstracts: true}},
		{"refs_and_contribs", "refs,contribs", catalog.HideFlags{Refs: true, Contribs: true}},
		{"manifest_only", "manifest", catalog.HideFlags{Manifest: true}},
		{"cdx_only", "cdx", catalog.HideFlags{CDX: true}},
		{"manifest_not_cdx", "manifest", catalog.HideFlags{Manifest: true, CDX: false}},
		{"unknown_ignored", "refs,everything", catalog.HideFlags{Refs: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.ParseHide(tt.param)
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestApplyHide verifies the in-memory field suppression on loaded entities.
*/
func TestApplyHide(t *testing.T) {
	t.Run("release", func(t *testing.T) {
		release := &catalog.Release{
			Title:     "On Testing",
			Contribs:  []catalog.Contrib{{}},
			Refs:      []catalog.Ref{{}},
			Abstracts: []catalog.Abstract{{Content: "x"}},
		}
		release.ApplyHide(catalog.HideFlags{Refs: true})
		assert.Nil(t, release.Refs)
		assert.NotNil(t, release.Contribs)
		assert.NotNil(t, release.Abstracts)

		release.ApplyHide(catalog.HideFlags{Abstracts: true, Contribs: true})
		assert.Nil(t, release.Abstracts)
		assert.Nil(t, release.Contribs)
	})

	t.Run("fileset_manifest", func(t *testing.T) {
		fileset := &catalog.Fileset{Manifest: []catalog.FilesetFile{{PathName: "data.csv"}}}
		fileset.ApplyHide(catalog.HideFlags{CDX: true})
		assert.NotNil(t, fileset.Manifest)

		fileset.ApplyHide(catalog.HideFlags{Manifest: true})
		assert.Nil(t, fileset.Manifest)
	})

	t.Run("webcapture_cdx", func(t *testing.T) {
		capture := &catalog.Webcapture{CDX: []catalog.WebcaptureCDX{{Surt: "org,example)/"}}}
		capture.ApplyHide(catalog.HideFlags{Manifest: true})
		assert.NotNil(t, capture.CDX)

		capture.ApplyHide(catalog.HideFlags{CDX: true})
		assert.Nil(t, capture.CDX)
	})
}
