// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mm--/fatcat/internal/catalog"
	"github.com/mm--/fatcat/pkg/pointer"
)

/*
TestParseKind pins the seven kind names and the acceptance order.
*/
func TestParseKind(t *testing.T) {
	assert.Equal(t, []catalog.Kind{
		catalog.KindContainer, catalog.KindCreator, catalog.KindFile,
		catalog.KindFileset, catalog.KindWebcapture, catalog.KindRelease,
		catalog.KindWork,
	}, catalog.AllKinds)

	for _, kind := range catalog.AllKinds {
		parsed, ok := catalog.ParseKind(kind.String())
		assert.True(t, ok)
		assert.Equal(t, kind, parsed)
	}

	_, ok := catalog.ParseKind("comic")
	assert.False(t, ok)
}

/*
TestNewEntity checks the factory dispatch: each kind yields its own empty
concrete type reporting the same kind back.
*/
func TestNewEntity(t *testing.T) {
	for _, kind := range catalog.AllKinds {
		entity := catalog.NewEntity(kind)
		require.NotNil(t, entity, kind)
		assert.Equal(t, kind, entity.EntityKind())
		assert.NotNil(t, entity.Common())
	}
}

/*
TestMetaInlined verifies that the shared identity fields render inline in
an entity's JSON, not nested under a sub-object.
*/
func TestMetaInlined(t *testing.T) {
	container := &catalog.Container{Name: "Test Journal"}
	container.Ident = "aaaaaaaaaaaaaaaaaaaaaaaaae"
	container.State = catalog.StateActive
	container.Revision = "86daea5b-1b6b-432a-bb67-ea97795f80fe"

	payload, err := json.Marshal(container)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "active", decoded["state"])
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaae", decoded["ident"])
	assert.Equal(t, "Test Journal", decoded["name"])
	assert.NotContains(t, decoded, "redirect")
	assert.NotContains(t, decoded, "extra")
	assert.NotContains(t, decoded, "Meta")
}

/*
TestEntityValidate sweeps the per-kind validation rules through valid and
invalid entities.
*/
func TestEntityValidate(t *testing.T) {
	tests := []struct {
		name    string
		entity  catalog.Entity
		isValid bool
	}{
		{"container_plain", &catalog.Container{Name: "PLOS ONE"}, true},
		{"container_valid_issnl", &catalog.Container{Name: "PLOS ONE", ISSNL: pointer.To("1932-6203")}, true},
		{"container_bad_issnl", &catalog.Container{Name: "PLOS ONE", ISSNL: pointer.To("19326203")}, false},
		{"creator_valid_orcid", &catalog.Creator{DisplayName: "Grace Hopper", ORCID: pointer.To("0000-0002-1825-0097")}, true},
		{"creator_bad_orcid", &catalog.Creator{DisplayName: "Grace Hopper", ORCID: pointer.To("0000-0002-1825")}, false},
		{"creator_bad_qid", &catalog.Creator{DisplayName: "Grace Hopper", WikidataQID: pointer.To("x1234")}, false},
		{"file_valid_hashes", &catalog.File{
			SHA1: pointer.To("e9dd75237c94b209dc3ccd52722de6931a310ba3"),
			MD5:  pointer.To("1b39813549077b2347c0f370c3864b40"),
		}, true},
		{"file_bad_sha1", &catalog.File{SHA1: pointer.To("E9DD75237C94B209DC3CCD52722DE6931A310BA3")}, false},
		{"file_bad_release_id", &catalog.File{ReleaseIDs: []string{"not-an-ident"}}, false},
		{"release_plain", &catalog.Release{Title: "On Testing"}, true},
		{"release_valid_ids", &catalog.Release{
			Title:       "On Testing",
			DOI:         pointer.To("10.1234/abc"),
			PMID:        pointer.To("54321"),
			ReleaseType: pointer.To("article-journal"),
		}, true},
		{"release_bad_doi", &catalog.Release{Title: "On Testing", DOI: pointer.To("doi:10.1234/abc")}, false},
		{"release_bad_type", &catalog.Release{Title: "On Testing", ReleaseType: pointer.To("journal-article")}, false},
		{"release_bad_contrib_role", &catalog.Release{
			Title:    "On Testing",
			Contribs: []catalog.Contrib{{Role: pointer.To("chair")}},
		}, false},
		{"release_bad_work_id", &catalog.Release{Title: "On Testing", WorkID: "123"}, false},
		{"work_always_valid", &catalog.Work{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entity.Validate()
			if tt.isValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

/*
TestReleaseDecodesRedirect verifies that a redirect-shaped update body
decodes into the shared Meta fields.
*/
func TestReleaseDecodesRedirect(t *testing.T) {
	var release catalog.Release
	body := `{"redirect": "aaaaaaaaaaaaaaaaaaaaaaaaae"}`
	require.NoError(t, json.Unmarshal([]byte(body), &release))

	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaae", release.Redirect)
	assert.Empty(t, release.Title)
}
