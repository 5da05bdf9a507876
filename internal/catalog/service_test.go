// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mm--/fatcat/internal/catalog"
	"github.com/mm--/fatcat/pkg/pointer"
)

// stubRepository records calls for the methods under test; everything else
// panics through the embedded nil interface if reached.
type stubRepository struct {
	catalog.Repository

	lookupCalls  int
	lookupColumn string
	lookupValue  string
	lookupResult catalog.Entity

	createCalls int
	batchCalls  int
	updateCalls int
}

func (s *stubRepository) LookupEntity(_ context.Context, _ catalog.Kind, column, value string, _ catalog.ExpandFlags, _ catalog.HideFlags) (catalog.Entity, error) {
	s.lookupCalls++
	s.lookupColumn = column
	s.lookupValue = value
	return s.lookupResult, nil
}

func (s *stubRepository) CreateEntity(_ context.Context, _ catalog.EditRequest, entity catalog.Entity) (*catalog.Edit, error) {
	s.createCalls++
	return &catalog.Edit{Ident: "aaaaaaaaaaaaaaaaaaaaaaaaae", EditgroupID: "aaaaaaaaaaaaaaaaaaaaaaaaae"}, nil
}

func (s *stubRepository) CreateEntityBatch(_ context.Context, _ catalog.EditRequest, entities []catalog.Entity) ([]*catalog.Edit, error) {
	s.batchCalls++
	edits := make([]*catalog.Edit, len(entities))
	for i := range entities {
		edits[i] = &catalog.Edit{Ident: "aaaaaaaaaaaaaaaaaaaaaaaaae", EditgroupID: "aaaaaaaaaaaaaaaaaaaaaaaaae"}
	}
	return edits, nil
}

func (s *stubRepository) UpdateEntity(_ context.Context, _ catalog.EditRequest, _ uuid.UUID, _ catalog.Entity) (*catalog.Edit, error) {
	s.updateCalls++
	return &catalog.Edit{Ident: "aaaaaaaaaaaaaaaaaaaaaaaaae", EditgroupID: "aaaaaaaaaaaaaaaaaaaaaaaaae"}, nil
}

func newStubService(repo *stubRepository, maxBatchSize int) *catalog.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewService(repo, logger, nil, maxBatchSize)
}

// editorParams is a valid acting-editor context for stubbed mutations.
var editorParams = catalog.MutationParams{EditorID: "aaaaaaaaaaaaaaaaaaaaaaaaae"}

/*
TestLookupArity enforces the exactly-one-identifier rule: zero or multiple
supplied identifiers are rejected before any repository call, empty values
do not count as supplied.
*/
func TestLookupArity(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		wantCall bool
	}{
		{"none", map[string]string{}, false},
		{"all_empty", map[string]string{"doi": "", "pmid": ""}, false},
		{"exactly_one", map[string]string{"doi": "10.1234/abc"}, true},
		{"one_plus_empty", map[string]string{"doi": "10.1234/abc", "pmid": ""}, true},
		{"two", map[string]string{"doi": "10.1234/abc", "pmid": "1234"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &stubRepository{lookupResult: &catalog.Release{Title: "Found"}}
			service := newStubService(repo, 10)

			entity, err := service.LookupEntity(context.Background(), catalog.KindRelease,
				tt.params, catalog.ExpandFlags{}, catalog.HideFlags{})

			if tt.wantCall {
				require.NoError(t, err)
				assert.Equal(t, 1, repo.lookupCalls)
				assert.Equal(t, "doi", repo.lookupColumn)
				assert.Equal(t, "10.1234/abc", repo.lookupValue)
				assert.NotNil(t, entity)
			} else {
				requireCode(t, err, "MISSING_OR_MULTIPLE_EXTERNAL_ID")
				assert.Zero(t, repo.lookupCalls)
			}
		})
	}
}

/*
TestLookupValueChecked verifies that a malformed identifier value fails the
column's syntax check without touching the repository.
*/
func TestLookupValueChecked(t *testing.T) {
	repo := &stubRepository{}
	service := newStubService(repo, 10)

	_, err := service.LookupEntity(context.Background(), catalog.KindRelease,
		map[string]string{"doi": "not-a-doi"}, catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "MALFORMED_EXTERNAL_ID")
	assert.Zero(t, repo.lookupCalls)

	// pmid carries a syntax check like the other mapped columns.
	_, err = service.LookupEntity(context.Background(), catalog.KindRelease,
		map[string]string{"pmid": "PMC1234"}, catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "MALFORMED_EXTERNAL_ID")
	assert.Zero(t, repo.lookupCalls)

	_, err = service.LookupEntity(context.Background(), catalog.KindFile,
		map[string]string{"md5": "xyz"}, catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "MALFORMED_CHECKSUM")
	assert.Zero(t, repo.lookupCalls)
}

/*
TestCreateEntityGuards checks the pre-repository gates on single creates:
entity validation and editor identifier decoding.
*/
func TestCreateEntityGuards(t *testing.T) {
	repo := &stubRepository{}
	service := newStubService(repo, 10)
	ctx := context.Background()

	_, err := service.CreateEntity(ctx, editorParams,
		&catalog.Release{Title: "Bad", DOI: pointer.To("nope")})
	requireCode(t, err, "MALFORMED_EXTERNAL_ID")
	assert.Zero(t, repo.createCalls)

	_, err = service.CreateEntity(ctx, catalog.MutationParams{EditorID: "not-an-id"},
		&catalog.Release{Title: "Fine"})
	requireCode(t, err, "INVALID_FATCAT_ID")
	assert.Zero(t, repo.createCalls)

	edit, err := service.CreateEntity(ctx, editorParams, &catalog.Release{Title: "Fine"})
	require.NoError(t, err)
	assert.NotNil(t, edit)
	assert.Equal(t, 1, repo.createCalls)
}

/*
TestBatchSizeLimits checks the empty and oversized batch rejections.
*/
func TestBatchSizeLimits(t *testing.T) {
	repo := &stubRepository{}
	service := newStubService(repo, 2)
	ctx := context.Background()

	_, err := service.CreateEntityBatch(ctx, editorParams, nil)
	requireCode(t, err, "BAD_REQUEST")

	oversized := []catalog.Entity{
		&catalog.Work{}, &catalog.Work{}, &catalog.Work{},
	}
	_, err = service.CreateEntityBatch(ctx, editorParams, oversized)
	requireCode(t, err, "BAD_REQUEST")
	assert.Zero(t, repo.batchCalls)

	edits, err := service.CreateEntityBatch(ctx, editorParams, oversized[:2])
	require.NoError(t, err)
	assert.Len(t, edits, 2)
	assert.Equal(t, 1, repo.batchCalls)
}

/*
TestUpdateSkipsBodyValidation verifies that redirect and revert updates
bypass content validation: their bodies carry control fields only.
*/
func TestUpdateSkipsBodyValidation(t *testing.T) {
	repo := &stubRepository{}
	service := newStubService(repo, 10)
	ctx := context.Background()
	ident := "aaaaaaaaaaaaaaaaaaaaaaaaae"

	// A content update with a malformed identifier is rejected.
	bad := &catalog.Container{Name: "X", ISSNL: pointer.To("bogus")}
	_, err := service.UpdateEntity(ctx, editorParams, ident, bad)
	requireCode(t, err, "MALFORMED_EXTERNAL_ID")
	assert.Zero(t, repo.updateCalls)

	// The same body as a redirect is passed through untouched.
	redirect := &catalog.Container{Name: "X", ISSNL: pointer.To("bogus")}
	redirect.Redirect = "aaaaaaaaaaaaaaaaaaaaaaaaae"
	_, err = service.UpdateEntity(ctx, editorParams, ident, redirect)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updateCalls)

	// A revert carries only the prior revision.
	revert := &catalog.Container{}
	revert.Revision = "86daea5b-1b6b-432a-bb67-ea97795f80fe"
	_, err = service.UpdateEntity(ctx, editorParams, ident, revert)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.updateCalls)
}
