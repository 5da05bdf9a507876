// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mm--/fatcat/internal/catalog"
	"github.com/mm--/fatcat/internal/platform/migration"
	"github.com/mm--/fatcat/internal/platform/postgres"
	"github.com/mm--/fatcat/pkg/fcid"
	"github.com/mm--/fatcat/pkg/pointer"
)

// bootstrapEditorID is the editor seeded by the first migration.
var bootstrapEditorID = uuid.MustParse("00000000-0000-0000-aaaa-000000000001")

var (
	setupOnce sync.Once
	setupErr  error
	testPool  *pgxpool.Pool

	usernameSeq atomic.Int64
)

// newTestRepository starts (once per run) a dockerized PostgreSQL, applies
// the migrations and returns a repository backed by a shared pool.
func newTestRepository(t *testing.T) *catalog.PostgresRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test requires docker")
	}

	setupOnce.Do(func() {
		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
			tcpostgres.WithDatabase("fatcat_test"),
			tcpostgres.WithUsername("fatcat"),
			tcpostgres.WithPassword("fatcat"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			setupErr = fmt.Errorf("start postgres container: %w", err)
			return
		}

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			setupErr = fmt.Errorf("container connection string: %w", err)
			return
		}

		if err := migration.RunUp(dsn, "../../data/migrations", logger); err != nil {
			setupErr = fmt.Errorf("apply migrations: %w", err)
			return
		}

		testPool, setupErr = postgres.NewPool(ctx, dsn, logger)
	})

	if setupErr != nil {
		t.Fatalf("test database setup: %v", setupErr)
	}
	return catalog.NewPostgresRepository(testPool)
}

// newEditgroup opens a fresh editgroup for the bootstrap editor and returns
// its database id.
func newEditgroup(t *testing.T, repository *catalog.PostgresRepository) uuid.UUID {
	t.Helper()
	editgroup, err := repository.CreateEditgroup(context.Background(), bootstrapEditorID, nil, nil)
	require.NoError(t, err)
	return mustFcid(t, editgroup.EditgroupID)
}

// mustFcid decodes a public identifier back into its database UUID.
func mustFcid(t *testing.T, value string) uuid.UUID {
	t.Helper()
	id, err := fcid.ToUUID(value)
	require.NoError(t, err)
	return id
}

func nextUsername(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, usernameSeq.Add(1))
}

/*
TestContainerLifecycle walks one container through the full editgroup
protocol: staged work is invisible, acceptance makes it live, and the
mutation shows up in the ident's history.
*/
func TestContainerLifecycle(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editgroupID := newEditgroup(t, repository)
	request := catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &editgroupID}

	entity := &catalog.Container{Name: "PLOS ONE", ISSNL: pointer.To("1932-6203")}
	edit, err := repository.CreateEntity(ctx, request, entity)
	require.NoError(t, err)
	require.NotNil(t, edit.Revision)
	assert.Equal(t, entity.Ident, edit.Ident)
	assert.Equal(t, entity.Revision, *edit.Revision)
	assert.Nil(t, edit.PrevRevision)

	identID := mustFcid(t, edit.Ident)

	// Not yet accepted: the ident must not resolve.
	_, err = repository.GetEntity(ctx, catalog.KindContainer, identID, catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "NOT_FOUND")

	entry, err := repository.AcceptEditgroup(ctx, editgroupID)
	require.NoError(t, err)
	assert.Positive(t, entry.Index)
	assert.Equal(t, fcid.FromUUID(editgroupID), entry.EditgroupID)

	loaded, err := repository.GetEntity(ctx, catalog.KindContainer, identID, catalog.ExpandFlags{}, catalog.HideFlags{})
	require.NoError(t, err)
	container, ok := loaded.(*catalog.Container)
	require.True(t, ok)
	assert.Equal(t, "PLOS ONE", container.Name)
	assert.Equal(t, catalog.StateActive, container.State)
	assert.Equal(t, edit.Ident, container.Ident)
	assert.Equal(t, *edit.Revision, container.Revision)

	// The revision is also addressable directly, without ident context.
	revision, err := repository.GetRevision(ctx, catalog.KindContainer, uuid.MustParse(*edit.Revision), catalog.HideFlags{})
	require.NoError(t, err)
	assert.Equal(t, "PLOS ONE", revision.(*catalog.Container).Name)
	assert.Empty(t, revision.Common().Ident)

	history, err := repository.GetHistory(ctx, catalog.KindContainer, identID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, edit.EditID, history[0].Edit.EditID)
	assert.Equal(t, entry.Index, history[0].ChangelogEntry.Index)
}

/*
TestUpdateRevertDelete exercises the three update shapes against one ident:
a content update, a revert to a prior revision, and a tombstone delete.
*/
func TestUpdateRevertDelete(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	// Revision 1.
	createGroup := newEditgroup(t, repository)
	entity := &catalog.Container{Name: "Original Name"}
	created, err := repository.CreateEntity(ctx, catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &createGroup}, entity)
	require.NoError(t, err)
	_, err = repository.AcceptEditgroup(ctx, createGroup)
	require.NoError(t, err)

	identID := mustFcid(t, created.Ident)
	firstRevision := *created.Revision

	// Revision 2: a plain content update.
	updateGroup := newEditgroup(t, repository)
	updated, err := repository.UpdateEntity(ctx,
		catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &updateGroup},
		identID, &catalog.Container{Name: "Renamed"})
	require.NoError(t, err)
	require.NotNil(t, updated.PrevRevision)
	assert.Equal(t, firstRevision, *updated.PrevRevision)
	_, err = repository.AcceptEditgroup(ctx, updateGroup)
	require.NoError(t, err)

	loaded, err := repository.GetEntity(ctx, catalog.KindContainer, identID, catalog.ExpandFlags{}, catalog.HideFlags{})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.(*catalog.Container).Name)

	// Revert: an update carrying only a known prior revision reuses it.
	revertGroup := newEditgroup(t, repository)
	revert := &catalog.Container{}
	revert.Revision = firstRevision
	reverted, err := repository.UpdateEntity(ctx,
		catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &revertGroup},
		identID, revert)
	require.NoError(t, err)
	require.NotNil(t, reverted.Revision)
	assert.Equal(t, firstRevision, *reverted.Revision)
	_, err = repository.AcceptEditgroup(ctx, revertGroup)
	require.NoError(t, err)

	loaded, err = repository.GetEntity(ctx, catalog.KindContainer, identID, catalog.ExpandFlags{}, catalog.HideFlags{})
	require.NoError(t, err)
	assert.Equal(t, "Original Name", loaded.(*catalog.Container).Name)

	// Tombstone.
	deleteGroup := newEditgroup(t, repository)
	deleted, err := repository.DeleteEntity(ctx, catalog.KindContainer,
		catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &deleteGroup}, identID)
	require.NoError(t, err)
	assert.Nil(t, deleted.Revision)
	assert.Nil(t, deleted.RedirectIdent)
	_, err = repository.AcceptEditgroup(ctx, deleteGroup)
	require.NoError(t, err)

	_, err = repository.GetEntity(ctx, catalog.KindContainer, identID, catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "NOT_FOUND")

	// Deleting a tombstoned ident is rejected.
	againGroup := newEditgroup(t, repository)
	_, err = repository.DeleteEntity(ctx, catalog.KindContainer,
		catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &againGroup}, identID)
	requireCode(t, err, "BAD_REQUEST")

	history, err := repository.GetHistory(ctx, catalog.KindContainer, identID, 10)
	require.NoError(t, err)
	require.Len(t, history, 4)
	// Newest first: the delete leads, the create closes.
	assert.Nil(t, history[0].Edit.Revision)
	assert.Equal(t, created.EditID, history[3].Edit.EditID)
}

/*
TestUpdateThenDeleteReplacesEdit checks the one-edit-per-ident rule inside
a single editgroup: a delete staged after an update supersedes it, so
acceptance applies exactly the tombstone.
*/
func TestUpdateThenDeleteReplacesEdit(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	createGroup := newEditgroup(t, repository)
	created, err := repository.CreateEntity(ctx,
		catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &createGroup},
		&catalog.Container{Name: "Short Lived"})
	require.NoError(t, err)
	_, err = repository.AcceptEditgroup(ctx, createGroup)
	require.NoError(t, err)

	identID := mustFcid(t, created.Ident)

	workGroup := newEditgroup(t, repository)
	request := catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &workGroup}
	_, err = repository.UpdateEntity(ctx, request, identID, &catalog.Container{Name: "Renamed First"})
	require.NoError(t, err)
	_, err = repository.DeleteEntity(ctx, catalog.KindContainer, request, identID)
	require.NoError(t, err)

	// Only the tombstone survives staging.
	editgroup, err := repository.GetEditgroup(ctx, workGroup)
	require.NoError(t, err)
	require.NotNil(t, editgroup.Edits)
	require.Len(t, editgroup.Edits.Containers, 1)
	assert.Nil(t, editgroup.Edits.Containers[0].Revision)
	assert.Nil(t, editgroup.Edits.Containers[0].RedirectIdent)

	_, err = repository.AcceptEditgroup(ctx, workGroup)
	require.NoError(t, err)

	_, err = repository.GetEntity(ctx, catalog.KindContainer, identID, catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "NOT_FOUND")
}

/*
TestRedirect stages a redirect between two live containers and checks the
one-hop resolution, the reverse index and the canonical-target rule.
*/
func TestRedirect(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	createGroup := newEditgroup(t, repository)
	request := catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &createGroup}

	duplicate, err := repository.CreateEntity(ctx, request, &catalog.Container{Name: "Jrnl. of Testing"})
	require.NoError(t, err)
	canonical, err := repository.CreateEntity(ctx, request, &catalog.Container{Name: "Journal of Testing"})
	require.NoError(t, err)
	_, err = repository.AcceptEditgroup(ctx, createGroup)
	require.NoError(t, err)

	duplicateID := mustFcid(t, duplicate.Ident)
	canonicalID := mustFcid(t, canonical.Ident)

	// Stage and accept the redirect duplicate -> canonical.
	redirectGroup := newEditgroup(t, repository)
	redirect := &catalog.Container{}
	redirect.Redirect = canonical.Ident
	edit, err := repository.UpdateEntity(ctx,
		catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &redirectGroup},
		duplicateID, redirect)
	require.NoError(t, err)
	require.NotNil(t, edit.RedirectIdent)
	assert.Equal(t, canonical.Ident, *edit.RedirectIdent)
	assert.Nil(t, edit.Revision)
	_, err = repository.AcceptEditgroup(ctx, redirectGroup)
	require.NoError(t, err)

	// Reading the duplicate resolves one hop to the canonical contents.
	loaded, err := repository.GetEntity(ctx, catalog.KindContainer, duplicateID, catalog.ExpandFlags{}, catalog.HideFlags{})
	require.NoError(t, err)
	resolved := loaded.(*catalog.Container)
	assert.Equal(t, "Journal of Testing", resolved.Name)
	assert.Equal(t, duplicate.Ident, resolved.Ident)
	assert.Equal(t, canonical.Ident, resolved.Redirect)
	assert.Equal(t, catalog.StateRedirect, resolved.State)

	redirects, err := repository.GetRedirects(ctx, catalog.KindContainer, canonicalID)
	require.NoError(t, err)
	assert.Contains(t, redirects, duplicate.Ident)

	// Content updates must target the canonical ident, not the redirect.
	fixGroup := newEditgroup(t, repository)
	_, err = repository.UpdateEntity(ctx,
		catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &fixGroup},
		duplicateID, &catalog.Container{Name: "New Name"})
	requireCode(t, err, "BAD_REQUEST")
}

/*
TestEditgroupImmutability verifies that acceptance freezes an editgroup:
no second accept, no new edits, no unstaging of its edits.
*/
func TestEditgroupImmutability(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editgroupID := newEditgroup(t, repository)
	request := catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &editgroupID}

	edit, err := repository.CreateEntity(ctx, request, &catalog.Container{Name: "Frozen"})
	require.NoError(t, err)
	_, err = repository.AcceptEditgroup(ctx, editgroupID)
	require.NoError(t, err)

	_, err = repository.AcceptEditgroup(ctx, editgroupID)
	requireCode(t, err, "EDITGROUP_ALREADY_ACCEPTED")

	_, err = repository.CreateEntity(ctx, request, &catalog.Container{Name: "Too Late"})
	requireCode(t, err, "EDITGROUP_ALREADY_ACCEPTED")

	err = repository.DeleteEdit(ctx, catalog.KindContainer, edit.EditID)
	requireCode(t, err, "EDITGROUP_ALREADY_ACCEPTED")
}

/*
TestDeleteEditUnstages removes a staged edit before acceptance and checks
that accepting the now-empty editgroup leaves no live entity behind.
*/
func TestDeleteEditUnstages(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editgroupID := newEditgroup(t, repository)
	request := catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &editgroupID}

	edit, err := repository.CreateEntity(ctx, request, &catalog.Container{Name: "Never Was"})
	require.NoError(t, err)

	require.NoError(t, repository.DeleteEdit(ctx, catalog.KindContainer, edit.EditID))

	_, err = repository.GetEdit(ctx, catalog.KindContainer, edit.EditID)
	requireCode(t, err, "NOT_FOUND")

	_, err = repository.AcceptEditgroup(ctx, editgroupID)
	require.NoError(t, err)

	_, err = repository.GetEntity(ctx, catalog.KindContainer, mustFcid(t, edit.Ident), catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "NOT_FOUND")
}

/*
TestAutoacceptReleaseBatch creates releases in one autoaccepted batch. The
whole batch becomes visible atomically, and each release without a work
gets one staged alongside it.
*/
func TestAutoacceptReleaseBatch(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	entities := []catalog.Entity{
		&catalog.Release{Title: "Paper One", DOI: pointer.To("10.1234/batch.1"), ReleaseType: pointer.To("article-journal")},
		&catalog.Release{Title: "Paper Two", DOI: pointer.To("10.1234/batch.2"), ReleaseType: pointer.To("article-journal")},
	}

	edits, err := repository.CreateEntityBatch(ctx,
		catalog.EditRequest{EditorID: bootstrapEditorID, Autoaccept: true}, entities)
	require.NoError(t, err)
	require.Len(t, edits, 2)

	for index, edit := range edits {
		release := entities[index].(*catalog.Release)
		require.NotEmpty(t, release.WorkID)

		loaded, err := repository.GetEntity(ctx, catalog.KindRelease, mustFcid(t, edit.Ident), catalog.ExpandFlags{}, catalog.HideFlags{})
		require.NoError(t, err)
		assert.Equal(t, release.Title, loaded.(*catalog.Release).Title)

		// The auto-staged work was accepted in the same transaction.
		work, err := repository.GetEntity(ctx, catalog.KindWork, mustFcid(t, release.WorkID), catalog.ExpandFlags{}, catalog.HideFlags{})
		require.NoError(t, err)
		assert.Equal(t, catalog.StateActive, work.Common().State)
	}

	// The fresh editgroup carries both release edits and both work edits.
	editgroup, err := repository.GetEditgroup(ctx, mustFcid(t, edits[0].EditgroupID))
	require.NoError(t, err)
	require.NotNil(t, editgroup.Edits)
	assert.Len(t, editgroup.Edits.Releases, 2)
	assert.Len(t, editgroup.Edits.Works, 2)
}

/*
TestFilesetLifecycle round-trips a fileset with a two-member manifest and
checks that the manifest hide flag suppresses the members without touching
the rest of the revision.
*/
func TestFilesetLifecycle(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editgroupID := newEditgroup(t, repository)
	request := catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &editgroupID}

	releaseEdit, err := repository.CreateEntity(ctx, request, &catalog.Release{Title: "Dataset Paper"})
	require.NoError(t, err)

	fileset := &catalog.Fileset{
		Manifest: []catalog.FilesetFile{
			{
				PathName:  "data/readings.csv",
				SizeBytes: 48211,
				MD5:       pointer.To("1b39a8e45c93cf2b6a36d2b9cd3f2b01"),
				SHA1:      pointer.To("f0b6b9bd9a3b41bd1a0f9e6e4ab1e07c2f9a77c1"),
			},
			{
				PathName:  "README.md",
				SizeBytes: 512,
				SHA256:    pointer.To("2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae"),
			},
		},
		URLs:       []catalog.FilesetURL{{URL: "https://archive.example.org/dataset/", Rel: "repository"}},
		ReleaseIDs: []string{releaseEdit.Ident},
	}
	edit, err := repository.CreateEntity(ctx, request, fileset)
	require.NoError(t, err)
	_, err = repository.AcceptEditgroup(ctx, editgroupID)
	require.NoError(t, err)

	filesetID := mustFcid(t, edit.Ident)

	loaded, err := repository.GetEntity(ctx, catalog.KindFileset, filesetID, catalog.ExpandFlags{}, catalog.HideFlags{})
	require.NoError(t, err)
	full := loaded.(*catalog.Fileset)
	require.Len(t, full.Manifest, 2)
	assert.Equal(t, "data/readings.csv", full.Manifest[0].PathName)
	assert.Equal(t, int64(48211), full.Manifest[0].SizeBytes)
	require.NotNil(t, full.Manifest[0].SHA1)
	assert.Equal(t, "f0b6b9bd9a3b41bd1a0f9e6e4ab1e07c2f9a77c1", *full.Manifest[0].SHA1)
	assert.Equal(t, "README.md", full.Manifest[1].PathName)
	require.NotNil(t, full.Manifest[1].SHA256)
	require.Len(t, full.URLs, 1)
	assert.Equal(t, "repository", full.URLs[0].Rel)
	assert.Equal(t, []string{releaseEdit.Ident}, full.ReleaseIDs)

	// Hiding the manifest leaves urls and release links intact.
	hidden, err := repository.GetEntity(ctx, catalog.KindFileset, filesetID, catalog.ExpandFlags{},
		catalog.HideFlags{Manifest: true})
	require.NoError(t, err)
	slim := hidden.(*catalog.Fileset)
	assert.Empty(t, slim.Manifest)
	assert.Len(t, slim.URLs, 1)
	assert.Equal(t, []string{releaseEdit.Ident}, slim.ReleaseIDs)

	// The release side finds the fileset through the reverse expansion.
	releaseLoaded, err := repository.GetEntity(ctx, catalog.KindRelease, mustFcid(t, releaseEdit.Ident),
		catalog.ExpandFlags{Filesets: true}, catalog.HideFlags{})
	require.NoError(t, err)
	require.Len(t, releaseLoaded.(*catalog.Release).Filesets, 1)
	assert.Equal(t, edit.Ident, releaseLoaded.(*catalog.Release).Filesets[0].Ident)
}

/*
TestWebcaptureLifecycle round-trips a webcapture with two CDX lines and
checks that the cdx hide flag suppresses the lines without touching the
capture metadata.
*/
func TestWebcaptureLifecycle(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editgroupID := newEditgroup(t, repository)
	request := catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &editgroupID}

	releaseEdit, err := repository.CreateEntity(ctx, request, &catalog.Release{Title: "Archived Blog Post"})
	require.NoError(t, err)

	capture := &catalog.Webcapture{
		OriginalURL: "http://example.org/post.html",
		Timestamp:   "2024-01-15T08:30:00Z",
		CDX: []catalog.WebcaptureCDX{
			{
				Surt:       "org,example)/post.html",
				Timestamp:  "20240115083000",
				URL:        "http://example.org/post.html",
				Mimetype:   pointer.To("text/html"),
				StatusCode: pointer.To(int64(200)),
				SHA1:       "3f786850e387550fdab836ed7e6dc881de23001b",
			},
			{
				Surt:      "org,example)/style.css",
				Timestamp: "20240115083001",
				URL:       "http://example.org/style.css",
				SHA1:      "89e6c98d92887913cadf06b2adb97f26cde4849b",
			},
		},
		URLs:       []catalog.WebcaptureURL{{URL: "https://web.archive.org/web/20240115083000/http://example.org/post.html", Rel: "wayback"}},
		ReleaseIDs: []string{releaseEdit.Ident},
	}
	edit, err := repository.CreateEntity(ctx, request, capture)
	require.NoError(t, err)
	_, err = repository.AcceptEditgroup(ctx, editgroupID)
	require.NoError(t, err)

	captureID := mustFcid(t, edit.Ident)

	loaded, err := repository.GetEntity(ctx, catalog.KindWebcapture, captureID, catalog.ExpandFlags{}, catalog.HideFlags{})
	require.NoError(t, err)
	full := loaded.(*catalog.Webcapture)
	assert.Equal(t, "http://example.org/post.html", full.OriginalURL)
	assert.Equal(t, "2024-01-15T08:30:00Z", full.Timestamp)
	require.Len(t, full.CDX, 2)
	assert.Equal(t, "org,example)/post.html", full.CDX[0].Surt)
	require.NotNil(t, full.CDX[0].StatusCode)
	assert.Equal(t, int64(200), *full.CDX[0].StatusCode)
	assert.Equal(t, "89e6c98d92887913cadf06b2adb97f26cde4849b", full.CDX[1].SHA1)
	assert.Nil(t, full.CDX[1].Mimetype)
	require.Len(t, full.URLs, 1)
	assert.Equal(t, "wayback", full.URLs[0].Rel)
	assert.Equal(t, []string{releaseEdit.Ident}, full.ReleaseIDs)

	// Hiding the CDX lines leaves capture metadata and links intact.
	hidden, err := repository.GetEntity(ctx, catalog.KindWebcapture, captureID, catalog.ExpandFlags{},
		catalog.HideFlags{CDX: true})
	require.NoError(t, err)
	slim := hidden.(*catalog.Webcapture)
	assert.Empty(t, slim.CDX)
	assert.Equal(t, "http://example.org/post.html", slim.OriginalURL)
	assert.Len(t, slim.URLs, 1)
	assert.Equal(t, []string{releaseEdit.Ident}, slim.ReleaseIDs)

	// The release side finds the capture through the reverse expansion.
	releaseLoaded, err := repository.GetEntity(ctx, catalog.KindRelease, mustFcid(t, releaseEdit.Ident),
		catalog.ExpandFlags{Webcaptures: true}, catalog.HideFlags{})
	require.NoError(t, err)
	require.Len(t, releaseLoaded.(*catalog.Release).Webcaptures, 1)
	assert.Equal(t, edit.Ident, releaseLoaded.(*catalog.Release).Webcaptures[0].Ident)
}

/*
TestLookup resolves entities through external identifier columns and
rejects columns foreign to the kind.
*/
func TestLookup(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editgroupID := newEditgroup(t, repository)
	request := catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &editgroupID}

	_, err := repository.CreateEntity(ctx, request, &catalog.Container{Name: "PeerJ", ISSNL: pointer.To("2167-8359")})
	require.NoError(t, err)
	fileEdit, err := repository.CreateEntity(ctx, request, &catalog.File{
		SHA1: pointer.To("e9dd75237c94b209dc3ccd52722de6931a310ba3"),
		Size: pointer.To(int64(1024)),
	})
	require.NoError(t, err)

	// Staged only: lookups see accepted state.
	_, err = repository.LookupEntity(ctx, catalog.KindContainer, "issnl", "2167-8359", catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "NOT_FOUND")

	_, err = repository.AcceptEditgroup(ctx, editgroupID)
	require.NoError(t, err)

	loaded, err := repository.LookupEntity(ctx, catalog.KindContainer, "issnl", "2167-8359", catalog.ExpandFlags{}, catalog.HideFlags{})
	require.NoError(t, err)
	assert.Equal(t, "PeerJ", loaded.(*catalog.Container).Name)

	loaded, err = repository.LookupEntity(ctx, catalog.KindFile, "sha1", "e9dd75237c94b209dc3ccd52722de6931a310ba3", catalog.ExpandFlags{}, catalog.HideFlags{})
	require.NoError(t, err)
	assert.Equal(t, fileEdit.Ident, loaded.Common().Ident)

	_, err = repository.LookupEntity(ctx, catalog.KindContainer, "issnl", "0000-0000", catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "NOT_FOUND")

	// "doi" is a release column, not a container column.
	_, err = repository.LookupEntity(ctx, catalog.KindContainer, "doi", "10.1234/abc", catalog.ExpandFlags{}, catalog.HideFlags{})
	requireCode(t, err, "BAD_REQUEST")
}

/*
TestExpandRelease builds a small graph (container, creator, release, file)
and checks that the expand flags pull the related entities into one read.
*/
func TestExpandRelease(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editgroupID := newEditgroup(t, repository)
	request := catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &editgroupID}

	containerEdit, err := repository.CreateEntity(ctx, request, &catalog.Container{Name: "Annals of Graphs"})
	require.NoError(t, err)
	creatorEdit, err := repository.CreateEntity(ctx, request, &catalog.Creator{DisplayName: "Ada Lovelace"})
	require.NoError(t, err)

	release := &catalog.Release{
		Title:       "On Connected Components",
		ContainerID: pointer.To(containerEdit.Ident),
		Contribs: []catalog.Contrib{{
			CreatorID: pointer.To(creatorEdit.Ident),
			Role:      pointer.To("author"),
		}},
	}
	releaseEdit, err := repository.CreateEntity(ctx, request, release)
	require.NoError(t, err)

	_, err = repository.CreateEntity(ctx, request, &catalog.File{
		SHA1:       pointer.To("4d2a7c539eada2e3f93bd0d589e4a9e0d295f69c"),
		ReleaseIDs: []string{releaseEdit.Ident},
	})
	require.NoError(t, err)

	_, err = repository.AcceptEditgroup(ctx, editgroupID)
	require.NoError(t, err)

	releaseID := mustFcid(t, releaseEdit.Ident)
	expand := catalog.ExpandFlags{Container: true, Creators: true, Files: true}
	loaded, err := repository.GetEntity(ctx, catalog.KindRelease, releaseID, expand, catalog.HideFlags{})
	require.NoError(t, err)

	expanded := loaded.(*catalog.Release)
	require.NotNil(t, expanded.Container)
	assert.Equal(t, "Annals of Graphs", expanded.Container.Name)
	require.Len(t, expanded.Files, 1)
	assert.Equal(t, "4d2a7c539eada2e3f93bd0d589e4a9e0d295f69c", *expanded.Files[0].SHA1)
	require.Len(t, expanded.Contribs, 1)
	require.NotNil(t, expanded.Contribs[0].Creator)
	assert.Equal(t, "Ada Lovelace", expanded.Contribs[0].Creator.DisplayName)

	// The file side points back through the releases expansion.
	fileLoaded, err := repository.LookupEntity(ctx, catalog.KindFile, "sha1",
		"4d2a7c539eada2e3f93bd0d589e4a9e0d295f69c", catalog.ExpandFlags{Releases: true}, catalog.HideFlags{})
	require.NoError(t, err)
	file := fileLoaded.(*catalog.File)
	require.Len(t, file.Releases, 1)
	assert.Equal(t, "On Connected Components", file.Releases[0].Title)
}

/*
TestReleaseHiddenFields checks that hide flags suppress the heavy release
columns on read while the full revision stays intact.
*/
func TestReleaseHiddenFields(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editgroupID := newEditgroup(t, repository)
	release := &catalog.Release{
		Title:     "Heavy Payload",
		Contribs:  []catalog.Contrib{{RawName: pointer.To("A. Author"), Role: pointer.To("author")}},
		Refs:      []catalog.Ref{{Title: pointer.To("A cited work")}},
		Abstracts: []catalog.Abstract{{Content: "We prove nothing.", Mimetype: pointer.To("text/plain")}},
	}
	edit, err := repository.CreateEntity(ctx,
		catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &editgroupID}, release)
	require.NoError(t, err)
	_, err = repository.AcceptEditgroup(ctx, editgroupID)
	require.NoError(t, err)

	releaseID := mustFcid(t, edit.Ident)

	full, err := repository.GetEntity(ctx, catalog.KindRelease, releaseID, catalog.ExpandFlags{}, catalog.HideFlags{})
	require.NoError(t, err)
	fullRelease := full.(*catalog.Release)
	require.Len(t, fullRelease.Abstracts, 1)
	assert.Equal(t, "We prove nothing.", fullRelease.Abstracts[0].Content)
	assert.NotEmpty(t, fullRelease.Abstracts[0].SHA1)
	assert.Len(t, fullRelease.Contribs, 1)
	assert.Len(t, fullRelease.Refs, 1)

	hidden, err := repository.GetEntity(ctx, catalog.KindRelease, releaseID, catalog.ExpandFlags{},
		catalog.HideFlags{Abstracts: true, Refs: true, Contribs: true})
	require.NoError(t, err)
	hiddenRelease := hidden.(*catalog.Release)
	assert.Equal(t, "Heavy Payload", hiddenRelease.Title)
	assert.Empty(t, hiddenRelease.Abstracts)
	assert.Empty(t, hiddenRelease.Refs)
	assert.Empty(t, hiddenRelease.Contribs)
}

/*
TestActiveEditgroupResolution covers the implicit editgroup policy: edits
without an explicit editgroup share the editor's active one, acceptance
clears the pointer, and the next edit opens a fresh editgroup.
*/
func TestActiveEditgroupResolution(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editor := &catalog.Editor{Username: nextUsername("active-editor")}
	require.NoError(t, repository.CreateEditor(ctx, editor))
	editorID := mustFcid(t, editor.EditorID)

	request := catalog.EditRequest{EditorID: editorID}

	first, err := repository.CreateEntity(ctx, request, &catalog.Container{Name: "First"})
	require.NoError(t, err)
	second, err := repository.CreateEntity(ctx, request, &catalog.Container{Name: "Second"})
	require.NoError(t, err)
	assert.Equal(t, first.EditgroupID, second.EditgroupID)

	loadedEditor, err := repository.GetEditor(ctx, editorID)
	require.NoError(t, err)
	require.NotNil(t, loadedEditor.ActiveEditgroupID)
	assert.Equal(t, first.EditgroupID, *loadedEditor.ActiveEditgroupID)

	_, err = repository.AcceptEditgroup(ctx, mustFcid(t, first.EditgroupID))
	require.NoError(t, err)

	loadedEditor, err = repository.GetEditor(ctx, editorID)
	require.NoError(t, err)
	assert.Nil(t, loadedEditor.ActiveEditgroupID)

	third, err := repository.CreateEntity(ctx, request, &catalog.Container{Name: "Third"})
	require.NoError(t, err)
	assert.NotEqual(t, first.EditgroupID, third.EditgroupID)
}

/*
TestEditorAccounts covers editor creation, rename and the changelog slice
scoped to one editor's accepted editgroups.
*/
func TestEditorAccounts(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editor := &catalog.Editor{Username: nextUsername("claimant"), IsBot: true}
	require.NoError(t, repository.CreateEditor(ctx, editor))
	require.NotEmpty(t, editor.EditorID)
	editorID := mustFcid(t, editor.EditorID)

	renamed, err := repository.UpdateEditorUsername(ctx, editorID, nextUsername("renamed"))
	require.NoError(t, err)
	assert.Equal(t, editor.EditorID, renamed.EditorID)
	assert.True(t, renamed.IsBot)
	assert.NotEqual(t, editor.Username, renamed.Username)

	_, err = repository.UpdateEditorUsername(ctx, uuid.New(), "nobody")
	requireCode(t, err, "NOT_FOUND")

	// One accepted editgroup for this editor, none for a fresh one.
	edit, err := repository.CreateEntity(ctx, catalog.EditRequest{EditorID: editorID}, &catalog.Container{Name: "Mine"})
	require.NoError(t, err)
	entry, err := repository.AcceptEditgroup(ctx, mustFcid(t, edit.EditgroupID))
	require.NoError(t, err)

	entries, err := repository.GetEditorChangelog(ctx, editorID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.Index, entries[0].Index)
}

/*
TestChangelogAndStats checks the global changelog ordering and the stats
counters after a known mutation.
*/
func TestChangelogAndStats(t *testing.T) {
	repository := newTestRepository(t)
	ctx := context.Background()

	editgroupID := newEditgroup(t, repository)
	_, err := repository.CreateEntity(ctx,
		catalog.EditRequest{EditorID: bootstrapEditorID, EditgroupID: &editgroupID},
		&catalog.Container{Name: "Counted"})
	require.NoError(t, err)
	entry, err := repository.AcceptEditgroup(ctx, editgroupID)
	require.NoError(t, err)

	entries, err := repository.GetChangelog(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, entry.Index, entries[0].Index)
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i-1].Index, entries[i].Index)
	}

	single, err := repository.GetChangelogEntry(ctx, entry.Index)
	require.NoError(t, err)
	require.NotNil(t, single.Editgroup)
	assert.Equal(t, fcid.FromUUID(editgroupID), single.Editgroup.EditgroupID)
	assert.Len(t, single.Editgroup.Edits.Containers, 1)

	stats, err := repository.Stats(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.ChangelogIndex, entry.Index)
	assert.GreaterOrEqual(t, stats.Entities["container"], int64(1))
	assert.GreaterOrEqual(t, stats.Editors, int64(1))
	assert.GreaterOrEqual(t, stats.Editgroups, int64(1))
	assert.Len(t, stats.Entities, len(catalog.AllKinds))
}
