// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/mm--/fatcat/internal/platform/apperr"
	"github.com/mm--/fatcat/internal/platform/dberr"
)

// # Entity Expansion

// expandEntity inlines related entities into an already-loaded one. Every
// query runs against the caller's read snapshot, so expansions and the
// primary fetch see the same accepted state. Dangling references (a
// related ident tombstoned since the revision was written) are skipped,
// not errors.
func (repository *PostgresRepository) expandEntity(ctx context.Context, db dbtx, entity Entity, expand ExpandFlags, hide HideFlags) error {
	switch typed := entity.(type) {
	case *Release:
		return repository.expandRelease(ctx, db, typed, expand, hide)
	case *Work:
		return repository.expandWork(ctx, db, typed, expand, hide)
	case *Creator:
		return repository.expandCreator(ctx, db, typed, expand, hide)
	case *File:
		if expand.Releases {
			releases, err := repository.relatedByIdents(ctx, db, typed.ReleaseIDs, hide)
			if err != nil {
				return err
			}
			typed.Releases = releases
		}
	case *Fileset:
		if expand.Releases {
			releases, err := repository.relatedByIdents(ctx, db, typed.ReleaseIDs, hide)
			if err != nil {
				return err
			}
			typed.Releases = releases
		}
	case *Webcapture:
		if expand.Releases {
			releases, err := repository.relatedByIdents(ctx, db, typed.ReleaseIDs, hide)
			if err != nil {
				return err
			}
			typed.Releases = releases
		}
	}
	return nil
}

func (repository *PostgresRepository) expandRelease(ctx context.Context, db dbtx, release *Release, expand ExpandFlags, hide HideFlags) error {
	if expand.Container && release.ContainerID != nil {
		containerID, err := fcidToUUID(*release.ContainerID)
		if err != nil {
			return err
		}
		entity, err := repository.relatedEntity(ctx, db, KindContainer, containerID, hide)
		if err != nil {
			return err
		}
		if entity != nil {
			release.Container = entity.(*Container)
		}
	}

	if expand.Creators {
		for index := range release.Contribs {
			contrib := &release.Contribs[index]
			if contrib.CreatorID == nil {
				continue
			}
			creatorID, err := fcidToUUID(*contrib.CreatorID)
			if err != nil {
				return err
			}
			entity, err := repository.relatedEntity(ctx, db, KindCreator, creatorID, hide)
			if err != nil {
				return err
			}
			if entity != nil {
				contrib.Creator = entity.(*Creator)
			}
		}
	}

	// The reverse direction: artifacts whose current revision points at
	// this release.
	target := releaseExpandTarget(release)
	if expand.Files {
		entities, err := repository.artifactsForRelease(ctx, db, KindFile, target, hide)
		if err != nil {
			return err
		}
		for _, entity := range entities {
			release.Files = append(release.Files, entity.(*File))
		}
	}
	if expand.Filesets {
		entities, err := repository.artifactsForRelease(ctx, db, KindFileset, target, hide)
		if err != nil {
			return err
		}
		for _, entity := range entities {
			release.Filesets = append(release.Filesets, entity.(*Fileset))
		}
	}
	if expand.Webcaptures {
		entities, err := repository.artifactsForRelease(ctx, db, KindWebcapture, target, hide)
		if err != nil {
			return err
		}
		for _, entity := range entities {
			release.Webcaptures = append(release.Webcaptures, entity.(*Webcapture))
		}
	}
	return nil
}

// releaseExpandTarget picks the ident that revision association rows
// point at: the canonical target when the release was reached through a
// redirect, the release's own ident otherwise.
func releaseExpandTarget(release *Release) string {
	if release.Redirect != "" {
		return release.Redirect
	}
	return release.Ident
}

func (repository *PostgresRepository) expandWork(ctx context.Context, db dbtx, work *Work, expand ExpandFlags, hide HideFlags) error {
	if !expand.Releases {
		return nil
	}

	target := work.Ident
	if work.Redirect != "" {
		target = work.Redirect
	}
	workID, err := fcidToUUID(target)
	if err != nil {
		return err
	}

	query := `
		SELECT ident.id
		FROM catalog.release_ident AS ident
		JOIN catalog.release_rev AS rev ON rev.id = ident.rev_id
		WHERE rev.work_ident_id = $1 AND ident.is_live AND ident.redirect_id IS NULL
		ORDER BY ident.id
	`
	releases, err := repository.relatedReleases(ctx, db, query, workID, hide)
	if err != nil {
		return err
	}
	work.Releases = releases
	return nil
}

func (repository *PostgresRepository) expandCreator(ctx context.Context, db dbtx, creator *Creator, expand ExpandFlags, hide HideFlags) error {
	if !expand.Releases {
		return nil
	}

	target := creator.Ident
	if creator.Redirect != "" {
		target = creator.Redirect
	}
	creatorID, err := fcidToUUID(target)
	if err != nil {
		return err
	}

	query := `
		SELECT DISTINCT ident.id
		FROM catalog.release_ident AS ident
		JOIN catalog.release_contrib AS contrib ON contrib.release_rev = ident.rev_id
		WHERE contrib.creator_ident_id = $1 AND ident.is_live AND ident.redirect_id IS NULL
		ORDER BY ident.id
	`
	releases, err := repository.relatedReleases(ctx, db, query, creatorID, hide)
	if err != nil {
		return err
	}
	creator.Releases = releases
	return nil
}

// artifactsForRelease finds live file/fileset/webcapture entities whose
// current revision references the given release ident.
func (repository *PostgresRepository) artifactsForRelease(ctx context.Context, db dbtx, kind Kind, releaseIdent string, hide HideFlags) ([]Entity, error) {
	releaseID, err := fcidToUUID(releaseIdent)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT ident.id
		FROM catalog.%s_ident AS ident
		JOIN catalog.%s_rev_release AS link ON link.%s_rev = ident.rev_id
		WHERE link.target_release_ident_id = $1 AND ident.is_live AND ident.redirect_id IS NULL
		ORDER BY ident.id
	`, kind, kind, kind)

	identIDs, err := repository.queryIdentIDs(ctx, db, query, releaseID)
	if err != nil {
		return nil, err
	}

	var entities []Entity
	for _, identID := range identIDs {
		entity, err := repository.relatedEntity(ctx, db, kind, identID, hide)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}

func (repository *PostgresRepository) relatedReleases(ctx context.Context, db dbtx, query string, argument uuid.UUID, hide HideFlags) ([]*Release, error) {
	identIDs, err := repository.queryIdentIDs(ctx, db, query, argument)
	if err != nil {
		return nil, err
	}

	var releases []*Release
	for _, identID := range identIDs {
		entity, err := repository.relatedEntity(ctx, db, KindRelease, identID, hide)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			releases = append(releases, entity.(*Release))
		}
	}
	return releases, nil
}

// relatedByIdents loads releases from an explicit ident list (the
// release_ids a file/fileset/webcapture revision carries).
func (repository *PostgresRepository) relatedByIdents(ctx context.Context, db dbtx, idents []string, hide HideFlags) ([]*Release, error) {
	var releases []*Release
	for _, ident := range idents {
		identID, err := fcidToUUID(ident)
		if err != nil {
			return nil, err
		}
		entity, err := repository.relatedEntity(ctx, db, KindRelease, identID, hide)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			releases = append(releases, entity.(*Release))
		}
	}
	return releases, nil
}

// relatedEntity loads one related entity, treating NotFound as absence.
func (repository *PostgresRepository) relatedEntity(ctx context.Context, db dbtx, kind Kind, identID uuid.UUID, hide HideFlags) (Entity, error) {
	entity, err := repository.getEntity(ctx, db, kind, identID, hide)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return entity, nil
}

func (repository *PostgresRepository) queryIdentIDs(ctx context.Context, db dbtx, query string, argument uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, query, argument)
	if err != nil {
		return nil, dberr.Wrap(err, "query_related_idents")
	}
	defer rows.Close()

	var identIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_related_ident")
		}
		identIDs = append(identIDs, id)
	}
	return identIDs, rows.Err()
}
