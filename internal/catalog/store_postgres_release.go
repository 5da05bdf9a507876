// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"crypto/sha1"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mm--/fatcat/internal/platform/dberr"
	"github.com/mm--/fatcat/pkg/fcid"
	"github.com/mm--/fatcat/pkg/uuidv7"
)

// releaseRevStore persists release revisions: the widest revision row in
// the catalog, plus contrib, reference and abstract association tables.
// Abstract content is deduplicated by SHA-1 into a shared table; the
// per-revision association row carries mimetype and language.
type releaseRevStore struct{}

func (store *releaseRevStore) kind() Kind { return KindRelease }

func (store *releaseRevStore) insertRev(ctx context.Context, tx pgx.Tx, entity Entity) (uuid.UUID, error) {
	release := entity.(*Release)

	workID, err := fcidToUUID(release.WorkID)
	if err != nil {
		return uuid.Nil, err
	}
	var containerID *uuid.UUID
	if release.ContainerID != nil {
		id, err := fcidToUUID(*release.ContainerID)
		if err != nil {
			return uuid.Nil, err
		}
		containerID = &id
	}

	query := `
		INSERT INTO catalog.release_rev (
			id, work_ident_id, container_ident_id, title, release_type,
			release_status, release_date, doi, wikidata_qid, isbn13, pmid,
			pmcid, core_id, volume, issue, pages, publisher, language,
			extra_json
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19
		)
	`

	revisionID := uuid.MustParse(uuidv7.New())
	_, err = tx.Exec(ctx, query,
		revisionID,
		workID,
		containerID,
		release.Title,
		release.ReleaseType,
		release.ReleaseStatus,
		release.ReleaseDate,
		release.DOI,
		release.WikidataQID,
		release.ISBN13,
		release.PMID,
		release.PMCID,
		release.CoreID,
		release.Volume,
		release.Issue,
		release.Pages,
		release.Publisher,
		release.Language,
		release.Extra,
	)
	if err != nil {
		return uuid.Nil, dberr.Wrap(err, "insert_release_rev")
	}

	if err := store.insertContribs(ctx, tx, revisionID, release.Contribs); err != nil {
		return uuid.Nil, err
	}
	if err := store.insertRefs(ctx, tx, revisionID, release.Refs); err != nil {
		return uuid.Nil, err
	}
	if err := store.insertAbstracts(ctx, tx, revisionID, release.Abstracts); err != nil {
		return uuid.Nil, err
	}

	return revisionID, nil
}

func (store *releaseRevStore) insertContribs(ctx context.Context, tx pgx.Tx, revisionID uuid.UUID, contribs []Contrib) error {
	for _, contrib := range contribs {
		var creatorID *uuid.UUID
		if contrib.CreatorID != nil {
			id, err := fcidToUUID(*contrib.CreatorID)
			if err != nil {
				return err
			}
			creatorID = &id
		}

		query := `
			INSERT INTO catalog.release_contrib (
				release_rev, creator_ident_id, raw_name, role, index_val, extra_json
			) VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err := tx.Exec(ctx, query,
			revisionID, creatorID, contrib.RawName, contrib.Role, contrib.Index, contrib.Extra,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_release_contrib")
		}
	}
	return nil
}

func (store *releaseRevStore) insertRefs(ctx context.Context, tx pgx.Tx, revisionID uuid.UUID, refs []Ref) error {
	for _, ref := range refs {
		var targetID *uuid.UUID
		if ref.TargetReleaseID != nil {
			id, err := fcidToUUID(*ref.TargetReleaseID)
			if err != nil {
				return err
			}
			targetID = &id
		}

		query := `
			INSERT INTO catalog.release_ref (
				release_rev, target_release_ident_id, index_val, key,
				year, container_name, title, locator, extra_json
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := tx.Exec(ctx, query,
			revisionID, targetID, ref.Index, ref.Key, ref.Year,
			ref.ContainerName, ref.Title, ref.Locator, ref.Extra,
		)
		if err != nil {
			return dberr.Wrap(err, "insert_release_ref")
		}
	}
	return nil
}

func (store *releaseRevStore) insertAbstracts(ctx context.Context, tx pgx.Tx, revisionID uuid.UUID, abstracts []Abstract) error {
	for _, abstract := range abstracts {
		hash := abstract.SHA1
		if hash == "" {
			sum := sha1.Sum([]byte(abstract.Content))
			hash = hex.EncodeToString(sum[:])
		}

		// Shared content row; concurrent revisions of the same abstract
		// collide on the hash, which is fine.
		content := `
			INSERT INTO catalog.abstracts (sha1, content)
			VALUES ($1, $2)
			ON CONFLICT (sha1) DO NOTHING
		`
		if _, err := tx.Exec(ctx, content, hash, abstract.Content); err != nil {
			return dberr.Wrap(err, "insert_abstract")
		}

		link := `
			INSERT INTO catalog.release_rev_abstract (release_rev, abstract_sha1, mimetype, lang)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.Exec(ctx, link, revisionID, hash, abstract.Mimetype, abstract.Lang); err != nil {
			return dberr.Wrap(err, "insert_release_rev_abstract")
		}
	}
	return nil
}

func (store *releaseRevStore) loadRev(ctx context.Context, db dbtx, revision uuid.UUID, entity Entity, hide HideFlags) error {
	release := entity.(*Release)

	query := `
		SELECT work_ident_id, container_ident_id, title, release_type,
		       release_status, release_date::text, doi, wikidata_qid, isbn13,
		       pmid, pmcid, core_id, volume, issue, pages, publisher,
		       language, extra_json
		FROM catalog.release_rev
		WHERE id = $1
	`

	var workID uuid.UUID
	var containerID *uuid.UUID
	err := db.QueryRow(ctx, query, revision).Scan(
		&workID,
		&containerID,
		&release.Title,
		&release.ReleaseType,
		&release.ReleaseStatus,
		&release.ReleaseDate,
		&release.DOI,
		&release.WikidataQID,
		&release.ISBN13,
		&release.PMID,
		&release.PMCID,
		&release.CoreID,
		&release.Volume,
		&release.Issue,
		&release.Pages,
		&release.Publisher,
		&release.Language,
		&release.Extra,
	)
	if err != nil {
		return dberr.Wrap(err, "load_release_rev")
	}
	release.WorkID = fcid.FromUUID(workID)
	release.ContainerID = fcidStringPtr(containerID)

	if !hide.Contribs {
		if err := store.loadContribs(ctx, db, revision, release); err != nil {
			return err
		}
	}
	if !hide.Refs {
		if err := store.loadRefs(ctx, db, revision, release); err != nil {
			return err
		}
	}
	if !hide.Abstracts {
		if err := store.loadAbstracts(ctx, db, revision, release); err != nil {
			return err
		}
	}
	return nil
}

func (store *releaseRevStore) loadContribs(ctx context.Context, db dbtx, revision uuid.UUID, release *Release) error {
	query := `
		SELECT creator_ident_id, raw_name, role, index_val, extra_json
		FROM catalog.release_contrib
		WHERE release_rev = $1
		ORDER BY index_val NULLS LAST, id
	`
	rows, err := db.Query(ctx, query, revision)
	if err != nil {
		return dberr.Wrap(err, "load_release_contribs")
	}
	defer rows.Close()

	for rows.Next() {
		var contrib Contrib
		var creatorID *uuid.UUID
		if err := rows.Scan(&creatorID, &contrib.RawName, &contrib.Role, &contrib.Index, &contrib.Extra); err != nil {
			return dberr.Wrap(err, "scan_release_contrib")
		}
		contrib.CreatorID = fcidStringPtr(creatorID)
		release.Contribs = append(release.Contribs, contrib)
	}
	return rows.Err()
}

func (store *releaseRevStore) loadRefs(ctx context.Context, db dbtx, revision uuid.UUID, release *Release) error {
	query := `
		SELECT target_release_ident_id, index_val, key, year, container_name, title, locator, extra_json
		FROM catalog.release_ref
		WHERE release_rev = $1
		ORDER BY index_val NULLS LAST, id
	`
	rows, err := db.Query(ctx, query, revision)
	if err != nil {
		return dberr.Wrap(err, "load_release_refs")
	}
	defer rows.Close()

	for rows.Next() {
		var ref Ref
		var targetID *uuid.UUID
		err := rows.Scan(&targetID, &ref.Index, &ref.Key, &ref.Year,
			&ref.ContainerName, &ref.Title, &ref.Locator, &ref.Extra)
		if err != nil {
			return dberr.Wrap(err, "scan_release_ref")
		}
		ref.TargetReleaseID = fcidStringPtr(targetID)
		release.Refs = append(release.Refs, ref)
	}
	return rows.Err()
}

func (store *releaseRevStore) loadAbstracts(ctx context.Context, db dbtx, revision uuid.UUID, release *Release) error {
	query := `
		SELECT link.abstract_sha1, link.mimetype, link.lang, abstract.content
		FROM catalog.release_rev_abstract AS link
		JOIN catalog.abstracts AS abstract ON abstract.sha1 = link.abstract_sha1
		WHERE link.release_rev = $1
		ORDER BY link.id
	`
	rows, err := db.Query(ctx, query, revision)
	if err != nil {
		return dberr.Wrap(err, "load_release_abstracts")
	}
	defer rows.Close()

	for rows.Next() {
		var abstract Abstract
		if err := rows.Scan(&abstract.SHA1, &abstract.Mimetype, &abstract.Lang, &abstract.Content); err != nil {
			return dberr.Wrap(err, "scan_release_abstract")
		}
		release.Abstracts = append(release.Abstracts, abstract)
	}
	return rows.Err()
}
