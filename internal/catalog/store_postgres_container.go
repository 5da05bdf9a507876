// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mm--/fatcat/internal/platform/dberr"
	"github.com/mm--/fatcat/pkg/uuidv7"
)

// containerRevStore persists container revisions: a single flat row, no
// association tables.
type containerRevStore struct{}

func (store *containerRevStore) kind() Kind { return KindContainer }

func (store *containerRevStore) insertRev(ctx context.Context, tx pgx.Tx, entity Entity) (uuid.UUID, error) {
	container := entity.(*Container)

	query := `
		INSERT INTO catalog.container_rev (
			id, name, container_type, publisher, issnl, wikidata_qid, abbrev, coden, extra_json
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	revisionID := uuid.MustParse(uuidv7.New())
	_, err := tx.Exec(ctx, query,
		revisionID,
		container.Name,
		container.ContainerType,
		container.Publisher,
		container.ISSNL,
		container.WikidataQID,
		container.Abbrev,
		container.Coden,
		container.Extra,
	)
	if err != nil {
		return uuid.Nil, dberr.Wrap(err, "insert_container_rev")
	}
	return revisionID, nil
}

func (store *containerRevStore) loadRev(ctx context.Context, db dbtx, revision uuid.UUID, entity Entity, hide HideFlags) error {
	container := entity.(*Container)

	query := `
		SELECT name, container_type, publisher, issnl, wikidata_qid, abbrev, coden, extra_json
		FROM catalog.container_rev
		WHERE id = $1
	`

	err := db.QueryRow(ctx, query, revision).Scan(
		&container.Name,
		&container.ContainerType,
		&container.Publisher,
		&container.ISSNL,
		&container.WikidataQID,
		&container.Abbrev,
		&container.Coden,
		&container.Extra,
	)
	if err != nil {
		return dberr.Wrap(err, "load_container_rev")
	}
	return nil
}

// creatorRevStore persists creator revisions: a single flat row.
type creatorRevStore struct{}

func (store *creatorRevStore) kind() Kind { return KindCreator }

func (store *creatorRevStore) insertRev(ctx context.Context, tx pgx.Tx, entity Entity) (uuid.UUID, error) {
	creator := entity.(*Creator)

	query := `
		INSERT INTO catalog.creator_rev (
			id, display_name, given_name, surname, orcid, wikidata_qid, extra_json
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	revisionID := uuid.MustParse(uuidv7.New())
	_, err := tx.Exec(ctx, query,
		revisionID,
		creator.DisplayName,
		creator.GivenName,
		creator.Surname,
		creator.ORCID,
		creator.WikidataQID,
		creator.Extra,
	)
	if err != nil {
		return uuid.Nil, dberr.Wrap(err, "insert_creator_rev")
	}
	return revisionID, nil
}

func (store *creatorRevStore) loadRev(ctx context.Context, db dbtx, revision uuid.UUID, entity Entity, hide HideFlags) error {
	creator := entity.(*Creator)

	query := `
		SELECT display_name, given_name, surname, orcid, wikidata_qid, extra_json
		FROM catalog.creator_rev
		WHERE id = $1
	`

	err := db.QueryRow(ctx, query, revision).Scan(
		&creator.DisplayName,
		&creator.GivenName,
		&creator.Surname,
		&creator.ORCID,
		&creator.WikidataQID,
		&creator.Extra,
	)
	if err != nil {
		return dberr.Wrap(err, "load_creator_rev")
	}
	return nil
}

// workRevStore persists work revisions. Works carry only extra metadata;
// the row exists so revisions and history work uniformly across kinds.
type workRevStore struct{}

func (store *workRevStore) kind() Kind { return KindWork }

func (store *workRevStore) insertRev(ctx context.Context, tx pgx.Tx, entity Entity) (uuid.UUID, error) {
	work := entity.(*Work)

	query := `INSERT INTO catalog.work_rev (id, extra_json) VALUES ($1, $2)`

	revisionID := uuid.MustParse(uuidv7.New())
	if _, err := tx.Exec(ctx, query, revisionID, work.Extra); err != nil {
		return uuid.Nil, dberr.Wrap(err, "insert_work_rev")
	}
	return revisionID, nil
}

func (store *workRevStore) loadRev(ctx context.Context, db dbtx, revision uuid.UUID, entity Entity, hide HideFlags) error {
	work := entity.(*Work)

	query := `SELECT extra_json FROM catalog.work_rev WHERE id = $1`

	if err := db.QueryRow(ctx, query, revision).Scan(&work.Extra); err != nil {
		return dberr.Wrap(err, "load_work_rev")
	}
	return nil
}
