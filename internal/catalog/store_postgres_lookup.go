// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mm--/fatcat/internal/platform/apperr"
	"github.com/mm--/fatcat/internal/platform/dberr"
)

// # External Identifier Lookups

// lookupColumns whitelists, per kind, the revision columns an external
// identifier lookup may match against. Column names are interpolated into
// SQL, so they must come from this table and nowhere else.
var lookupColumns = map[Kind]map[string]bool{
	KindContainer: {
		"issnl":        true,
		"wikidata_qid": true,
	},
	KindCreator: {
		"orcid":        true,
		"wikidata_qid": true,
	},
	KindFile: {
		"md5":    true,
		"sha1":   true,
		"sha256": true,
	},
	KindRelease: {
		"doi":          true,
		"wikidata_qid": true,
		"isbn13":       true,
		"pmid":         true,
		"pmcid":        true,
		"core_id":      true,
	},
}

// LookupEntity resolves an external identifier to the first live,
// non-redirect ident whose current revision matches, and returns that
// entity. External identifiers are indexed but not unique, so "first"
// means lowest ident id.
func (repository *PostgresRepository) LookupEntity(ctx context.Context, kind Kind, column, value string, expand ExpandFlags, hide HideFlags) (Entity, error) {
	columns, ok := lookupColumns[kind]
	if !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("%s entities have no external identifier lookup", kind))
	}
	if !columns[column] {
		return nil, apperr.BadRequest(fmt.Sprintf("unknown %s lookup identifier: %q", kind, column))
	}

	if !expand.Any() {
		return repository.lookupEntity(ctx, repository.pool, kind, column, value, hide)
	}

	tx, err := repository.beginSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	entity, err := repository.lookupEntity(ctx, tx, kind, column, value, hide)
	if err != nil {
		return nil, err
	}
	if err := repository.expandEntity(ctx, tx, entity, expand, hide); err != nil {
		return nil, err
	}

	return entity, tx.Commit(ctx)
}

func (repository *PostgresRepository) lookupEntity(ctx context.Context, db dbtx, kind Kind, column, value string, hide HideFlags) (Entity, error) {
	query := fmt.Sprintf(`
		SELECT ident.id
		FROM catalog.%s_ident AS ident
		JOIN catalog.%s_rev AS rev ON rev.id = ident.rev_id
		WHERE rev.%s = $1 AND ident.is_live AND ident.redirect_id IS NULL
		ORDER BY ident.id
		LIMIT 1
	`, kind, kind, column)

	var identID uuid.UUID
	if err := db.QueryRow(ctx, query, value).Scan(&identID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.NotFound(kind.String())
		}
		return nil, dberr.Wrap(err, "lookup_entity")
	}

	return repository.getEntity(ctx, db, kind, identID, hide)
}
