// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mm--/fatcat/internal/platform/dberr"
	"github.com/mm--/fatcat/pkg/fcid"
	"github.com/mm--/fatcat/pkg/uuidv7"
)

// fileRevStore persists file revisions: the hash row plus url and release
// association tables.
type fileRevStore struct{}

func (store *fileRevStore) kind() Kind { return KindFile }

func (store *fileRevStore) insertRev(ctx context.Context, tx pgx.Tx, entity Entity) (uuid.UUID, error) {
	file := entity.(*File)

	query := `
		INSERT INTO catalog.file_rev (
			id, size_bytes, md5, sha1, sha256, mimetype, extra_json
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	revisionID := uuid.MustParse(uuidv7.New())
	_, err := tx.Exec(ctx, query,
		revisionID,
		file.Size,
		file.MD5,
		file.SHA1,
		file.SHA256,
		file.Mimetype,
		file.Extra,
	)
	if err != nil {
		return uuid.Nil, dberr.Wrap(err, "insert_file_rev")
	}

	for _, url := range file.URLs {
		insert := `INSERT INTO catalog.file_rev_url (file_rev, rel, url) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insert, revisionID, url.Rel, url.URL); err != nil {
			return uuid.Nil, dberr.Wrap(err, "insert_file_rev_url")
		}
	}

	releaseIDs, err := identsToUUIDs(file.ReleaseIDs)
	if err != nil {
		return uuid.Nil, err
	}
	for _, releaseID := range releaseIDs {
		insert := `INSERT INTO catalog.file_rev_release (file_rev, target_release_ident_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insert, revisionID, releaseID); err != nil {
			return uuid.Nil, dberr.Wrap(err, "insert_file_rev_release")
		}
	}

	return revisionID, nil
}

func (store *fileRevStore) loadRev(ctx context.Context, db dbtx, revision uuid.UUID, entity Entity, hide HideFlags) error {
	file := entity.(*File)

	query := `
		SELECT size_bytes, md5, sha1, sha256, mimetype, extra_json
		FROM catalog.file_rev
		WHERE id = $1
	`

	err := db.QueryRow(ctx, query, revision).Scan(
		&file.Size,
		&file.MD5,
		&file.SHA1,
		&file.SHA256,
		&file.Mimetype,
		&file.Extra,
	)
	if err != nil {
		return dberr.Wrap(err, "load_file_rev")
	}

	urls := `SELECT rel, url FROM catalog.file_rev_url WHERE file_rev = $1 ORDER BY id`
	rows, err := db.Query(ctx, urls, revision)
	if err != nil {
		return dberr.Wrap(err, "load_file_rev_urls")
	}
	defer rows.Close()
	for rows.Next() {
		var url FileURL
		if err := rows.Scan(&url.Rel, &url.URL); err != nil {
			return dberr.Wrap(err, "scan_file_rev_url")
		}
		file.URLs = append(file.URLs, url)
	}
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "load_file_rev_urls")
	}

	releaseIDs, err := loadRevReleases(ctx, db, "catalog.file_rev_release", "file_rev", revision)
	if err != nil {
		return err
	}
	file.ReleaseIDs = releaseIDs

	return nil
}

// filesetRevStore persists fileset revisions: a meta row plus manifest,
// url and release association tables.
type filesetRevStore struct{}

func (store *filesetRevStore) kind() Kind { return KindFileset }

func (store *filesetRevStore) insertRev(ctx context.Context, tx pgx.Tx, entity Entity) (uuid.UUID, error) {
	fileset := entity.(*Fileset)

	query := `INSERT INTO catalog.fileset_rev (id, extra_json) VALUES ($1, $2)`

	revisionID := uuid.MustParse(uuidv7.New())
	if _, err := tx.Exec(ctx, query, revisionID, fileset.Extra); err != nil {
		return uuid.Nil, dberr.Wrap(err, "insert_fileset_rev")
	}

	for _, member := range fileset.Manifest {
		insert := `
			INSERT INTO catalog.fileset_rev_file (
				fileset_rev, path_name, size_bytes, md5, sha1, sha256, extra_json
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.Exec(ctx, insert,
			revisionID, member.PathName, member.SizeBytes, member.MD5, member.SHA1, member.SHA256, member.Extra,
		)
		if err != nil {
			return uuid.Nil, dberr.Wrap(err, "insert_fileset_rev_file")
		}
	}

	for _, url := range fileset.URLs {
		insert := `INSERT INTO catalog.fileset_rev_url (fileset_rev, rel, url) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insert, revisionID, url.Rel, url.URL); err != nil {
			return uuid.Nil, dberr.Wrap(err, "insert_fileset_rev_url")
		}
	}

	releaseIDs, err := identsToUUIDs(fileset.ReleaseIDs)
	if err != nil {
		return uuid.Nil, err
	}
	for _, releaseID := range releaseIDs {
		insert := `INSERT INTO catalog.fileset_rev_release (fileset_rev, target_release_ident_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insert, revisionID, releaseID); err != nil {
			return uuid.Nil, dberr.Wrap(err, "insert_fileset_rev_release")
		}
	}

	return revisionID, nil
}

func (store *filesetRevStore) loadRev(ctx context.Context, db dbtx, revision uuid.UUID, entity Entity, hide HideFlags) error {
	fileset := entity.(*Fileset)

	query := `SELECT extra_json FROM catalog.fileset_rev WHERE id = $1`
	if err := db.QueryRow(ctx, query, revision).Scan(&fileset.Extra); err != nil {
		return dberr.Wrap(err, "load_fileset_rev")
	}

	// A hidden manifest is never queried, not just dropped from the JSON.
	if !hide.Manifest {
		manifest := `
			SELECT path_name, size_bytes, md5, sha1, sha256, extra_json
			FROM catalog.fileset_rev_file
			WHERE fileset_rev = $1
			ORDER BY id
		`
		rows, err := db.Query(ctx, manifest, revision)
		if err != nil {
			return dberr.Wrap(err, "load_fileset_rev_files")
		}
		defer rows.Close()
		for rows.Next() {
			var member FilesetFile
			if err := rows.Scan(&member.PathName, &member.SizeBytes, &member.MD5, &member.SHA1, &member.SHA256, &member.Extra); err != nil {
				return dberr.Wrap(err, "scan_fileset_rev_file")
			}
			fileset.Manifest = append(fileset.Manifest, member)
		}
		if err := rows.Err(); err != nil {
			return dberr.Wrap(err, "load_fileset_rev_files")
		}
	}

	urls := `SELECT rel, url FROM catalog.fileset_rev_url WHERE fileset_rev = $1 ORDER BY id`
	rows, err := db.Query(ctx, urls, revision)
	if err != nil {
		return dberr.Wrap(err, "load_fileset_rev_urls")
	}
	defer rows.Close()
	for rows.Next() {
		var url FilesetURL
		if err := rows.Scan(&url.Rel, &url.URL); err != nil {
			return dberr.Wrap(err, "scan_fileset_rev_url")
		}
		fileset.URLs = append(fileset.URLs, url)
	}
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "load_fileset_rev_urls")
	}

	releaseIDs, err := loadRevReleases(ctx, db, "catalog.fileset_rev_release", "fileset_rev", revision)
	if err != nil {
		return err
	}
	fileset.ReleaseIDs = releaseIDs

	return nil
}

// webcaptureRevStore persists webcapture revisions: the capture row plus
// cdx, url and release association tables.
type webcaptureRevStore struct{}

func (store *webcaptureRevStore) kind() Kind { return KindWebcapture }

func (store *webcaptureRevStore) insertRev(ctx context.Context, tx pgx.Tx, entity Entity) (uuid.UUID, error) {
	capture := entity.(*Webcapture)

	query := `
		INSERT INTO catalog.webcapture_rev (id, original_url, timestamp, extra_json)
		VALUES ($1, $2, $3, $4)
	`

	revisionID := uuid.MustParse(uuidv7.New())
	_, err := tx.Exec(ctx, query, revisionID, capture.OriginalURL, capture.Timestamp, capture.Extra)
	if err != nil {
		return uuid.Nil, dberr.Wrap(err, "insert_webcapture_rev")
	}

	for _, line := range capture.CDX {
		insert := `
			INSERT INTO catalog.webcapture_rev_cdx (
				webcapture_rev, surt, timestamp, url, mimetype, status_code, size_bytes, sha1, sha256
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := tx.Exec(ctx, insert,
			revisionID, line.Surt, line.Timestamp, line.URL, line.Mimetype,
			line.StatusCode, line.SizeBytes, line.SHA1, line.SHA256,
		)
		if err != nil {
			return uuid.Nil, dberr.Wrap(err, "insert_webcapture_rev_cdx")
		}
	}

	for _, url := range capture.URLs {
		insert := `INSERT INTO catalog.webcapture_rev_url (webcapture_rev, rel, url) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insert, revisionID, url.Rel, url.URL); err != nil {
			return uuid.Nil, dberr.Wrap(err, "insert_webcapture_rev_url")
		}
	}

	releaseIDs, err := identsToUUIDs(capture.ReleaseIDs)
	if err != nil {
		return uuid.Nil, err
	}
	for _, releaseID := range releaseIDs {
		insert := `INSERT INTO catalog.webcapture_rev_release (webcapture_rev, target_release_ident_id) VALUES ($1, $2)`
		if _, err := tx.Exec(ctx, insert, revisionID, releaseID); err != nil {
			return uuid.Nil, dberr.Wrap(err, "insert_webcapture_rev_release")
		}
	}

	return revisionID, nil
}

func (store *webcaptureRevStore) loadRev(ctx context.Context, db dbtx, revision uuid.UUID, entity Entity, hide HideFlags) error {
	capture := entity.(*Webcapture)

	query := `
		SELECT original_url, timestamp, extra_json
		FROM catalog.webcapture_rev
		WHERE id = $1
	`
	err := db.QueryRow(ctx, query, revision).Scan(&capture.OriginalURL, &capture.Timestamp, &capture.Extra)
	if err != nil {
		return dberr.Wrap(err, "load_webcapture_rev")
	}

	// Hidden CDX lines are never queried.
	if !hide.CDX {
		cdx := `
			SELECT surt, timestamp, url, mimetype, status_code, size_bytes, sha1, sha256
			FROM catalog.webcapture_rev_cdx
			WHERE webcapture_rev = $1
			ORDER BY id
		`
		rows, err := db.Query(ctx, cdx, revision)
		if err != nil {
			return dberr.Wrap(err, "load_webcapture_rev_cdx")
		}
		defer rows.Close()
		for rows.Next() {
			var line WebcaptureCDX
			err := rows.Scan(&line.Surt, &line.Timestamp, &line.URL, &line.Mimetype,
				&line.StatusCode, &line.SizeBytes, &line.SHA1, &line.SHA256)
			if err != nil {
				return dberr.Wrap(err, "scan_webcapture_rev_cdx")
			}
			capture.CDX = append(capture.CDX, line)
		}
		if err := rows.Err(); err != nil {
			return dberr.Wrap(err, "load_webcapture_rev_cdx")
		}
	}

	urls := `SELECT rel, url FROM catalog.webcapture_rev_url WHERE webcapture_rev = $1 ORDER BY id`
	rows, err := db.Query(ctx, urls, revision)
	if err != nil {
		return dberr.Wrap(err, "load_webcapture_rev_urls")
	}
	defer rows.Close()
	for rows.Next() {
		var url WebcaptureURL
		if err := rows.Scan(&url.Rel, &url.URL); err != nil {
			return dberr.Wrap(err, "scan_webcapture_rev_url")
		}
		capture.URLs = append(capture.URLs, url)
	}
	if err := rows.Err(); err != nil {
		return dberr.Wrap(err, "load_webcapture_rev_urls")
	}

	releaseIDs, err := loadRevReleases(ctx, db, "catalog.webcapture_rev_release", "webcapture_rev", revision)
	if err != nil {
		return err
	}
	capture.ReleaseIDs = releaseIDs

	return nil
}

// loadRevReleases reads the release idents referenced by one revision of a
// file, fileset or webcapture.
func loadRevReleases(ctx context.Context, db dbtx, table, revColumn string, revision uuid.UUID) ([]string, error) {
	query := `SELECT target_release_ident_id FROM ` + table + ` WHERE ` + revColumn + ` = $1 ORDER BY id`

	rows, err := db.Query(ctx, query, revision)
	if err != nil {
		return nil, dberr.Wrap(err, "load_rev_releases")
	}
	defer rows.Close()

	var releaseIDs []string
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_rev_release")
		}
		releaseIDs = append(releaseIDs, fcid.FromUUID(id))
	}
	return releaseIDs, rows.Err()
}
