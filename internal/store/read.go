// read.go implements version retrieval and listing.
package store

import (
	"context"
	"fmt"
)

const versionColumns = `id, document_id, version_number, content, created_at,
	user_id, session_id, type, previous_id, change_description,
	suggestion_type, model, prompt, status, diff_json`

// Version retrieves a version by id.
func (s *SQLiteStore) Version(ctx context.Context, id string) (*Version, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+versionColumns+` FROM versions WHERE id = ?`, id)
	return s.scanOne(row)
}

// LatestVersion returns the highest-numbered version of a document,
// optionally restricted to one type.
func (s *SQLiteStore) LatestVersion(ctx context.Context, documentID string, t Type) (*Version, error) {
	query := `SELECT ` + versionColumns + ` FROM versions WHERE document_id = ?`
	args := []any{documentID}
	if t != "" {
		query += ` AND type = ?`
		args = append(args, t)
	}
	query += ` ORDER BY version_number DESC LIMIT 1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, args...))
}

// ListVersions returns a page of a document's versions newest-first plus the
// total matching count. limit 0 means no limit.
func (s *SQLiteStore) ListVersions(ctx context.Context, documentID string, t Type, limit, skip int) ([]Version, int, error) {
	where := ` FROM versions WHERE document_id = ?`
	args := []any{documentID}
	if t != "" {
		where += ` AND type = ?`
		args = append(args, t)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count versions %s: %w", documentID, err)
	}

	query := `SELECT ` + versionColumns + where + ` ORDER BY version_number DESC`
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, skip)
	} else if skip > 0 {
		query += ` LIMIT -1 OFFSET ?`
		args = append(args, skip)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list versions %s: %w", documentID, err)
	}
	defer rows.Close()

	versions, err := s.scanAll(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list versions %s: %w", documentID, err)
	}
	return versions, total, nil
}
