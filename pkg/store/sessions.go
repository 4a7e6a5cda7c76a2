package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/citefmt/pkg/values"
)

// SessionRow is one row of the render session listing.
type SessionRow struct {
	ID            string
	CreatedAt     time.Time
	StyleTitle    string
	LibraryName   string
	EntryCount    int
	CitationCount int
	WarningCount  int
}

// RecordSession stores the outcome of one render call: counts plus every
// warning the processor collected.
func (st *Store) RecordSession(sessionID, styleTitle, libraryName string, entryCount, citationCount int, warnings []values.Warning) error {
	tx, err := st.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin session record: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO render_sessions (session_id, style_title, library_name, entry_count, citation_count, warning_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, styleTitle, libraryName, entryCount, citationCount, len(warnings)); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	for _, w := range warnings {
		if _, err := tx.Exec(`
			INSERT INTO session_warnings (session_id, kind, detail)
			VALUES (?, ?, ?)
		`, sessionID, string(w.Kind), w.Detail); err != nil {
			return fmt.Errorf("failed to insert warning: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session record: %w", err)
	}
	return nil
}

// ListSessions returns the most recent render sessions, newest first.
func (st *Store) ListSessions(limit int) ([]SessionRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := st.Query(`
		SELECT session_id, created_at, COALESCE(style_title, ''), COALESCE(library_name, ''),
		       entry_count, citation_count, warning_count
		FROM render_sessions
		ORDER BY created_at DESC, session_id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRow
	for rows.Next() {
		var row SessionRow
		if err := rows.Scan(&row.ID, &row.CreatedAt, &row.StyleTitle, &row.LibraryName,
			&row.EntryCount, &row.CitationCount, &row.WarningCount); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SessionWarnings returns the warnings recorded for one session.
func (st *Store) SessionWarnings(sessionID string) ([]values.Warning, error) {
	var exists string
	err := st.QueryRow("SELECT session_id FROM render_sessions WHERE session_id = ?", sessionID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %q not found", sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	rows, err := st.Query(`
		SELECT kind, detail FROM session_warnings
		WHERE session_id = ?
		ORDER BY warning_id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read warnings: %w", err)
	}
	defer rows.Close()

	var out []values.Warning
	for rows.Next() {
		var kind, detail string
		if err := rows.Scan(&kind, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		out = append(out, values.Warning{Kind: values.WarnKind(kind), Detail: detail})
	}
	return out, rows.Err()
}
