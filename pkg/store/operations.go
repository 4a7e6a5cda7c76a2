package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/citefmt/models"
)

// LibraryRow is one row of the libraries listing.
type LibraryRow struct {
	ID       int64
	Name     string
	Title    string
	RefCount int
}

// RefRow is one search hit from FindRefs.
type RefRow struct {
	CiteKey     string
	Type        string
	Title       string
	FirstFamily string
	Issued      string
}

// ImportLibrary inserts or replaces a named library and all its entries,
// returning the library_id. Each entry is stored as YAML; a few columns
// are extracted for querying.
func (st *Store) ImportLibrary(name string, lib *models.Library) (int64, error) {
	title := ""
	if lib.Info != nil {
		title = lib.Info.Title
	}

	tx, err := st.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var libID int64
	err = tx.QueryRow("SELECT library_id FROM libraries WHERE name = ?", name).Scan(&libID)
	switch {
	case err == nil:
		// Re-import replaces the existing entries.
		if _, err := tx.Exec(`
			UPDATE libraries SET title = ?, updated_at = CURRENT_TIMESTAMP
			WHERE library_id = ?
		`, title, libID); err != nil {
			return 0, fmt.Errorf("failed to update library: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM refs WHERE library_id = ?", libID); err != nil {
			return 0, fmt.Errorf("failed to clear library: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		result, err := tx.Exec("INSERT INTO libraries (name, title) VALUES (?, ?)", name, title)
		if err != nil {
			return 0, fmt.Errorf("failed to insert library: %w", err)
		}
		libID, err = result.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("failed to get library ID: %w", err)
		}
	default:
		return 0, fmt.Errorf("failed to check existing library: %w", err)
	}

	for i := range lib.References {
		ref := &lib.References[i]
		if ref.ID == "" {
			continue
		}
		body, err := yaml.Marshal(ref)
		if err != nil {
			return 0, fmt.Errorf("failed to encode reference %q: %w", ref.ID, err)
		}
		refTitle := ""
		if ref.Title != nil {
			refTitle = ref.Title.Full(": ")
		}
		if _, err := tx.Exec(`
			INSERT INTO refs (library_id, cite_key, ref_type, title, first_family, issued, doi, url, body)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, libID, ref.ID, string(ref.Type), refTitle, firstFamily(ref),
			ref.Issued.String(), ref.DOI, ref.URL, string(body)); err != nil {
			return 0, fmt.Errorf("failed to insert reference %q: %w", ref.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return libID, nil
}

// LoadLibrary reads a named library back out of the store.
func (st *Store) LoadLibrary(name string) (*models.Library, error) {
	var libID int64
	var title string
	err := st.QueryRow("SELECT library_id, COALESCE(title, '') FROM libraries WHERE name = ?", name).
		Scan(&libID, &title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("library %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up library: %w", err)
	}

	rows, err := st.Query("SELECT body FROM refs WHERE library_id = ? ORDER BY ref_id", libID)
	if err != nil {
		return nil, fmt.Errorf("failed to read references: %w", err)
	}
	defer rows.Close()

	lib := &models.Library{}
	if title != "" {
		lib.Info = &models.LibraryInfo{Title: title}
	}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan reference: %w", err)
		}
		var ref models.Reference
		if err := yaml.Unmarshal([]byte(body), &ref); err != nil {
			return nil, fmt.Errorf("failed to decode stored reference: %w", err)
		}
		lib.References = append(lib.References, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate references: %w", err)
	}
	lib.Resolve()
	return lib, nil
}

// ListLibraries returns all stored libraries with their entry counts.
func (st *Store) ListLibraries() ([]LibraryRow, error) {
	rows, err := st.Query(`
		SELECT l.library_id, l.name, COALESCE(l.title, ''), COUNT(r.ref_id)
		FROM libraries l
		LEFT JOIN refs r ON r.library_id = l.library_id
		GROUP BY l.library_id
		ORDER BY l.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list libraries: %w", err)
	}
	defer rows.Close()

	var out []LibraryRow
	for rows.Next() {
		var row LibraryRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Title, &row.RefCount); err != nil {
			return nil, fmt.Errorf("failed to scan library row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// FindRefs searches a library's entries by cite key, title, or first
// author family name.
func (st *Store) FindRefs(name, query string) ([]RefRow, error) {
	pattern := "%" + query + "%"
	rows, err := st.Query(`
		SELECT r.cite_key, r.ref_type, COALESCE(r.title, ''),
		       COALESCE(r.first_family, ''), COALESCE(r.issued, '')
		FROM refs r
		JOIN libraries l ON l.library_id = r.library_id
		WHERE l.name = ?
		  AND (r.cite_key LIKE ? OR r.title LIKE ? OR r.first_family LIKE ?)
		ORDER BY r.cite_key
	`, name, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search references: %w", err)
	}
	defer rows.Close()

	var out []RefRow
	for rows.Next() {
		var row RefRow
		if err := rows.Scan(&row.CiteKey, &row.Type, &row.Title, &row.FirstFamily, &row.Issued); err != nil {
			return nil, fmt.Errorf("failed to scan reference row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// DeleteLibrary removes a library and, via the cascade, its entries.
func (st *Store) DeleteLibrary(name string) error {
	result, err := st.Exec("DELETE FROM libraries WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete library: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("library %q not found", name)
	}
	return nil
}

// firstFamily extracts the lead contributor's family (or literal) name,
// falling back through editor and translator like the renderer does.
func firstFamily(ref *models.Reference) string {
	for _, list := range []models.ContributorList{ref.Author, ref.Editor, ref.Translator} {
		if len(list) == 0 {
			continue
		}
		c := &list[0]
		if !c.Family.IsZero() {
			return c.Family.Value
		}
		if !c.Name.IsZero() {
			return strings.TrimSpace(c.Name.Value)
		}
	}
	return ""
}
