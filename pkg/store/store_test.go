package store

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/values"
)

// setupTestStore creates an in-memory SQLite database for testing
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	// Use in-memory database for tests
	st := &Store{path: ":memory:"}
	var err error
	st.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := st.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return st
}

func testLibrary(t *testing.T) *models.Library {
	t.Helper()
	src := `
info:
  title: Test Library
references:
  - id: kuhn1962
    type: book
    author:
      - family: Kuhn
        given: Thomas S.
    title: The Structure of Scientific Revolutions
    issued: "1962"
    publisher: University of Chicago Press
  - id: merton1968
    type: article-journal
    author:
      - family: Merton
        given: Robert K.
    title: The Matthew Effect in Science
    issued: "1968"
    volume: 159
    pages: 56-63
    doi: 10.1126/science.159.3810.56
  - id: unesco2001
    type: report
    author:
      - literal: UNESCO
    title: Universal Declaration on Cultural Diversity
    issued: "2001"
`
	var lib models.Library
	if err := yaml.Unmarshal([]byte(src), &lib); err != nil {
		t.Fatalf("failed to parse test library: %v", err)
	}
	lib.Resolve()
	return &lib
}

func TestImportAndLoadLibrary(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	lib := testLibrary(t)
	if _, err := st.ImportLibrary("main", lib); err != nil {
		t.Fatalf("ImportLibrary: %v", err)
	}

	got, err := st.LoadLibrary("main")
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if len(got.References) != 3 {
		t.Fatalf("got %d references, want 3", len(got.References))
	}
	if got.Info == nil || got.Info.Title != "Test Library" {
		t.Errorf("library title not preserved: %+v", got.Info)
	}

	refs := got.RefMap()
	kuhn, ok := refs["kuhn1962"]
	if !ok {
		t.Fatal("kuhn1962 missing after round trip")
	}
	if kuhn.Type != models.TypeBook {
		t.Errorf("kuhn1962 type = %q, want book", kuhn.Type)
	}
	if len(kuhn.Author) != 1 || kuhn.Author[0].Family.Value != "Kuhn" {
		t.Errorf("kuhn1962 author not preserved: %+v", kuhn.Author)
	}
	if kuhn.Author[0].Given.Value != "Thomas S." {
		t.Errorf("kuhn1962 given = %q", kuhn.Author[0].Given.Value)
	}

	merton := refs["merton1968"]
	if merton.Pages.String() != "56-63" {
		t.Errorf("merton1968 pages = %q, want 56-63", merton.Pages.String())
	}
	if merton.DOI != "10.1126/science.159.3810.56" {
		t.Errorf("merton1968 doi = %q", merton.DOI)
	}

	unesco := refs["unesco2001"]
	if !unesco.Author[0].Literal || unesco.Author[0].Name.Value != "UNESCO" {
		t.Errorf("unesco2001 literal author not preserved: %+v", unesco.Author[0])
	}
}

func TestReimportReplaces(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	lib := testLibrary(t)
	if _, err := st.ImportLibrary("main", lib); err != nil {
		t.Fatalf("first import: %v", err)
	}

	smaller := &models.Library{References: lib.References[:1]}
	id1, err := st.ImportLibrary("main", smaller)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	got, err := st.LoadLibrary("main")
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if len(got.References) != 1 {
		t.Errorf("got %d references after re-import, want 1", len(got.References))
	}

	rows, err := st.ListLibraries()
	if err != nil {
		t.Fatalf("ListLibraries: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d libraries, want 1", len(rows))
	}
	if rows[0].ID != id1 || rows[0].RefCount != 1 {
		t.Errorf("library row = %+v, want id %d with 1 ref", rows[0], id1)
	}
}

func TestFindRefs(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	if _, err := st.ImportLibrary("main", testLibrary(t)); err != nil {
		t.Fatalf("ImportLibrary: %v", err)
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"by family", "Kuhn", []string{"kuhn1962"}},
		{"by title word", "Matthew", []string{"merton1968"}},
		{"by cite key", "unesco", []string{"unesco2001"}},
		{"no match", "nonexistent", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := st.FindRefs("main", tt.query)
			if err != nil {
				t.Fatalf("FindRefs: %v", err)
			}
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d hits, want %d", len(rows), len(tt.want))
			}
			for i := range tt.want {
				if rows[i].CiteKey != tt.want[i] {
					t.Errorf("hit %d = %q, want %q", i, rows[i].CiteKey, tt.want[i])
				}
			}
		})
	}
}

func TestDeleteLibrary(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	if _, err := st.ImportLibrary("main", testLibrary(t)); err != nil {
		t.Fatalf("ImportLibrary: %v", err)
	}
	if err := st.DeleteLibrary("main"); err != nil {
		t.Fatalf("DeleteLibrary: %v", err)
	}
	if _, err := st.LoadLibrary("main"); err == nil {
		t.Error("LoadLibrary succeeded after delete")
	}
	if err := st.DeleteLibrary("main"); err == nil {
		t.Error("second delete did not report missing library")
	}

	// Cascade removed the entries too.
	var n int
	if err := st.QueryRow("SELECT COUNT(*) FROM refs").Scan(&n); err != nil {
		t.Fatalf("count refs: %v", err)
	}
	if n != 0 {
		t.Errorf("%d refs left after cascade delete, want 0", n)
	}
}

func TestRecordSession(t *testing.T) {
	st := setupTestStore(t)
	defer st.Close()

	warnings := []values.Warning{
		{Kind: values.WarnMalformedDate, Detail: "reference x: bad date"},
		{Kind: values.WarnMissingRequiredField, Detail: "reference y: no author"},
	}
	if err := st.RecordSession("sess-1", "APA Test", "main", 10, 4, warnings); err != nil {
		t.Fatalf("RecordSession: %v", err)
	}

	sessions, err := st.ListSessions(5)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}
	s := sessions[0]
	if s.ID != "sess-1" || s.EntryCount != 10 || s.CitationCount != 4 || s.WarningCount != 2 {
		t.Errorf("session row = %+v", s)
	}

	got, err := st.SessionWarnings("sess-1")
	if err != nil {
		t.Fatalf("SessionWarnings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d warnings, want 2", len(got))
	}
	if got[0].Kind != values.WarnMalformedDate {
		t.Errorf("warning 0 kind = %q", got[0].Kind)
	}

	if _, err := st.SessionWarnings("no-such-session"); err == nil {
		t.Error("SessionWarnings succeeded for unknown session")
	}
}
