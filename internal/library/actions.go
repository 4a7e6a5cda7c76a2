package library

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/storage"
	"github.com/dtnitsch/citefmt/pkg/store"
)

func openStore() (*store.Store, error) {
	st, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open library store: %w", err)
	}
	return st, nil
}

// ImportAction loads a library YAML file into the store under a name.
func ImportAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: citefmt library import <name> <file>")
	}
	name := c.Args().Get(0)
	path := c.Args().Get(1)

	lib, err := models.LoadLibrary(path)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.ImportLibrary(name, lib); err != nil {
		return fmt.Errorf("failed to import library: %w", err)
	}

	fmt.Printf("Imported %d references into library %q\n", len(lib.References), name)
	fmt.Printf("\nTip: Use 'citefmt bib --style <style.yaml> --from-store %s' to render it\n", name)
	return nil
}

// ListAction prints every stored library with its reference count.
func ListAction(c *cli.Context) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	libs, err := st.ListLibraries()
	if err != nil {
		return fmt.Errorf("failed to list libraries: %w", err)
	}

	if len(libs) == 0 {
		fmt.Println("No libraries found")
		fmt.Printf("\nTip: Use 'citefmt library import <name> <file>' to add one\n")
		return nil
	}

	fmt.Printf("%-6s %-24s %-40s %-8s\n", "ID", "Name", "Title", "Refs")
	fmt.Println(strings.Repeat("-", 80))
	for _, l := range libs {
		fmt.Printf("%-6d %-24s %-40s %-8d\n", l.ID, l.Name, l.Title, l.RefCount)
	}
	fmt.Printf("\nTotal: %d libraries\n", len(libs))
	return nil
}

// FindAction searches a library by cite key, title, or family name.
func FindAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: citefmt library find <name> <query>")
	}
	name := c.Args().Get(0)
	query := c.Args().Get(1)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	refs, err := st.FindRefs(name, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(refs) == 0 {
		fmt.Printf("No references matching %q in library %q\n", query, name)
		return nil
	}

	fmt.Printf("%-20s %-16s %-40s %-20s %-10s\n",
		"Cite Key", "Type", "Title", "Author", "Issued")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range refs {
		fmt.Printf("%-20s %-16s %-40s %-20s %-10s\n",
			r.CiteKey, r.Type, truncate(r.Title, 40), r.FirstFamily, r.Issued)
	}
	fmt.Printf("\nTotal: %d references\n", len(refs))
	return nil
}

// ExportAction writes a stored library back out as YAML, to stdout or to
// a file given as the second argument.
func ExportAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: citefmt library export <name> [file]")
	}
	name := c.Args().Get(0)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	lib, err := st.LoadLibrary(name)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(lib)
	if err != nil {
		return fmt.Errorf("failed to marshal library: %w", err)
	}

	if c.NArg() >= 2 {
		out := c.Args().Get(1)
		s := &storage.Storage{}
		if err := s.SaveFile(out, data); err != nil {
			return err
		}
		fmt.Printf("Exported %d references to %s\n", len(lib.References), out)
		return nil
	}
	fmt.Print(string(data))
	return nil
}

// DeleteAction removes a stored library and its references.
func DeleteAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: citefmt library delete <name>")
	}
	name := c.Args().Get(0)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteLibrary(name); err != nil {
		return err
	}
	fmt.Printf("Deleted library %q\n", name)
	return nil
}

// SessionsAction lists recorded render sessions.
func SessionsAction(c *cli.Context) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.ListSessions(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded")
		fmt.Printf("\nTip: Pass --record to 'citefmt bib' or 'citefmt cite' to record one\n")
		return nil
	}

	fmt.Printf("%-38s %-20s %-24s %-16s %-8s %-8s %-8s\n",
		"Session", "Created", "Style", "Library", "Entries", "Cites", "Warns")
	fmt.Println(strings.Repeat("-", 126))
	for _, s := range sessions {
		fmt.Printf("%-38s %-20s %-24s %-16s %-8d %-8d %-8d\n",
			s.ID,
			s.CreatedAt.Format("2006-01-02 15:04:05"),
			truncate(s.StyleTitle, 24),
			s.LibraryName,
			s.EntryCount,
			s.CitationCount,
			s.WarningCount,
		)
	}
	fmt.Printf("\nTotal: %d sessions\n", len(sessions))
	fmt.Printf("\nTip: Use 'citefmt library warnings <session>' to see details\n")
	return nil
}

// WarningsAction prints every warning recorded for a session.
func WarningsAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: citefmt library warnings <session-id>")
	}
	sessionID := c.Args().Get(0)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	warnings, err := st.SessionWarnings(sessionID)
	if err != nil {
		return err
	}

	if len(warnings) == 0 {
		fmt.Printf("Session %s recorded no warnings\n", sessionID)
		return nil
	}

	fmt.Printf("Warnings for session %s (%d):\n", sessionID, len(warnings))
	fmt.Println(strings.Repeat("-", 60))
	for i, w := range warnings {
		fmt.Printf("%2d. [%s] %s\n", i+1, w.Kind, w.Detail)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
