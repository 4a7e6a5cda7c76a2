// Package render holds the CLI actions that turn style, library, and
// citation files into formatted output.
package render

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/citefmt/models"
	"github.com/dtnitsch/citefmt/pkg/caching"
	"github.com/dtnitsch/citefmt/pkg/processor"
	outfmt "github.com/dtnitsch/citefmt/pkg/render"
	"github.com/dtnitsch/citefmt/pkg/storage"
	"github.com/dtnitsch/citefmt/pkg/store"
)

// inputs bundles everything a render command needs.
type inputs struct {
	style     *models.Style
	library   *models.Library
	libName   string
	citations *models.Citations
	format    outfmt.Format
}

// loadInputs resolves the style, library, citations, and output format
// from CLI flags. The library comes from a file or from the store.
func loadInputs(c *cli.Context) (*inputs, error) {
	stylePath := c.String("style")
	if stylePath == "" {
		return nil, fmt.Errorf("no style provided via --style flag")
	}
	style, err := models.LoadStyle(stylePath)
	if err != nil {
		return nil, err
	}

	in := &inputs{style: style}

	switch {
	case c.String("library") != "":
		in.libName = c.String("library")
		in.library, err = models.LoadLibrary(in.libName)
		if err != nil {
			return nil, err
		}
	case c.String("from-store") != "":
		in.libName = c.String("from-store")
		st, err := store.Open()
		if err != nil {
			return nil, err
		}
		defer st.Close()
		in.library, err = st.LoadLibrary(in.libName)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("no library provided via --library or --from-store")
	}

	if path := c.String("citations"); path != "" {
		in.citations, err = models.LoadCitations(path)
		if err != nil {
			return nil, err
		}
	}

	format, ok := outfmt.ByName(c.String("format"))
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", c.String("format"))
	}
	in.format = format
	return in, nil
}

// writeOutput prints to stdout or saves to --out when set.
func writeOutput(c *cli.Context, text string) error {
	if out := c.String("out"); out != "" {
		s := &storage.Storage{}
		if err := s.SaveFile(out, []byte(text)); err != nil {
			return err
		}
		log.Printf("Saved output to %s", out)
		return nil
	}
	fmt.Println(text)
	return nil
}

// reportWarnings prints collected warnings to stderr and records the
// session in the store when asked to.
func reportWarnings(c *cli.Context, p *processor.Processor, in *inputs, entryCount, citationCount int) {
	warnings := p.Warnings()
	for _, w := range warnings {
		log.Printf("warning [%s]: %s", w.Kind, w.Detail)
	}
	if !c.Bool("record") {
		return
	}
	st, err := store.Open()
	if err != nil {
		log.Printf("failed to open store, session not recorded: %v", err)
		return
	}
	defer st.Close()
	if err := st.RecordSession(p.SessionID, in.style.Info.Title, in.libName,
		entryCount, citationCount, warnings); err != nil {
		log.Printf("failed to record session: %v", err)
	}
}

// renderDigest is the cache key for one bibliography render: the raw
// style and library files plus the output format name.
func renderDigest(c *cli.Context) (string, bool) {
	styleData, err := os.ReadFile(c.String("style"))
	if err != nil {
		return "", false
	}
	libData, err := os.ReadFile(c.String("library"))
	if err != nil {
		return "", false
	}
	return caching.Digest(styleData, libData, []byte(c.String("format"))), true
}

// BibliographyAction renders the full bibliography.
func BibliographyAction(c *cli.Context) error {
	var cache *caching.Cache
	var digest string
	if c.Bool("cache") && c.String("library") != "" {
		var err error
		cache, err = caching.NewCache(c.String("cache-dir"), 24*time.Hour)
		if err != nil {
			return fmt.Errorf("failed to initialize cache: %w", err)
		}
		var ok bool
		if digest, ok = renderDigest(c); ok {
			if data, hit := cache.Get(digest); hit {
				log.Printf("cache hit for %s", c.String("library"))
				return writeOutput(c, strings.TrimRight(string(data), "\n"))
			}
		}
	}

	in, err := loadInputs(c)
	if err != nil {
		return err
	}

	p := processor.New(in.style, in.library, in.citations, nil, in.format)

	var lines []string
	entryCount := 0
	if c.Bool("grouped") {
		groups, err := p.RenderBibliographyGroups()
		if err != nil {
			return err
		}
		for _, g := range groups {
			if g.Heading != "" {
				lines = append(lines, g.Heading)
			}
			for _, e := range g.Entries {
				lines = append(lines, e.Text)
			}
			entryCount += len(g.Entries)
			lines = append(lines, "")
		}
	} else {
		entries, err := p.RenderBibliography()
		if err != nil {
			return err
		}
		for _, e := range entries {
			lines = append(lines, e.Text)
		}
		entryCount = len(entries)
	}

	text := strings.TrimRight(strings.Join(lines, "\n"), "\n")
	reportWarnings(c, p, in, entryCount, 0)

	if cache != nil && digest != "" {
		if err := cache.Set(digest, []byte(text+"\n")); err != nil {
			log.Printf("failed to write cache: %v", err)
		}
	}
	return writeOutput(c, text)
}

// CitationsAction renders every citation from the citations file.
func CitationsAction(c *cli.Context) error {
	in, err := loadInputs(c)
	if err != nil {
		return err
	}
	if in.citations == nil {
		return fmt.Errorf("no citations provided via --citations flag")
	}

	p := processor.New(in.style, in.library, in.citations, nil, in.format)
	rendered, err := p.RenderCitations()
	if err != nil {
		return err
	}

	reportWarnings(c, p, in, 0, len(rendered))
	return writeOutput(c, strings.Join(rendered, "\n"))
}
