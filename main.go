package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/citefmt/internal/check"
	"github.com/dtnitsch/citefmt/internal/library"
	"github.com/dtnitsch/citefmt/internal/render"
	"github.com/dtnitsch/citefmt/pkg/help"
	"github.com/dtnitsch/citefmt/pkg/store"
)

func main() {
	app := &cli.App{
		Name:  "citefmt",
		Usage: "render citations and bibliographies from declarative YAML styles",
		Commands: []*cli.Command{
			{
				Name:  "bib",
				Usage: "Render the bibliography for a library",
				Flags: append(renderFlags(),
					&cli.BoolFlag{
						Name:  "grouped",
						Usage: "Print group headings when the style defines groups",
					},
					&cli.BoolFlag{
						Name:  "cache",
						Usage: "Reuse cached output when style and library are unchanged",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: "citefmt-cache",
						Usage: "Directory for cached output",
					},
				),
				Action: render.BibliographyAction,
			},
			{
				Name:  "cite",
				Usage: "Render in-text citations from a citations file",
				Flags:  renderFlags(),
				Action: render.CitationsAction,
			},
			{
				Name:      "check",
				Usage:     "Validate style files",
				ArgsUsage: "<style.yaml> [more styles...]",
				Action:    check.StyleAction,
			},
			{
				Name:  "library",
				Usage: "Manage stored reference libraries and render sessions",
				Subcommands: []*cli.Command{
					{
						Name:      "import",
						Usage:     "Import a library YAML file under a name",
						ArgsUsage: "<name> <file>",
						Action:    library.ImportAction,
					},
					{
						Name:   "list",
						Usage:  "List stored libraries",
						Action: library.ListAction,
					},
					{
						Name:      "find",
						Usage:     "Search a library by cite key, title, or author family",
						ArgsUsage: "<name> <query>",
						Action:    library.FindAction,
					},
					{
						Name:      "export",
						Usage:     "Write a stored library back out as YAML",
						ArgsUsage: "<name> [file]",
						Action:    library.ExportAction,
					},
					{
						Name:      "delete",
						Usage:     "Delete a stored library and its references",
						ArgsUsage: "<name>",
						Action:    library.DeleteAction,
					},
					{
						Name:  "sessions",
						Usage: "List recorded render sessions",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "limit",
								Value: 20,
								Usage: "Maximum sessions to show",
							},
						},
						Action: library.SessionsAction,
					},
					{
						Name:      "warnings",
						Usage:     "Show the warnings recorded for a session",
						ArgsUsage: "<session-id>",
						Action:    library.WarningsAction,
					},
					{
						Name:   "init",
						Usage:  "Initialize the library store schema",
						Action: initAction,
					},
				},
			},
			{
				Name:  "quickstart",
				Usage: "Print a machine-readable usage reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// renderFlags are the flags bib and cite share.
func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "style",
			Usage:    "Path to the style YAML file",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "library",
			Usage: "Path to the library YAML file",
		},
		&cli.StringFlag{
			Name:  "from-store",
			Usage: "Load the named library from the store instead of a file",
		},
		&cli.StringFlag{
			Name:  "citations",
			Usage: "Path to the citations YAML file",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: "plain",
			Usage: "Output format: plain, html, markdown",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Write output to a file instead of stdout",
		},
		&cli.BoolFlag{
			Name:  "record",
			Usage: "Record the render session and its warnings in the store",
		},
	}
}

func initAction(c *cli.Context) error {
	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("failed to open library store: %w", err)
	}
	defer st.Close()
	if err := st.InitSchema(); err != nil {
		return err
	}
	fmt.Printf("Initialized store at %s\n", st.Path())
	return nil
}
