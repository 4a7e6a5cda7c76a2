package help

const ColdstartYAML = `# citefmt Quick Start

inputs:
  style: "YAML style file: options, templates, citation, bibliography"
  library: "YAML reference library: references keyed by id"
  citations: "YAML citation list: groups of reference ids with locators"

processing_modes:
  author-date: "(Smith, 2020a) citations, author/year-sorted bibliography"
  numeric: "[1] citations, bibliography in cited order"
  note: "Footnote-numbered citations"
  label: "[Kuh62] alphanumeric labels"

commands:
  render_bibliography: |
    citefmt bib --style apa.yaml --library refs.yaml

  render_grouped: |
    citefmt bib --style style.yaml --library refs.yaml --grouped

  render_citations: |
    citefmt cite --style apa.yaml --library refs.yaml --citations cites.yaml

  html_output: |
    citefmt bib --style apa.yaml --library refs.yaml --format html

  validate_styles: |
    citefmt check apa.yaml chicago.yaml

  import_library: |
    citefmt library import thesis refs.yaml

  render_from_store: |
    citefmt bib --style apa.yaml --from-store thesis

  search_library: |
    citefmt library find thesis smith

  list_sessions: |
    citefmt library sessions

output_formats:
  plain: "Plain text (default)"
  html: "HTML with <i>/<b>/<span> markup"
  markdown: "Markdown emphasis and links"

warnings:
  - "Rendering never fails on bad data; problems surface as warnings"
  - "missing-required-field: entry lacks a field the style needs"
  - "unresolved-locale-term: term missing from locale, fallback used"
  - "ambiguous-after-exhaustion: entries still collide with year-suffix disabled"
  - "malformed-date: date string is not EDTF, raw value rendered"
  - "invalid-override-target: component names an unknown type or variable"
  - "Pass --record to persist warnings per session, then 'citefmt library warnings <id>'"

disambiguation:
  - "Colliding author+year entries expand names, then given names, then add year suffixes"
  - "Year-suffix letters (2020a, 2020b) restart per bibliography group"
  - "Suffix order follows title sort within the colliding set"

key_behaviors:
  - "Component options override style options; style options override built-ins"
  - "A variable renders at most once per entry; substitution consumes its source"
  - "Entry suffix is suppressed after a trailing URL or DOI"
  - "Same input always renders the same output"
`
