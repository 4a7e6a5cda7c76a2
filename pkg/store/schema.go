package store

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Libraries: named reference collections
CREATE TABLE IF NOT EXISTS libraries (
    library_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    title TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Refs: one row per reference entry. The full entry is stored as YAML;
-- the extracted columns exist for querying only. ("references" is a
-- reserved word in SQLite.)
CREATE TABLE IF NOT EXISTS refs (
    ref_id INTEGER PRIMARY KEY AUTOINCREMENT,
    library_id INTEGER NOT NULL,
    cite_key TEXT NOT NULL,
    ref_type TEXT NOT NULL,
    title TEXT,
    first_family TEXT,
    issued TEXT,
    doi TEXT,
    url TEXT,
    body TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (library_id) REFERENCES libraries(library_id) ON DELETE CASCADE,
    UNIQUE(library_id, cite_key)
);

CREATE INDEX IF NOT EXISTS idx_refs_library ON refs(library_id);
CREATE INDEX IF NOT EXISTS idx_refs_type ON refs(ref_type);
CREATE INDEX IF NOT EXISTS idx_refs_family ON refs(first_family);
CREATE INDEX IF NOT EXISTS idx_refs_doi ON refs(doi);

-- Render sessions: one row per render call against a library
CREATE TABLE IF NOT EXISTS render_sessions (
    session_id TEXT PRIMARY KEY,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    style_title TEXT,
    library_name TEXT,
    entry_count INTEGER DEFAULT 0,
    citation_count INTEGER DEFAULT 0,
    warning_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_render_sessions_created ON render_sessions(created_at DESC);

-- Session warnings: the non-fatal problems a render session collected
CREATE TABLE IF NOT EXISTS session_warnings (
    warning_id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    kind TEXT NOT NULL,
    detail TEXT,
    FOREIGN KEY (session_id) REFERENCES render_sessions(session_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_session_warnings_session ON session_warnings(session_id);
CREATE INDEX IF NOT EXISTS idx_session_warnings_kind ON session_warnings(kind);
`
