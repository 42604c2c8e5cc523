package sqlite

// Schema statements executed by Migrate, in order. Record stores are
// independently keyed tables; scalar state (counter, paused) lives in
// trace_config. List-valued fields (tags, permissions) are stored as JSON
// text.
var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS trace_batches (
    id            INTEGER PRIMARY KEY,
    origin        TEXT NOT NULL DEFAULT '',
    crop_type     TEXT NOT NULL DEFAULT '',
    harvested_at  INTEGER NOT NULL DEFAULT 0,
    hash          BLOB NOT NULL,
    metadata      TEXT NOT NULL DEFAULT '',
    creator       TEXT NOT NULL,
    created_at    INTEGER NOT NULL DEFAULT 0,
    current_owner TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trace_batches_owner ON trace_batches (current_owner);
`,
	`
CREATE TABLE IF NOT EXISTS trace_versions (
    batch_id   INTEGER NOT NULL,
    version    INTEGER NOT NULL,
    hash       BLOB NOT NULL,
    notes      TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (batch_id, version)
);
`,
	`
CREATE TABLE IF NOT EXISTS trace_licenses (
    batch_id   INTEGER NOT NULL,
    licensee   TEXT NOT NULL,
    expiry     INTEGER NOT NULL DEFAULT 0,
    terms      TEXT NOT NULL DEFAULT '',
    active     INTEGER NOT NULL DEFAULT 1,
    granted_at INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (batch_id, licensee)
);
`,
	`
CREATE TABLE IF NOT EXISTS trace_categories (
    batch_id   INTEGER PRIMARY KEY,
    category   TEXT NOT NULL DEFAULT '',
    tags       TEXT NOT NULL DEFAULT '[]',
    updated_at INTEGER NOT NULL DEFAULT 0
);
`,
	`
CREATE TABLE IF NOT EXISTS trace_collaborators (
    batch_id     INTEGER NOT NULL,
    collaborator TEXT NOT NULL,
    role         TEXT NOT NULL DEFAULT '',
    permissions  TEXT NOT NULL DEFAULT '[]',
    added_at     INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (batch_id, collaborator)
);
`,
	`
CREATE TABLE IF NOT EXISTS trace_statuses (
    batch_id   INTEGER PRIMARY KEY,
    status     TEXT NOT NULL DEFAULT '',
    visible    INTEGER NOT NULL DEFAULT 1,
    updated_at INTEGER NOT NULL DEFAULT 0
);
`,
	`
CREATE TABLE IF NOT EXISTS trace_shares (
    batch_id       INTEGER NOT NULL,
    participant    TEXT NOT NULL,
    percentage     INTEGER NOT NULL DEFAULT 0,
    total_received INTEGER NOT NULL DEFAULT 0,
    updated_at     INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (batch_id, participant)
);
`,
	`
CREATE TABLE IF NOT EXISTS trace_config (
    key   TEXT PRIMARY KEY,
    value INTEGER NOT NULL DEFAULT 0
);

INSERT OR IGNORE INTO trace_config (key, value) VALUES ('counter', 0);
INSERT OR IGNORE INTO trace_config (key, value) VALUES ('paused', 0);
`,
}
