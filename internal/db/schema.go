package db

// SchemaSQL is the complete schema for the run ledger.
//
// This is the single source of truth for the database schema. Tests build
// their in-memory databases from GetSchemaSQL() so that repository code and
// tests can never drift apart: a column referenced in a query but missing
// here fails immediately with "no such column".
const SchemaSQL = `
-- Runs (one row per generated project)
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	app_name TEXT NOT NULL,
	domain TEXT NOT NULL,
	seed INTEGER NOT NULL,
	project_dir TEXT NOT NULL,
	entity_count INTEGER NOT NULL DEFAULT 0,
	field_count INTEGER NOT NULL DEFAULT 0,
	relation_count INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL CHECK(status IN ('created', 'verified', 'failed')) DEFAULT 'created',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_domain ON runs(domain);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
