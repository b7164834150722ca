// ABOUTME: SQLite database schema for the persisted scope slots
// ABOUTME: One row per storage key; the value is the scope's JSON encoding
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
CREATE TABLE IF NOT EXISTS scope_slots (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
