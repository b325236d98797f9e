package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS account_profiles (
	id         TEXT PRIMARY KEY,
	address    TEXT NOT NULL UNIQUE,
	imap_host  TEXT NOT NULL DEFAULT '',
	imap_port  TEXT NOT NULL DEFAULT '993',
	smtp_host  TEXT NOT NULL DEFAULT '',
	smtp_port  TEXT NOT NULL DEFAULT '465',
	tls        INTEGER NOT NULL DEFAULT 1 CHECK(tls IN (0, 1)),
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_account_profiles_updated
	ON account_profiles(updated_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
