package cache

// schema defines the cache database tables.
const schema = `
CREATE TABLE IF NOT EXISTS results (
	path         TEXT NOT NULL,
	content_hash TEXT NOT NULL,
	options_hash TEXT NOT NULL,
	output       TEXT NOT NULL,
	updated_at   INTEGER NOT NULL,
	PRIMARY KEY (path, options_hash)
);

CREATE INDEX IF NOT EXISTS idx_results_content ON results(content_hash);
`

// initSchema creates the cache tables if they do not exist.
func (c *Cache) initSchema() error {
	_, err := c.db.Exec(schema)
	return err
}
