package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS comments (
  id INTEGER PRIMARY KEY,
  text TEXT NOT NULL,
  language TEXT NOT NULL DEFAULT 'und',
  score_negative REAL NOT NULL DEFAULT 0,
  score_neutral REAL NOT NULL DEFAULT 0,
  score_positive REAL NOT NULL DEFAULT 0,
  score_compound REAL NOT NULL DEFAULT 0,
  label TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_label ON comments(label);
CREATE INDEX IF NOT EXISTS idx_comments_created_at ON comments(created_at);

CREATE VIRTUAL TABLE IF NOT EXISTS comments_fts USING fts5(
  text,
  tokenize = 'unicode61'
);

CREATE TRIGGER IF NOT EXISTS comments_ai AFTER INSERT ON comments BEGIN
  INSERT INTO comments_fts(rowid, text) VALUES (new.id, new.text);
END;

CREATE TRIGGER IF NOT EXISTS comments_ad AFTER DELETE ON comments BEGIN
  DELETE FROM comments_fts WHERE rowid = old.id;
END;
`

func Migrate(db *sql.DB) error {
	// Run base schema first
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	// Run incremental migrations
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: Add translated_text column for the English text scores
	// were computed on
	exists, err := hasColumn(db, "comments", "translated_text")
	if err != nil {
		return fmt.Errorf("check translated_text column: %w", err)
	}
	if !exists {
		if _, err := db.Exec(`ALTER TABLE comments ADD COLUMN translated_text TEXT`); err != nil {
			return fmt.Errorf("add translated_text column: %w", err)
		}
	}

	// Migration 2: Add translation_pending column for comments scored on
	// untranslated text (rescored once a translation provider is available)
	exists, err = hasColumn(db, "comments", "translation_pending")
	if err != nil {
		return fmt.Errorf("check translation_pending column: %w", err)
	}
	if !exists {
		if _, err := db.Exec(`ALTER TABLE comments ADD COLUMN translation_pending INTEGER NOT NULL DEFAULT 0`); err != nil {
			return fmt.Errorf("add translation_pending column: %w", err)
		}
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_comments_pending ON comments(translation_pending)`); err != nil {
		return fmt.Errorf("create idx_comments_pending: %w", err)
	}

	// Migration 3: Create settings table for key-value configuration storage
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}

	// Migration 4: Create service_alerts table for agency alert feed items
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS service_alerts (
			id INTEGER PRIMARY KEY,
			hash TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			summary TEXT NOT NULL DEFAULT '',
			url TEXT,
			published_at TEXT,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("create service_alerts table: %w", err)
	}

	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_service_alerts_hash ON service_alerts(hash)`); err != nil {
		return fmt.Errorf("create idx_service_alerts_hash: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_service_alerts_published_at ON service_alerts(published_at)`); err != nil {
		return fmt.Errorf("create idx_service_alerts_published_at: %w", err)
	}

	// Migration 5: Add submitter columns to comments
	exists, err = hasColumn(db, "comments", "submitter_name")
	if err != nil {
		return fmt.Errorf("check submitter_name column: %w", err)
	}
	if !exists {
		if _, err := db.Exec(`ALTER TABLE comments ADD COLUMN submitter_name TEXT NOT NULL DEFAULT 'Anonymous'`); err != nil {
			return fmt.Errorf("add submitter_name column: %w", err)
		}
	}

	exists, err = hasColumn(db, "comments", "submitter_email")
	if err != nil {
		return fmt.Errorf("check submitter_email column: %w", err)
	}
	if !exists {
		if _, err := db.Exec(`ALTER TABLE comments ADD COLUMN submitter_email TEXT`); err != nil {
			return fmt.Errorf("add submitter_email column: %w", err)
		}
	}

	// Migration 6: Normalize historical rows. Early builds stored
	// capitalized labels and left language empty for undetected text.
	if _, err := db.Exec(`UPDATE comments SET label = lower(label) WHERE label != lower(label)`); err != nil {
		return fmt.Errorf("normalize comment labels: %w", err)
	}
	if _, err := db.Exec(`UPDATE comments SET language = 'und' WHERE language = ''`); err != nil {
		return fmt.Errorf("backfill comment language: %w", err)
	}

	// Migration 7: Index comments that predate the search table. The insert
	// trigger only covers rows written after it exists.
	if _, err := db.Exec(`
		INSERT INTO comments_fts(rowid, text)
		SELECT id, text FROM comments WHERE id NOT IN (SELECT rowid FROM comments_fts)
	`); err != nil {
		return fmt.Errorf("backfill comments_fts: %w", err)
	}

	return nil
}

func hasColumn(db *sql.DB, table string, column string) (bool, error) {
	var count int
	if err := db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name = ?`, table),
		column,
	).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
