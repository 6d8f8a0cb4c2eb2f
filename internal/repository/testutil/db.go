package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"citypulse/backend/internal/db"
	"citypulse/backend/internal/hashutil"
	"citypulse/backend/internal/model"
	"citypulse/backend/pkg/snowflake"

	_ "modernc.org/sqlite"
)

// snowflakeOnce guards the global snowflake node so that parallel tests
// initialize it exactly once.
var snowflakeOnce sync.Once

// NewTestDB opens an in-memory SQLite database, runs all migrations and
// registers a cleanup that closes it when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(0); err != nil {
			// t.Fatalf is not usable inside sync.Once, so panic instead
			panic("failed to initialize snowflake: " + err.Error())
		}
	})

	// Shared cache keeps the in-memory database alive across pooled
	// connections. The name includes the test name and a timestamp so
	// parallel tests never share state.
	dbName := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", t.Name(), time.Now().UnixNano())
	database, err := sql.Open("sqlite", dbName)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

// ptrVal converts a pointer to an interface{} value, nil pointers stay nil.
func ptrVal[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// timeVal converts a time pointer to an RFC3339 string, nil stays nil.
func timeVal(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// boolToInt converts a bool to its 0/1 column value.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SeedComment inserts a comment row and returns its ID. Zero-value fields
// receive the defaults a freshly submitted comment would get. CreatedAt is
// honored when set so tests can seed historical rows.
func SeedComment(t *testing.T, db *sql.DB, comment model.Comment) int64 {
	t.Helper()

	if comment.ID == 0 {
		comment.ID = snowflake.NextID()
	}
	if comment.SubmitterName == "" {
		comment.SubmitterName = "Anonymous"
	}
	if comment.Language == "" {
		comment.Language = "und"
	}
	if comment.Label == "" {
		comment.Label = model.LabelNeutral
	}

	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	now := createdAt.UTC().Format(time.RFC3339)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO comments (id, submitter_name, submitter_email, text, translated_text, language,
		   score_negative, score_neutral, score_positive, score_compound, label, translation_pending,
		   created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		comment.ID, comment.SubmitterName, ptrVal(comment.SubmitterEmail), comment.Text,
		ptrVal(comment.TranslatedText), comment.Language,
		comment.ScoreNegative, comment.ScoreNeutral, comment.ScorePositive, comment.ScoreCompound,
		comment.Label, boolToInt(comment.TranslationPending), now, now,
	)
	if err != nil {
		t.Fatalf("failed to seed comment: %v", err)
	}

	return comment.ID
}

// SeedAlert inserts a service alert row and returns its ID. An empty hash
// is filled in the same way the alert service computes it.
func SeedAlert(t *testing.T, db *sql.DB, alert model.ServiceAlert) int64 {
	t.Helper()

	if alert.ID == 0 {
		alert.ID = snowflake.NextID()
	}
	if alert.Hash == "" {
		var url string
		if alert.URL != nil {
			url = *alert.URL
		}
		alert.Hash = hashutil.AlertHash(url, alert.Title, alert.Summary)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO service_alerts (id, hash, title, summary, url, published_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		alert.ID, alert.Hash, alert.Title, alert.Summary, ptrVal(alert.URL), timeVal(alert.PublishedAt), now,
	)
	if err != nil {
		t.Fatalf("failed to seed alert: %v", err)
	}

	return alert.ID
}

// SeedSetting inserts a settings row.
func SeedSetting(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err := db.ExecContext(
		context.Background(),
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, now,
	)
	if err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}
}
