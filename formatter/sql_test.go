package formatter

import (
	"context"
	"database/sql"
	"testing"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWriteSQL(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := WriteSQL(ctx, db, sampleLogbook()); err != nil {
		t.Fatalf("WriteSQL returned error: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Logbooks").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 rows, got %d", count)
	}

	var action, stopID string
	var maxTime sql.NullInt64
	err := db.QueryRowContext(ctx, `
		SELECT action, stop_id, maximum_time FROM Logbooks
		WHERE unique_trip_id = 'uuid-a' AND stop_id = '104S'
	`).Scan(&action, &stopID, &maxTime)
	if err != nil {
		t.Fatalf("failed to read row back: %v", err)
	}
	if action != string(tripify.EnRouteTo) || stopID != "104S" {
		t.Errorf("unexpected row: %s %s", action, stopID)
	}
	if maxTime.Valid {
		t.Error("nil maximum time should round-trip as SQL NULL")
	}
}

func TestWriteSQLAppends(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := WriteSQL(ctx, db, sampleLogbook()); err != nil {
		t.Fatalf("first WriteSQL returned error: %v", err)
	}
	if err := WriteSQL(ctx, db, sampleLogbook()); err != nil {
		t.Fatalf("second WriteSQL returned error: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Logbooks").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 6 {
		t.Errorf("expected successive writes to append, got %d rows", count)
	}
}
