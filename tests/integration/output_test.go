package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"testing"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/formatter"
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"

	_ "modernc.org/sqlite"
)

func journeyBook(t *testing.T) *tripify.Logbook {
	t.Helper()
	snapshots, _ := gtfsrt.CleanSnapshots(tripJourney(t))
	book, err := tripify.Logify(snapshots)
	if err != nil {
		t.Fatalf("Logify returned error: %v", err)
	}
	return book
}

func TestPipelineToCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := formatter.WriteCSV(&buf, journeyBook(t)); err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	for _, row := range rows[1:] {
		if row[1] != "trip_1" || row[2] != "1" {
			t.Errorf("row lost trip identity: %v", row)
		}
	}
	if rows[1][6] != "A" || rows[2][6] != "B" {
		t.Errorf("rows out of station order: %v, %v", rows[1], rows[2])
	}
	if rows[1][3] != string(tripify.StoppedAt) {
		t.Errorf("expected STOPPED_AT row first, got %v", rows[1][3])
	}
}

func TestPipelineToSQLite(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	if err := formatter.WriteSQL(ctx, db, journeyBook(t)); err != nil {
		t.Fatalf("WriteSQL returned error: %v", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT stop_id, action, minimum_time, maximum_time
		FROM Logbooks ORDER BY event_id
	`)
	if err != nil {
		t.Fatalf("failed to query rows: %v", err)
	}
	defer func() { _ = rows.Close() }()

	type row struct {
		stopID, action string
		min, max       sql.NullInt64
	}
	var got []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.stopID, &r.action, &r.min, &r.max); err != nil {
			t.Fatalf("failed to scan row: %v", err)
		}
		got = append(got, r)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("row iteration failed: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].stopID != "A" || got[0].action != string(tripify.StoppedAt) {
		t.Errorf("unexpected first row: %+v", got[0])
	}
	if !got[0].min.Valid || got[0].min.Int64 != 100 || !got[0].max.Valid || got[0].max.Int64 != 120 {
		t.Errorf("expected A bounded by [100, 120], got %+v", got[0])
	}
	if got[1].stopID != "B" || got[1].action != string(tripify.StoppedOrSkipped) {
		t.Errorf("unexpected second row: %+v", got[1])
	}
}
