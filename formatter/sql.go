package formatter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"
)

const createLogbooksTable = `
CREATE TABLE IF NOT EXISTS Logbooks (
	"event_id" INTEGER PRIMARY KEY,
	"unique_trip_id" TEXT,
	"trip_id" TEXT,
	"route_id" TEXT,
	"action" TEXT,
	"minimum_time" INTEGER,
	"maximum_time" INTEGER,
	"stop_id" TEXT,
	"latest_information_time" INTEGER
);`

// WriteSQL durably appends a flattened logbook to the Logbooks table,
// creating it if necessary. All rows are written in one transaction. Unique
// trip ids are process-unique UUIDs, so appending successive windows to the
// same database never collides.
func WriteSQL(ctx context.Context, db *sql.DB, book *tripify.Logbook) error {
	if _, err := db.ExecContext(ctx, createLogbooksTable); err != nil {
		return fmt.Errorf("failed to create Logbooks table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO Logbooks (
			unique_trip_id, trip_id, route_id, action,
			minimum_time, maximum_time, stop_id, latest_information_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, uid := range sortedUIDs(book) {
		for _, e := range book.Logs[uid] {
			_, err := stmt.ExecContext(ctx,
				uid, e.TripID, e.RouteID, string(e.Action),
				nullableTime(e.MinimumTime), nullableTime(e.MaximumTime),
				e.StopID, e.LatestInformationTime,
			)
			if err != nil {
				return fmt.Errorf("failed to insert trip %s: %w", uid, err)
			}
		}
	}
	return tx.Commit()
}

func nullableTime(t *int64) any {
	if t == nil {
		return nil
	}
	return *t
}
