package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"
)

// Header is the flattened logbook column contract. It is not negotiable:
// downstream CSV, GTFS, and SQL consumers all key on these names.
var Header = []string{
	"unique_trip_id", "trip_id", "route_id", "action",
	"minimum_time", "maximum_time", "stop_id", "latest_information_time",
}

// WriteCSV writes a logbook as flat CSV, one row per trip log entry, trips
// ordered by unique trip id for reproducible output.
func WriteCSV(w io.Writer, book *tripify.Logbook) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, uid := range sortedUIDs(book) {
		for _, e := range book.Logs[uid] {
			row := []string{
				uid,
				e.TripID,
				e.RouteID,
				string(e.Action),
				formatOptionalTime(e.MinimumTime),
				formatOptionalTime(e.MaximumTime),
				e.StopID,
				strconv.FormatInt(e.LatestInformationTime, 10),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing trip %s: %w", uid, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func sortedUIDs(book *tripify.Logbook) []string {
	uids := make([]string, 0, len(book.Logs))
	for uid := range book.Logs {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	return uids
}

func formatOptionalTime(t *int64) string {
	if t == nil {
		return ""
	}
	return strconv.FormatInt(*t, 10)
}
