package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"
)

// WriteStopTimesGTFS writes a GTFS stop_times.txt-flavored export of the
// logbook's resolved stops. Only entries with a known upper bound are
// emitted: an EnRouteTo entry has no defensible arrival time. The arrival
// and departure columns both carry the entry's best arrival estimate (the
// midpoint of its time bounds, or whichever bound exists), rendered in the
// feed's local timezone.
func WriteStopTimesGTFS(w io.Writer, book *tripify.Logbook, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	cw := csv.NewWriter(w)
	header := []string{
		"trip_id", "arrival_time", "departure_time", "stop_id", "stop_sequence",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, uid := range sortedUIDs(book) {
		seq := 1
		for _, e := range book.Logs[uid] {
			estimate, ok := arrivalEstimate(e)
			if !ok {
				continue
			}
			clock := time.Unix(estimate, 0).In(loc).Format("15:04:05")
			row := []string{uid, clock, clock, e.StopID, strconv.Itoa(seq)}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing trip %s: %w", uid, err)
			}
			seq++
		}
	}
	cw.Flush()
	return cw.Error()
}

func arrivalEstimate(e tripify.TripLogEntry) (int64, bool) {
	switch {
	case e.MinimumTime != nil && e.MaximumTime != nil:
		return (*e.MinimumTime + *e.MaximumTime) / 2, true
	case e.MaximumTime != nil:
		return *e.MaximumTime, true
	case e.MinimumTime != nil:
		return *e.MinimumTime, true
	}
	return 0, false
}
