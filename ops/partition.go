package ops

import (
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"
)

// PartitionOnIncomplete splits a logbook into complete and incomplete parts.
// A trip is incomplete if at least one station is still outstanding, i.e.
// its final entry is EnRouteTo.
func PartitionOnIncomplete(book *tripify.Logbook) (complete, incomplete *tripify.Logbook) {
	complete = tripify.NewLogbook()
	incomplete = tripify.NewLogbook()
	for uid, log := range book.Logs {
		target := complete
		if log.Incomplete() {
			target = incomplete
		}
		target.Logs[uid] = log
		target.Timestamps[uid] = book.Timestamps[uid]
	}
	return complete, incomplete
}

// PartitionOnRoute splits a logbook into per-route logbooks. Useful for I/O:
// on-disk layouts are usually organized by route.
func PartitionOnRoute(book *tripify.Logbook) map[string]*tripify.Logbook {
	out := map[string]*tripify.Logbook{}
	for uid, log := range book.Logs {
		if len(log) == 0 {
			continue
		}
		routeID := log[0].RouteID
		if out[routeID] == nil {
			out[routeID] = tripify.NewLogbook()
		}
		out[routeID].Logs[uid] = log
		out[routeID].Timestamps[uid] = book.Timestamps[uid]
	}
	return out
}
