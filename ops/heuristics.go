package ops

import (
	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"
)

// CancellationHeuristic tunes CutCancellations. The defaults are calibrated
// to a minutely polling cadence; feeds polled at a different rate may want a
// longer tolerated tail.
type CancellationHeuristic struct {
	// MaxUncorroboratedTail is the number of unconfirmed trailing entries a
	// log may carry after its last confirmed stop without being suspected of
	// recording a cancellation.
	MaxUncorroboratedTail int
}

// DefaultCancellationHeuristic matches the MTA's minutely feed behavior.
var DefaultCancellationHeuristic = CancellationHeuristic{MaxUncorroboratedTail: 1}

// CutCancellationsLog cuts stops from one trip log that almost certainly
// never happened because the trip was cancelled. A log with no confirmed stop
// at all, observed in only a single batch, is dropped entirely. Otherwise the
// tail after the last confirmed stop is inspected: a longer-than-tolerated
// tail whose entries all share one latest information time is the artifact of
// a single reassignment or cancellation batch and is truncated; a tail with
// genuine time-separated progression is kept.
func CutCancellationsLog(log tripify.TripLog, h CancellationHeuristic) tripify.TripLog {
	if len(log) == 0 {
		return log
	}

	lastStop := -1
	for i, e := range log {
		if e.Action == tripify.StoppedAt {
			lastStop = i
		}
	}

	if lastStop == -1 && sharesLatestInformationTime(log) {
		return log[:0]
	}

	tail := log[lastStop+1:]
	if len(tail) <= h.MaxUncorroboratedTail {
		return log
	}
	if sharesLatestInformationTime(tail) {
		return log[:lastStop+1]
	}
	return log
}

// CutCancellations applies CutCancellationsLog to every trip in a logbook,
// in place. Routes named in exemptRoutes are left untouched: shuttles and
// other short-turn services legitimately produce logs the heuristic would
// misread.
func CutCancellations(book *tripify.Logbook, h CancellationHeuristic, exemptRoutes map[string]bool) {
	for uid, log := range book.Logs {
		if len(log) > 0 && exemptRoutes[log[0].RouteID] {
			continue
		}
		book.Logs[uid] = CutCancellationsLog(log, h)
	}
}

// DiscardPartialLogs drops every trip that touches the logbook's global
// minimum or maximum information time. Such trips were already mid-flight
// when the window opened, or still mid-flight when it closed: this window
// alone cannot have observed them completely.
func DiscardPartialLogs(book *tripify.Logbook) *tripify.Logbook {
	var min, max int64
	seen := false
	for _, log := range book.Logs {
		for _, e := range log {
			t := e.LatestInformationTime
			if !seen {
				min, max = t, t
				seen = true
				continue
			}
			if t < min {
				min = t
			}
			if t > max {
				max = t
			}
		}
	}

	trimmed := tripify.NewLogbook()
	for uid, log := range book.Logs {
		touches := false
		for _, e := range log {
			if e.LatestInformationTime == min || e.LatestInformationTime == max {
				touches = true
				break
			}
		}
		if !touches {
			trimmed.Logs[uid] = log
			trimmed.Timestamps[uid] = book.Timestamps[uid]
		}
	}
	return trimmed
}

func sharesLatestInformationTime(log tripify.TripLog) bool {
	for _, e := range log {
		if e.LatestInformationTime != log[0].LatestInformationTime {
			return false
		}
	}
	return true
}
