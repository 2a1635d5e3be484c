package tripify

// LogAction is the resolved state of one stop in a trip log.
type LogAction string

const (
	// StoppedAt: the vehicle was confirmed stopped at the station.
	StoppedAt LogAction = "STOPPED_AT"
	// StoppedOrSkipped: the vehicle either stopped at or passed the station
	// inside a known time interval; the feed never confirmed which.
	StoppedOrSkipped LogAction = "STOPPED_OR_SKIPPED"
	// EnRouteTo: the station was still ahead of the vehicle at the last
	// observation; no upper time bound exists.
	EnRouteTo LogAction = "EN_ROUTE_TO"
)

// TripLogEntry records what happened at one station of one trip.
// MinimumTime and MaximumTime bound the event in Unix epoch seconds; a nil
// bound is unknown. An EnRouteTo entry always has a nil MaximumTime, and
// after finalization no nil bound and no EnRouteTo entry survives.
type TripLogEntry struct {
	TripID                string
	RouteID               string
	Action                LogAction
	MinimumTime           *int64
	MaximumTime           *int64
	StopID                string
	LatestInformationTime int64
}

// TripLog is the ordered per-stop record for one unique trip, in synthesized
// station order.
type TripLog []TripLogEntry

// Incomplete reports whether the trip still has outstanding stations, i.e.
// whether its final entry is EnRouteTo.
func (l TripLog) Incomplete() bool {
	return len(l) > 0 && l[len(l)-1].Action == EnRouteTo
}

// RawTripID returns the feed-provided trip id the log was built from.
func (l TripLog) RawTripID() string {
	if len(l) == 0 {
		return ""
	}
	return l[0].TripID
}

// Logbook maps unique trip ids to trip logs for one processed window,
// alongside the information times each log was built from. The timestamp
// lists are required by the merge engine.
type Logbook struct {
	Logs       map[string]TripLog
	Timestamps map[string][]int64
}

// NewLogbook returns an empty logbook.
func NewLogbook() *Logbook {
	return &Logbook{
		Logs:       map[string]TripLog{},
		Timestamps: map[string][]int64{},
	}
}

// Len returns the number of trips in the logbook.
func (b *Logbook) Len() int { return len(b.Logs) }
