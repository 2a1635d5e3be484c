package gtfsrt

// VehicleStatus is the position of a vehicle relative to its current stop.
// The zero value, Queued, is the status assumed for trips with no vehicle
// message: the train is scheduled but has not yet entered service.
type VehicleStatus int

const (
	Queued VehicleStatus = iota
	IncomingAt
	StoppedAt
	InTransitTo
)

func (s VehicleStatus) String() string {
	switch s {
	case Queued:
		return "QUEUED"
	case IncomingAt:
		return "INCOMING_AT"
	case StoppedAt:
		return "STOPPED_AT"
	case InTransitTo:
		return "IN_TRANSIT_TO"
	}
	return "UNKNOWN"
}

// StopExpectation is one entry of a trip update's stop_time_update list.
// Arrival and Departure are Unix epoch seconds; nil means the feed did not
// provide that bound, which for a non-terminal stop signals an expected skip.
type StopExpectation struct {
	StopID    string
	Arrival   *int64
	Departure *int64
}

// TripUpdateMessage is the normalized form of a GTFS-RT TripUpdate: the stops
// still ahead of the vehicle, in service order, with predicted times.
type TripUpdateMessage struct {
	TripID          string
	RouteID         string
	StartDate       string
	StopTimeUpdates []StopExpectation
}

// VehicleMessage is the normalized form of a GTFS-RT VehiclePosition.
type VehicleMessage struct {
	TripID        string
	RouteID       string
	CurrentStatus VehicleStatus
	CurrentStopID string
	Timestamp     int64
}

// Message is a tagged union: exactly one of TripUpdate or Vehicle is set.
// Alerts are not represented; ParseFeed skips them.
type Message struct {
	TripUpdate *TripUpdateMessage
	Vehicle    *VehicleMessage
}

// Snapshot is one observation of the whole feed: a header timestamp and the
// messages it carried, in feed order.
type Snapshot struct {
	Timestamp int64
	Messages  []Message
}

// Observation pairs one trip's messages within a single snapshot. It is the
// unit the action classifier consumes. Vehicle is nil for trips that have a
// trip update but no vehicle position (not yet in service).
type Observation struct {
	TripUpdate TripUpdateMessage
	Vehicle    *VehicleMessage
	Timestamp  int64
}

// TripUpdates returns the snapshot's trip update messages in feed order.
func (s *Snapshot) TripUpdates() []TripUpdateMessage {
	var out []TripUpdateMessage
	for _, m := range s.Messages {
		if m.TripUpdate != nil {
			out = append(out, *m.TripUpdate)
		}
	}
	return out
}

// VehicleFor returns the snapshot's vehicle message for a trip id, if any.
func (s *Snapshot) VehicleFor(tripID string) *VehicleMessage {
	for _, m := range s.Messages {
		if m.Vehicle != nil && m.Vehicle.TripID == tripID {
			return m.Vehicle
		}
	}
	return nil
}
