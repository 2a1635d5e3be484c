package gtfsrt

// Diagnostic type constants. One Diagnostic is produced for every message or
// snapshot dropped during cleanup; processing always continues.
const (
	DiagVehicleWithoutTripUpdate = "vehicle_update_without_trip_update"
	DiagNullTripID               = "null_trip_id"
	DiagEmptyStopSequence        = "empty_stop_sequence"
	DiagDuplicateTimestamp       = "duplicate_timestamp"
	DiagNonsequentialTimestamp   = "nonsequential_timestamp"
)

// Diagnostic records one dropped item: what kind of defect it was, which trip
// it concerned (when known), and the timestamp of the snapshot it came from.
type Diagnostic struct {
	Type      string
	TripID    string
	Timestamp int64
}

// DropInvalidMessages removes messages from a snapshot that violate the
// GTFS-RT spec in ways the publisher is responsible for: vehicle positions
// with no paired trip update, messages with an empty trip id, and trip
// updates with no stop_time_update entries. The snapshot is modified in
// place; one Diagnostic is returned per dropped message.
func DropInvalidMessages(s *Snapshot) []Diagnostic {
	var diags []Diagnostic

	tripUpdateIDs := map[string]bool{}
	for _, m := range s.Messages {
		if m.TripUpdate != nil && m.TripUpdate.TripID != "" &&
			len(m.TripUpdate.StopTimeUpdates) > 0 {
			tripUpdateIDs[m.TripUpdate.TripID] = true
		}
	}

	kept := s.Messages[:0]
	for _, m := range s.Messages {
		switch {
		case m.TripUpdate != nil && m.TripUpdate.TripID == "":
			diags = append(diags, Diagnostic{
				Type: DiagNullTripID, Timestamp: s.Timestamp,
			})
		case m.Vehicle != nil && m.Vehicle.TripID == "":
			diags = append(diags, Diagnostic{
				Type: DiagNullTripID, Timestamp: s.Timestamp,
			})
		case m.TripUpdate != nil && len(m.TripUpdate.StopTimeUpdates) == 0:
			diags = append(diags, Diagnostic{
				Type: DiagEmptyStopSequence, TripID: m.TripUpdate.TripID,
				Timestamp: s.Timestamp,
			})
		case m.Vehicle != nil && !tripUpdateIDs[m.Vehicle.TripID]:
			diags = append(diags, Diagnostic{
				Type: DiagVehicleWithoutTripUpdate, TripID: m.Vehicle.TripID,
				Timestamp: s.Timestamp,
			})
		default:
			kept = append(kept, m)
		}
	}
	s.Messages = kept
	return diags
}

// DropDuplicateSnapshots removes snapshots whose timestamp repeats the
// previous kept snapshot's. Feed archives frequently contain back-to-back
// identical pulls; the later copy carries no information.
func DropDuplicateSnapshots(snapshots []*Snapshot) ([]*Snapshot, []Diagnostic) {
	var diags []Diagnostic
	var kept []*Snapshot
	seen := map[int64]bool{}
	for _, s := range snapshots {
		if seen[s.Timestamp] {
			diags = append(diags, Diagnostic{
				Type: DiagDuplicateTimestamp, Timestamp: s.Timestamp,
			})
			continue
		}
		seen[s.Timestamp] = true
		kept = append(kept, s)
	}
	return kept, diags
}

// DropNonsequentialSnapshots removes snapshots whose timestamp is not
// strictly greater than every previously kept snapshot's. The core requires
// a strictly increasing timestamp sequence; violating it silently corrupts
// identity resolution, so out-of-order snapshots are discarded here.
func DropNonsequentialSnapshots(snapshots []*Snapshot) ([]*Snapshot, []Diagnostic) {
	var diags []Diagnostic
	var kept []*Snapshot
	var high int64
	for _, s := range snapshots {
		if len(kept) > 0 && s.Timestamp <= high {
			diags = append(diags, Diagnostic{
				Type: DiagNonsequentialTimestamp, Timestamp: s.Timestamp,
			})
			continue
		}
		high = s.Timestamp
		kept = append(kept, s)
	}
	return kept, diags
}

// CleanSnapshots applies all cleanup passes in order: per-message validity,
// duplicate timestamps, then timestamp monotonicity. The returned snapshot
// slice satisfies every precondition the core assumes.
func CleanSnapshots(snapshots []*Snapshot) ([]*Snapshot, []Diagnostic) {
	var diags []Diagnostic
	for _, s := range snapshots {
		diags = append(diags, DropInvalidMessages(s)...)
	}
	snapshots, d := DropDuplicateSnapshots(snapshots)
	diags = append(diags, d...)
	snapshots, d = DropNonsequentialSnapshots(snapshots)
	diags = append(diags, d...)
	return snapshots, diags
}
