package tripify

import (
	"sort"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/gtfsrt"
)

// collatedTrip is one disambiguated identity and its observations, in
// snapshot order.
type collatedTrip struct {
	uid string
	obs []gtfsrt.Observation
}

// collateSnapshot pairs each trip update in a snapshot with its vehicle
// message, keyed on raw trip id. The validator guarantees per-trip data is
// already deduplicated within a snapshot.
func collateSnapshot(s *gtfsrt.Snapshot) map[string]gtfsrt.Observation {
	out := map[string]gtfsrt.Observation{}
	for _, m := range s.Messages {
		if m.TripUpdate == nil {
			continue
		}
		out[m.TripUpdate.TripID] = gtfsrt.Observation{
			TripUpdate: *m.TripUpdate,
			Vehicle:    s.VehicleFor(m.TripUpdate.TripID),
			Timestamp:  s.Timestamp,
		}
	}
	return out
}

// collate disambiguates recycled raw trip ids across a snapshot sequence.
// For each raw id, every maximal contiguous run of snapshots mentioning it
// becomes one identity with a fresh process-unique id: a gap means the id was
// freed and reused by another vehicle, not that the same trip disappeared and
// came back. Output order is deterministic (first appearance of the raw id in
// the stream, then run start).
func collate(snapshots []*gtfsrt.Snapshot) []collatedTrip {
	keymaps := make([]map[string]gtfsrt.Observation, len(snapshots))
	for i, s := range snapshots {
		keymaps[i] = collateSnapshot(s)
	}

	var rawIDs []string
	seen := map[string]bool{}
	for _, km := range keymaps {
		ids := make([]string, 0, len(km))
		for id := range km {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				rawIDs = append(rawIDs, id)
			}
		}
	}

	var trips []collatedTrip
	for _, rawID := range rawIDs {
		var current *collatedTrip
		for _, km := range keymaps {
			obs, present := km[rawID]
			switch {
			case present && current == nil:
				trips = append(trips, collatedTrip{uid: uuid.NewString()})
				current = &trips[len(trips)-1]
				current.obs = append(current.obs, obs)
			case present:
				current.obs = append(current.obs, obs)
			default:
				current = nil
			}
		}
	}
	return trips
}

// stitchReassignments re-joins identity runs that are heuristically the same
// physical trip whose raw id was swapped without warning. Two runs are
// stitched when the swap was atomic: the old id's last snapshot is
// immediately followed by the new id's first snapshot, both runs share a
// route id, and the new run begins at the old run's first remaining planned
// stop.
func stitchReassignments(trips []collatedTrip, timestamps []int64) []collatedTrip {
	tsIndex := make(map[int64]int, len(timestamps))
	for i, ts := range timestamps {
		tsIndex[ts] = i
	}

	// Candidate index: route id -> run start timestamp -> trip positions.
	stMap := map[string]map[int64][]int{}
	for i, t := range trips {
		route := t.obs[0].TripUpdate.RouteID
		start := t.obs[0].Timestamp
		if stMap[route] == nil {
			stMap[route] = map[int64][]int{}
		}
		stMap[route][start] = append(stMap[route][start], i)
	}

	merged := map[int]bool{}
	var out []collatedTrip
	for i, t := range trips {
		if merged[i] {
			continue
		}

		route := t.obs[0].TripUpdate.RouteID
		lastObs := t.obs[len(t.obs)-1]
		idx, ok := tsIndex[lastObs.Timestamp]
		if !ok || idx+1 >= len(timestamps) {
			// The run survived to the end of the window; nothing follows it.
			out = append(out, t)
			continue
		}
		endTS := timestamps[idx+1]

		if len(lastObs.TripUpdate.StopTimeUpdates) == 0 {
			out = append(out, t)
			continue
		}

		stitched := t
		firstRemaining := lastObs.TripUpdate.StopTimeUpdates[0].StopID
		for _, j := range stMap[route][endTS] {
			if j == i || merged[j] {
				continue
			}
			candidate := trips[j]
			if len(candidate.obs[0].TripUpdate.StopTimeUpdates) > 0 &&
				candidate.obs[0].TripUpdate.StopTimeUpdates[0].StopID == firstRemaining {
				stitched.obs = append(append([]gtfsrt.Observation{}, t.obs...), candidate.obs...)
				merged[j] = true
				break
			}
		}
		out = append(out, stitched)
	}
	return out
}

// Collate breaks a snapshot sequence into per-identity observation lists.
// Snapshot timestamps must be strictly increasing (CleanSnapshots guarantees
// this). Keys are process-unique trip ids, never reused.
func Collate(snapshots []*gtfsrt.Snapshot) map[string][]gtfsrt.Observation {
	out := map[string][]gtfsrt.Observation{}
	for _, t := range collate(snapshots) {
		out[t.uid] = t.obs
	}
	return out
}

// StitchReassignments applies the raw-id reassignment heuristic to a collated
// observation map. The timestamps slice must be the full snapshot timestamp
// sequence the map was collated from. Candidate runs are considered in a
// deterministic order (run start time, then raw trip id, then unique id).
func StitchReassignments(
	collated map[string][]gtfsrt.Observation, timestamps []int64,
) map[string][]gtfsrt.Observation {
	trips := make([]collatedTrip, 0, len(collated))
	for uid, obs := range collated {
		trips = append(trips, collatedTrip{uid: uid, obs: obs})
	}
	sort.Slice(trips, func(i, j int) bool {
		a, b := trips[i], trips[j]
		if a.obs[0].Timestamp != b.obs[0].Timestamp {
			return a.obs[0].Timestamp < b.obs[0].Timestamp
		}
		if a.obs[0].TripUpdate.TripID != b.obs[0].TripUpdate.TripID {
			return a.obs[0].TripUpdate.TripID < b.obs[0].TripUpdate.TripID
		}
		return a.uid < b.uid
	})

	out := map[string][]gtfsrt.Observation{}
	for _, t := range stitchReassignments(trips, timestamps) {
		out[t.uid] = t.obs
	}
	return out
}
