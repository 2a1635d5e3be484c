package tripify

// BuildTripLog folds the per-observation action logs for one unique trip
// into a single compacted trip log, plus the list of information times the
// log was built from.
//
// The walk keeps three cursors: the next unresolved (information time, first
// action at that time) pair, the next synthesized station, and the next
// information time index. The information time list is padded with a leading
// and trailing nil sentinel so that interval bounds fall out of plain index
// arithmetic: an entry bounded by a sentinel has no bound on that side.
//
// The returned log is unterminated: stations never reached remain EnRouteTo
// with no upper bound. Use FinishTrip once the trip's disappearance time is
// known.
func BuildTripLog(actionLogs [][]ActionEvent) (TripLog, []int64) {
	var logs [][]ActionEvent
	for _, l := range actionLogs {
		if len(l) > 0 {
			logs = append(logs, l)
		}
	}
	if len(logs) == 0 {
		return nil, nil
	}

	// One observation per snapshot and strictly increasing snapshot
	// timestamps mean each action log carries exactly one information time.
	var infoTimes []int64
	var keyData []ActionEvent
	for _, l := range logs {
		if len(infoTimes) == 0 || l[0].InformationTime != infoTimes[len(infoTimes)-1] {
			infoTimes = append(infoTimes, l[0].InformationTime)
			keyData = append(keyData, l[0])
		}
	}

	stationLists := make([][]string, 0, len(logs))
	for _, l := range logs {
		var list []string
		seen := map[string]bool{}
		for _, e := range l {
			if !seen[e.StopID] {
				seen[e.StopID] = true
				list = append(list, e.StopID)
			}
		}
		stationLists = append(stationLists, list)
	}
	stops := SynthesizeRoute(stationLists)

	// Padded information times: index 0 and len-1 are nil sentinels.
	padded := make([]*int64, len(infoTimes)+2)
	for i := range infoTimes {
		t := infoTimes[i]
		padded[i+1] = &t
	}

	tripID := keyData[0].TripID
	routeID := keyData[0].RouteID

	var log TripLog
	kd := 0 // key data cursor
	it := 1 // information time cursor (into padded)
	st := 0 // synthesized station cursor

	passed := map[string]bool{}
	mostRecentPassed := ""

	for kd < len(keyData) && st < len(stops) {
		nextStop := stops[st]
		record := keyData[kd]

		switch {
		case record.StopID != nextStop && !passed[record.StopID]:
			// The record is about a station further down the line: the
			// vehicle stopped at or skipped this one in the interval since
			// the previous observation.
			log = append(log, TripLogEntry{
				TripID:                tripID,
				RouteID:               routeID,
				Action:                StoppedOrSkipped,
				MinimumTime:           copyTime(padded[it-1]),
				MaximumTime:           copyTime(padded[it]),
				StopID:                nextStop,
				LatestInformationTime: *padded[it],
			})
			passed[nextStop] = true
			mostRecentPassed = nextStop
			st++

		case record.StopID != nextStop && record.StopID == mostRecentPassed:
			// A late duplicate report for the station just resolved: the
			// prior entry's upper bound extends to the next observation.
			log[len(log)-1].MaximumTime = copyTime(padded[it+1])
			it++
			kd++

		case record.StopID == nextStop && record.Action == ActionStoppedAt:
			log = append(log, TripLogEntry{
				TripID:                tripID,
				RouteID:               routeID,
				Action:                StoppedAt,
				MinimumTime:           copyTime(padded[it-1]),
				MaximumTime:           copyTime(padded[it+1]),
				StopID:                nextStop,
				LatestInformationTime: *padded[it],
			})
			passed[nextStop] = true
			mostRecentPassed = nextStop
			it++
			kd++
			st++

		default:
			// The station is still a future expectation; nothing to resolve.
			it++
			kd++
		}
	}

	latest := infoTimes[len(infoTimes)-1]
	for _, stop := range stops {
		if !passed[stop] {
			log = append(log, TripLogEntry{
				TripID:                tripID,
				RouteID:               routeID,
				Action:                EnRouteTo,
				MinimumTime:           copyTime(&latest),
				MaximumTime:           nil,
				StopID:                stop,
				LatestInformationTime: latest,
			})
		}
	}
	return log, infoTimes
}

// FinishTrip closes out a trip log at the moment the trip's identity vanished
// from the feed. Disappearance is the only completion or cancellation signal
// GTFS-RT provides: stations still outstanding are crossed out as
// StoppedOrSkipped, and every unknown upper bound becomes the disappearance
// time. Idempotent on an already-closed log.
func FinishTrip(log TripLog, timestamp int64) TripLog {
	out := make(TripLog, len(log))
	for i, e := range log {
		if e.Action == EnRouteTo {
			e.Action = StoppedOrSkipped
		}
		if e.MaximumTime == nil {
			e.MaximumTime = copyTime(&timestamp)
		}
		out[i] = e
	}
	return out
}

func copyTime(t *int64) *int64 {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
