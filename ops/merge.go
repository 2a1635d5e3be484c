package ops

import (
	"errors"
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/tripify"
)

// ErrAmbiguousMatch reports two right-side trips that both qualify as the
// continuation of the same incomplete left-side trip: same raw trip id, both
// present at the right window's opening snapshot. The feed contract says this
// cannot happen; when it does, no tiebreak is defensible, so the merge
// surfaces the conflict instead of picking.
var ErrAmbiguousMatch = errors.New("multiple continuation candidates for raw trip id")

// MergeLogbooks folds a temporally ordered list of logbooks into one. Each
// logbook must cover a window that ends where the next begins. A nil entry
// means "not yet computed" and is skipped; a non-nil empty logbook is a
// legitimately empty window and acts as a merge identity (an empty window
// carries no disappearance timestamp, so open trips stay open across it).
//
// Inputs are consumed: they must not be used after the call.
func MergeLogbooks(books []*tripify.Logbook) (*tripify.Logbook, error) {
	merged := tripify.NewLogbook()
	for i, book := range books {
		if book == nil {
			continue
		}
		var err error
		merged, err = JoinLogbooks(merged, book)
		if err != nil {
			return nil, fmt.Errorf("merging logbook %d: %w", i, err)
		}
	}
	return merged, nil
}

// JoinLogbooks stitches two time-adjacent logbooks together: the left window
// ends where the right window begins. Complete left trips and unmatched right
// trips carry over unchanged. An incomplete left trip whose raw id reappears
// at the right window's opening snapshot is extended with the right trip's
// log; an incomplete left trip with no such continuation is finalized as a
// cancellation at the right window's opening time.
//
// Both inputs are consumed; the result is a new owned logbook.
func JoinLogbooks(left, right *tripify.Logbook) (*tripify.Logbook, error) {
	if right.Len() == 0 {
		return left, nil
	}
	if left.Len() == 0 {
		return right, nil
	}

	// Index incomplete left trips by raw trip id.
	leftByRaw := map[string]string{}
	for uid, log := range left.Logs {
		if log.Incomplete() {
			leftByRaw[log.RawTripID()] = uid
		}
	}

	var rightFirstTS int64
	first := true
	for _, ts := range right.Timestamps {
		for _, t := range ts {
			if first || t < rightFirstTS {
				rightFirstTS = t
				first = false
			}
		}
	}

	rightUIDs := make([]string, 0, len(right.Logs))
	for uid := range right.Logs {
		rightUIDs = append(rightUIDs, uid)
	}
	sort.Strings(rightUIDs)

	// Continuation candidates: raw trip id -> right uid. A right trip only
	// qualifies if it already existed when the right window opened.
	candidates := map[string]string{}
	for _, uid := range rightUIDs {
		log := right.Logs[uid]
		rawID := log.RawTripID()
		if _, ok := leftByRaw[rawID]; !ok {
			left.Logs[uid] = log
			left.Timestamps[uid] = right.Timestamps[uid]
			continue
		}
		if ts := right.Timestamps[uid]; len(ts) > 0 && ts[0] == rightFirstTS {
			if prev, dup := candidates[rawID]; dup {
				return nil, fmt.Errorf("raw trip id %s (candidates %s, %s): %w",
					rawID, prev, uid, ErrAmbiguousMatch)
			}
			candidates[rawID] = uid
		} else {
			// Same raw id, but the trip started mid-window: the id was
			// recycled by a new vehicle. Append it as its own trip.
			left.Logs[uid] = log
			left.Timestamps[uid] = right.Timestamps[uid]
		}
	}

	rawIDs := make([]string, 0, len(leftByRaw))
	for rawID := range leftByRaw {
		rawIDs = append(rawIDs, rawID)
	}
	sort.Strings(rawIDs)

	for _, rawID := range rawIDs {
		leftUID := leftByRaw[rawID]
		if rightUID, ok := candidates[rawID]; ok {
			left.Logs[leftUID] = joinTripLogs(left.Logs[leftUID], right.Logs[rightUID])
			left.Timestamps[leftUID] = append(
				left.Timestamps[leftUID], right.Timestamps[rightUID]...)
		} else {
			// No continuation: the trip vanished at the window boundary.
			left.Logs[leftUID] = tripify.FinishTrip(left.Logs[leftUID], rightFirstTS)
		}
	}
	return left, nil
}

// joinTripLogs merges two trip logs that reflect the same physical trip but
// were built from disjoint observation sets. The earlier log is the base;
// base stations absent from the continuation splice in ahead of it, base
// EnRouteTo guesses before the splice are resolved to StoppedOrSkipped, and
// time bounds are repaired at the seam.
func joinTripLogs(left, right tripify.TripLog) tripify.TripLog {
	if len(left) == 0 {
		return right
	}
	if len(right) == 0 {
		return left
	}
	if minLatest(right) < minLatest(left) {
		left, right = right, left
	}

	stations := tripify.SynthesizeRoute([][]string{stopSequence(left), stopSequence(right)})
	ordinal := make(map[string]int, len(stations))
	for i, s := range stations {
		ordinal[s] = i
	}
	inRight := map[string]bool{}
	for _, e := range right {
		inRight[e.StopID] = true
	}

	join := make(tripify.TripLog, 0, len(left)+len(right))
	for _, e := range left {
		if !inRight[e.StopID] {
			join = append(join, e)
		}
	}
	join = append(join, right...)
	sort.SliceStable(join, func(i, j int) bool {
		return ordinal[join[i].StopID] < ordinal[join[j].StopID]
	})

	// Base-side guesses before the continuation's first station are resolved:
	// the station's presence behind the continuation means the vehicle went
	// past it by the time the continuation was first observed.
	swapIdx := 0
	for i, e := range join {
		if e.StopID == right[0].StopID {
			swapIdx = i
			break
		}
	}
	rightLatest := right[0].LatestInformationTime
	for i := 0; i < swapIdx; i++ {
		if join[i].Action == tripify.EnRouteTo {
			join[i].Action = tripify.StoppedOrSkipped
			join[i].MaximumTime = cloneTime(&rightLatest)
		}
	}
	join[swapIdx].MinimumTime = cloneTime(left[0].MinimumTime)

	// The continuation's first entry may lack lower-bound information its
	// generative action logs never saw. Forward-fill missing minimums, then
	// enforce a running non-decreasing maximum over them.
	var lastMin *int64
	for i := range join {
		if join[i].MinimumTime == nil {
			join[i].MinimumTime = cloneTime(lastMin)
		} else {
			lastMin = join[i].MinimumTime
		}
	}
	var running *int64
	for i := 1; i < len(join); i++ {
		m := join[i].MinimumTime
		if m == nil {
			continue
		}
		if running != nil && *m < *running {
			join[i].MinimumTime = cloneTime(running)
		} else {
			running = m
		}
	}
	if swapIdx > 0 {
		if prev := join[swapIdx-1].MaximumTime; prev != nil {
			if m := join[swapIdx].MinimumTime; m == nil || *m < *prev {
				join[swapIdx].MinimumTime = cloneTime(prev)
			}
		}
	}

	// Backward-fill at most one missing maximum from the following entry.
	// This loses a little precision versus the full information time list,
	// which is no longer available at this point in the sequence.
	wasNil := make([]bool, len(join))
	for i, e := range join {
		wasNil[i] = e.MaximumTime == nil
	}
	for i := len(join) - 2; i >= 0; i-- {
		if wasNil[i] && !wasNil[i+1] {
			join[i].MaximumTime = cloneTime(join[i+1].MaximumTime)
		}
	}
	return join
}

func minLatest(log tripify.TripLog) int64 {
	var min int64
	for i, e := range log {
		if i == 0 || e.LatestInformationTime < min {
			min = e.LatestInformationTime
		}
	}
	return min
}

func stopSequence(log tripify.TripLog) []string {
	out := make([]string, len(log))
	for i, e := range log {
		out[i] = e.StopID
	}
	return out
}

func cloneTime(t *int64) *int64 {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
