package tripify

// SynthesizeRoute merges a series of partial station lists into the full
// route a vehicle may have served, in service order. Each input list is the
// series of stops the vehicle was reported to be heading towards at one point
// in time; successive lists shrink as stops are passed, and may be rewritten
// wholesale by a reroute.
//
// The most recent list always appears in the result as an order-preserving
// subsequence; earlier lists may lose stations the vehicle's plan dropped.
func SynthesizeRoute(stationLists [][]string) []string {
	var route []string
	for _, list := range stationLists {
		route = synthesizeStationLists(route, list)
	}
	return route
}

// synthesizeStationLists is the pairwise synthesis op. The pivot is the first
// pair of equal stops across the two lists; stations before the pivot in the
// left list, then unseen stations before the pivot in the right list, then
// the right remainder. No pivot means the right list shares nothing with the
// left: the vehicle was rerouted, and the lists concatenate.
func synthesizeStationLists(left, right []string) []string {
	pivotLeft, pivotRight := -1, -1
	for j, stationA := range left {
		for k, stationB := range right {
			if stationA == stationB {
				pivotLeft, pivotRight = j, k
				break
			}
		}
		if pivotLeft != -1 {
			break
		}
	}

	if pivotLeft == -1 {
		out := make([]string, 0, len(left)+len(right))
		out = append(out, left...)
		out = append(out, right...)
		return out
	}

	prefix := left[:pivotLeft]
	inPrefix := make(map[string]bool, len(prefix))
	for _, s := range prefix {
		inPrefix[s] = true
	}

	out := make([]string, 0, len(left)+len(right))
	out = append(out, prefix...)
	for _, s := range right[:pivotRight] {
		if !inPrefix[s] {
			out = append(out, s)
		}
	}
	out = append(out, right[pivotRight:]...)
	return out
}
