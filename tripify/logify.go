package tripify

import (
	"fmt"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/gtfsrt"
)

// Logify builds a logbook from a cleaned snapshot sequence. Snapshots must
// have strictly increasing timestamps and be free of the defects
// gtfsrt.CleanSnapshots removes; the core does not re-validate.
//
// Identities that vanish before the final snapshot are finalized with the
// timestamp of the first snapshot that no longer mentions them. Identities
// still present in the final snapshot are left unterminated; a later window
// can extend or cancel them via ops.MergeLogbooks.
func Logify(snapshots []*gtfsrt.Snapshot) (*Logbook, error) {
	book := NewLogbook()
	if len(snapshots) == 0 {
		return book, nil
	}

	timestamps := make([]int64, len(snapshots))
	tsIndex := make(map[int64]int, len(snapshots))
	for i, s := range snapshots {
		timestamps[i] = s.Timestamp
		tsIndex[s.Timestamp] = i
	}
	lastTimestamp := timestamps[len(timestamps)-1]

	trips := stitchReassignments(collate(snapshots), timestamps)

	for _, t := range trips {
		actionLogs := make([][]ActionEvent, 0, len(t.obs))
		for _, obs := range t.obs {
			actions, err := Actionify(obs)
			if err != nil {
				return nil, fmt.Errorf("classifying trip %s: %w", t.uid, err)
			}
			actionLogs = append(actionLogs, actions)
		}

		log, times := BuildTripLog(actionLogs)

		lastSeen := t.obs[len(t.obs)-1].Timestamp
		if lastSeen < lastTimestamp {
			// The identity vanished mid-window; the first snapshot that no
			// longer mentions it dates the disappearance.
			log = FinishTrip(log, timestamps[tsIndex[lastSeen]+1])
		}

		book.Logs[t.uid] = log
		book.Timestamps[t.uid] = times
	}
	return book, nil
}
