package tripify

import (
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/gtfsrt-tripbook/gtfsrt"
)

// Action classifies what one observation says about one stop.
type Action string

const (
	ActionStoppedAt         Action = "STOPPED_AT"
	ActionExpectedToArrive  Action = "EXPECTED_TO_ARRIVE_AT"
	ActionExpectedToDepart  Action = "EXPECTED_TO_DEPART_AT"
	ActionExpectedToSkip    Action = "EXPECTED_TO_SKIP"
)

// ActionEvent is one classified event. Events are produced per observation
// and consumed immediately by trip-log synthesis; they are never persisted.
type ActionEvent struct {
	TripID          string
	RouteID         string
	InformationTime int64
	Action          Action
	StopID          string
	TimeAssigned    *int64
}

// ErrUnclassifiable reports a stop position that matched none of the
// classification rules. This indicates corrupt input that passed validation,
// or a logic defect; either way the batch cannot be trusted to produce
// correct time bounds, so processing must abort rather than continue.
var ErrUnclassifiable = errors.New("observation matched no classification rule")

// Actionify converts one trip's view within one snapshot into an ordered
// action log. The vehicle status is taken from the vehicle message, or
// Queued if the trip has none (it has not entered service yet).
func Actionify(obs gtfsrt.Observation) ([]ActionEvent, error) {
	status := gtfsrt.Queued
	if obs.Vehicle != nil {
		status = obs.Vehicle.CurrentStatus
	}

	tu := obs.TripUpdate
	base := ActionEvent{
		TripID:          tu.TripID,
		RouteID:         tu.RouteID,
		InformationTime: obs.Timestamp,
	}

	var log []ActionEvent
	emit := func(action Action, stopID string, t *int64) {
		e := base
		e.Action = action
		e.StopID = stopID
		e.TimeAssigned = t
		log = append(log, e)
	}

	for i, stu := range tu.StopTimeUpdates {
		first := i == 0
		last := i == len(tu.StopTimeUpdates)-1
		enRoute := status == gtfsrt.InTransitTo || status == gtfsrt.IncomingAt

		switch {
		case first && status == gtfsrt.StoppedAt:
			emit(ActionStoppedAt, stu.StopID, stu.Arrival)

		case first && status == gtfsrt.Queued:
			emit(ActionExpectedToDepart, stu.StopID, stu.Departure)

		case (first && enRoute && stu.Arrival != nil && stu.Departure != nil) ||
			(!first && !last && stu.Arrival != nil && stu.Departure != nil):
			emit(ActionExpectedToArrive, stu.StopID, stu.Arrival)
			emit(ActionExpectedToDepart, stu.StopID, stu.Departure)

		case !last && (stu.Arrival == nil || stu.Departure == nil):
			if stu.Arrival == nil {
				emit(ActionExpectedToSkip, stu.StopID, stu.Departure)
			} else {
				emit(ActionExpectedToSkip, stu.StopID, stu.Arrival)
			}

		case last && !first:
			emit(ActionExpectedToArrive, stu.StopID, stu.Arrival)

		case last && first && enRoute:
			emit(ActionExpectedToArrive, stu.StopID, stu.Arrival)

		default:
			return nil, fmt.Errorf(
				"trip %s stop %s (position %d, status %s): %w",
				tu.TripID, stu.StopID, i, status, ErrUnclassifiable,
			)
		}
	}
	return log, nil
}
