package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ParseFeed decodes a raw GTFS-Realtime protobuf buffer into a Snapshot.
// Alert entities are skipped; fields not in the normalized model are ignored.
func ParseFeed(b []byte) (*Snapshot, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return snapshotFromFeedMessage(&fm), nil
}

func snapshotFromFeedMessage(fm *gtfsrtpb.FeedMessage) *Snapshot {
	snap := &Snapshot{}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		snap.Timestamp = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		switch {
		case e.TripUpdate != nil:
			tu := e.TripUpdate
			msg := TripUpdateMessage{}
			if tu.Trip != nil {
				if tu.Trip.TripId != nil {
					msg.TripID = *tu.Trip.TripId
				}
				if tu.Trip.RouteId != nil {
					msg.RouteID = *tu.Trip.RouteId
				}
				if tu.Trip.StartDate != nil {
					msg.StartDate = *tu.Trip.StartDate
				}
			}
			for _, stu := range tu.StopTimeUpdate {
				if stu.StopId == nil {
					continue
				}
				exp := StopExpectation{StopID: *stu.StopId}
				if stu.Arrival != nil && stu.Arrival.Time != nil {
					t := *stu.Arrival.Time
					exp.Arrival = &t
				}
				if stu.Departure != nil && stu.Departure.Time != nil {
					t := *stu.Departure.Time
					exp.Departure = &t
				}
				msg.StopTimeUpdates = append(msg.StopTimeUpdates, exp)
			}
			snap.Messages = append(snap.Messages, Message{TripUpdate: &msg})

		case e.Vehicle != nil:
			v := e.Vehicle
			msg := VehicleMessage{}
			if v.Trip != nil {
				if v.Trip.TripId != nil {
					msg.TripID = *v.Trip.TripId
				}
				if v.Trip.RouteId != nil {
					msg.RouteID = *v.Trip.RouteId
				}
			}
			if v.CurrentStatus != nil {
				msg.CurrentStatus = statusFromProto(*v.CurrentStatus)
			} else {
				// The GTFS-RT default for current_status is IN_TRANSIT_TO.
				msg.CurrentStatus = InTransitTo
			}
			if v.StopId != nil {
				msg.CurrentStopID = *v.StopId
			}
			if v.Timestamp != nil {
				msg.Timestamp = int64(*v.Timestamp)
			}
			snap.Messages = append(snap.Messages, Message{Vehicle: &msg})
		}
	}
	return snap
}

func statusFromProto(s gtfsrtpb.VehiclePosition_VehicleStopStatus) VehicleStatus {
	switch s {
	case gtfsrtpb.VehiclePosition_INCOMING_AT:
		return IncomingAt
	case gtfsrtpb.VehiclePosition_STOPPED_AT:
		return StoppedAt
	case gtfsrtpb.VehiclePosition_IN_TRANSIT_TO:
		return InTransitTo
	}
	return InTransitTo
}
