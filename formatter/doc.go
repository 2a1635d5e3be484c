// Package formatter serializes logbooks for storage and analysis.
//
// Three targets are supported:
//   - csv.go: flat CSV with the standard logbook column contract
//   - gtfs.go: a GTFS stop_times.txt-flavored export of confirmed stops
//   - sql.go: a durable Logbooks table via database/sql
//
// The column contract is fixed for downstream compatibility: trip_id,
// route_id, action, minimum_time, maximum_time, stop_id,
// latest_information_time, with unique_trip_id attached when flattened.
package formatter
