// Package gtfsrt decodes GTFS-Realtime protobuf feeds into the normalized
// message model the rest of the module consumes, and cleans snapshot streams
// before processing.
//
// The main entry points are:
//   - ParseFeed: raw protobuf bytes -> *Snapshot
//   - CleanSnapshots: drop malformed, duplicate, and out-of-order data, with
//     a structured diagnostic for every dropped item
//   - Client: a small HTTP helper for fetching feeds (CLI convenience;
//     library users should fetch data themselves)
package gtfsrt
