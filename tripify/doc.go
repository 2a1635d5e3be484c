// Package tripify contains the core reconstruction algorithm: it turns a
// cleaned sequence of GTFS-Realtime snapshots into a logbook of per-trip,
// per-stop records with time bounds.
//
// Processing happens in two steps. First the snapshot stream is broken up by
// unique trip id: raw trip_id values are not globally unique, they are
// recycled by multiple vehicles over the course of a day, and end-to-end runs
// may have their trip_id silently reassigned. Collate resolves runs of the
// same raw id into distinct identities, and StitchReassignments re-joins runs
// that are heuristically the same physical trip. Then each identity's
// observations are classified into action events and compacted into a trip
// log with the station order synthesized from all partial views.
//
// Logify composes the whole pipeline; the individual stages are exported for
// callers that need finer control.
package tripify
