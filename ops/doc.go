// Package ops provides operations defined on whole logbooks: merging the
// logbooks of adjoining time windows, heuristic cleanup of cancelled and
// structurally incomplete trips, and partitioning for I/O.
package ops
