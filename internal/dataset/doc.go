// Package dataset provides the tabular data model shared by the MindPulse
// analysis operations: an immutable Table of named, typed columns with a null
// mask, a CSV loader with type inference and an on-disk cache for external
// sources, and the dashboard's row filters.
//
// Tables are read-only once built. Filter and the analysis operations that
// consume tables always allocate new tables, which makes concurrent reads
// from HTTP handlers safe without locking.
package dataset
