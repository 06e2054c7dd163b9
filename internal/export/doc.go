// Package export serializes tracker export rows into downloadable documents.
//
// Every writer produces the header row from ports.ExportHeader followed by
// one row per tracker, and returns either the complete document or an error.
package export
