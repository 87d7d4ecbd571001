// Package jsonstate exposes JSON payloads as state accessors.
//
// A Document wraps a JSON source; Path returns an accessor that re-reads a
// gjson path on every Get, so conditions polled against a live source (a
// re-fetched response, a file, a message payload) always see the current
// value. Array bracket notation is accepted and converted to gjson dot
// notation. MatchesSchema builds a condition that validates the current
// value against a JSON Schema.
package jsonstate
