// Package verify is the soft-assertion engine: it polls conditions, records
// their outcomes, and raises one aggregate error on demand.
//
// A typed leaf layer builds a condition against a state accessor, then calls
// Engine.Verify with a single options value. Verify never fails on an
// assertion outcome; outcomes accumulate in the session's Queue and are only
// surfaced by Finalize, which raises a single AggregateError listing every
// failed record in original call order. The only errors that escape Verify
// itself are caller-misuse errors such as a negative wait.
package verify
