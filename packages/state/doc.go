// Package state provides on-demand accessors for the live value under
// verification.
//
// An Accessor re-reads its source on every Get call and never caches,
// so a condition polled over time always sees the current state. Accessors
// carry no retry logic of their own; supplier errors propagate to the
// caller, which for polled conditions means the attempt counts as not yet
// satisfied.
package state
