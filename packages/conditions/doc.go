// Package conditions builds poll.Condition values from accessors and
// comparison rules.
//
// Supported comparisons:
//   - Equality with numeric and string coercion (Equals, NotEquals, In)
//   - Substring and affix checks (Contains, StartsWith, EndsWith)
//   - Regular expression matching (Matches)
//   - Presence checks (Nil, NotNil)
//   - Structural checks (Length, TypeOf)
//   - Arbitrary predicates (Satisfies, IsTrue, IsFalse)
//
// All comparisons are null-safe: an absent actual value yields a false
// verdict rather than a panic, since the value under verification may
// legitimately not exist yet. Not pre-negates a condition so the poller
// only ever waits for true.
package conditions
