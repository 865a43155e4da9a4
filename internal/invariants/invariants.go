// Package invariants exposes a compile-time switch for expensive consistency
// checks. Build with the "invariants" or "race" tag to turn them on.
package invariants
