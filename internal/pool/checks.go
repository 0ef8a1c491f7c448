//go:build !poolrelease

package pool

// DebugChecks reports whether contract-violation checks are compiled in.
// Default builds keep them; ship builds disable them with -tags poolrelease
// to keep the acquire/release hot path branch-free.
const DebugChecks = true

const debugChecks = DebugChecks
