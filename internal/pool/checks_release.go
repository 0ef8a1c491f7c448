//go:build poolrelease

package pool

// DebugChecks is false in ship builds: contract violations (double release,
// foreign entity) become undefined behavior in exchange for hot-path speed.
const DebugChecks = false

const debugChecks = DebugChecks
