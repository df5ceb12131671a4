// Package orchestrator wires the form registry, the resolver and the payload
// checks into a single entry point: pick the form version for a declaration,
// resolve it against the answers, and gate submission on the result.
package orchestrator
