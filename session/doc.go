// Package session persists agent transcripts. An agent configured with a
// Store mirrors every message appended to its log under its session id, so a
// conversation can be inspected or audited after the process exits.
//
// The Store interface lives here together with the volatile InMemoryStore.
// Durable backends live in sub-packages (sqlite) so that callers only pay for
// the drivers they wire in.
package session
