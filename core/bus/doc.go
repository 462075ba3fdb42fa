// Package bus provides best-effort publication of market delta events.
//
// The upload pipeline emits at most three event kinds per processed upload:
// listings added, listings removed, and sales added. Publication is
// fire-and-forget; a failed publish is logged and never surfaced to the
// uploader, and never rolls back the already-committed storage write.
package bus
