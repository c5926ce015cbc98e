// Package flow correlates out-of-band UI flows with their results.
//
// A flow is launched from an opaque descriptor (typically an intent URI)
// through a Launcher. Its result arrives later, exactly once, either through
// the ResultFunc handed to the launcher or through Deliver (for example from
// the HTTP callback handler), keyed by the launch id.
//
// Only the most recent launch is pending: a new launch supersedes the previous
// one, whose waiter is released with schema.ErrFlowSuperseded, and results
// keyed to a superseded launch are discarded.
package flow
