// Package session owns the client-side protocol state machine.
//
// Ownership boundary:
// - subscription and pending-receipt bookkeeping
// - the per-(channel, reporter) event ledger and summary rendering
// - command/frame dispatch and the session flags both worker loops poll
//
// Two goroutines drive one Engine: the keyboard loop through
// HandleCommand and the socket loop through HandleFrame. A single mutex
// guards all shared state; network writes happen outside it.
package session
