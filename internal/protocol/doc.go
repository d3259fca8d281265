// Package protocol owns the STOMP 1.2 vocabulary shared by the frame
// codec and the session engine.
//
// Ownership boundary:
// - frame command verbs and their direction predicates
// - standard header names
//
// The wire representation itself lives in protocol/frame; session state
// lives in protocol/session.
package protocol
