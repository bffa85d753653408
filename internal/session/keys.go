// Package session provides the per-session key-value stores backing the
// submission throttle: Redis when configured, an in-process map when not.
package session

// LastSubmissionKey is the store key holding a session's last accepted
// submission time (unix seconds).
func LastSubmissionKey(sessionID string) string {
	return "contact:last:" + sessionID
}
