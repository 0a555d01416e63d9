package models

import "time"

// ReplyOutcome is a per-trigger hit count by responder outcome. Trigger is the
// matched keyword or emergency phrase, empty for general replies.
type ReplyOutcome struct {
	Trigger    string
	Outcome    string
	Count      int64
	LastSeenAt time.Time
}
