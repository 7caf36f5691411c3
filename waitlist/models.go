package waitlist

import "time"

// Status tracks where a signup sits in the launch pipeline. New rows always
// start out pending; anything past that is flipped by operators, not by the
// signup flow.
type Status string

const StatusPending Status = "pending"

// Submission carries the three fields collected by the signup form. It is
// assembled in full before the single insert; there is no partial submission.
type Submission struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Record mirrors a waitlist row as stored.
type Record struct {
	ID        string
	FullName  string
	Email     string
	Username  string
	Status    Status
	CreatedAt time.Time
}
