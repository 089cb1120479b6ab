package models

// SessionAuth is the durable auth state written on successful login and
// cleared on logout. A zero value (or empty token) means signed out; the
// rest of the system must treat both identically and never fail on it.
type SessionAuth struct {
	Token  string `json:"token"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// Empty reports whether the auth state represents "signed out".
func (a SessionAuth) Empty() bool {
	return a.Token == ""
}
