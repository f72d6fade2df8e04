// Package entity defines the domain entities for the auth feature.
package entity

// Member is a row of the credential store's users lookup.
// It is read by this system, never written.
type Member struct {
	// Username identifies the principal (members.userid).
	Username string

	// Password is the stored password value (members.pwd).
	// It may carry an encoding prefix such as {bcrypt} or {noop}.
	Password string

	// Active reports whether the principal may log in (members.active).
	Active bool
}
