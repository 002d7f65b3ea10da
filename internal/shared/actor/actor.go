// Package actor describes who is performing an operation. Every core
// operation receives an Actor; its OrgID scopes all data access.
package actor

import "permitflow/internal/shared/constants"

// Actor identifies the caller of a use case. For HTTP requests it is derived
// from verified JWT claims; background workers use System.
type Actor struct {
	UserID uint
	OrgID  uint
	Name   string
}

// System returns the actor attributed to background workers. It carries the
// tenant of the submission being processed so repository scoping still holds.
func System(orgID uint) Actor {
	return Actor{OrgID: orgID, Name: constants.SystemActor}
}

// IsSystem reports whether the actor is a background worker.
func (a Actor) IsSystem() bool {
	return a.Name == constants.SystemActor && a.UserID == 0
}
