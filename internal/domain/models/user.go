package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is an ordered privilege level. Higher roles include the
// permissions of lower ones.
type Role string

const (
	RoleUser        Role = "USER"
	RoleContributor Role = "CONTRIBUTOR"
	RoleModerator   Role = "MODERATOR"
	RoleExpert      Role = "EXPERT"
	RoleAdmin       Role = "ADMIN"
)

var roleRank = map[Role]int{
	RoleUser:        0,
	RoleContributor: 1,
	RoleModerator:   2,
	RoleExpert:      3,
	RoleAdmin:       4,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// HasAtLeast reports whether r grants at least the privileges of min.
// Unknown roles grant nothing.
func (r Role) HasAtLeast(min Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	minRank, ok := roleRank[min]
	if !ok {
		return false
	}
	return rank >= minRank
}

// User is the account view relevant to the moderation core. The engines
// mutate it only additively: contributionCount on submission,
// approvalCount and reputation on approval.
type User struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Role              Role      `json:"role"`
	ContributionCount int       `json:"contribution_count"`
	ApprovalCount     int       `json:"approval_count"`
	Reputation        int       `json:"reputation"`
	LastActive        time.Time `json:"last_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
