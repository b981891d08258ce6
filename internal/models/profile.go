package models

import "time"

const (
	RolePayer     = "payer"
	RolePerformer = "performer"
)

// Profile represents a party in the system, either a paying party or a
// performing party. Balance is tracked in cents.
type Profile struct {
	ID         int64     `json:"id" db:"id"`
	Role       string    `json:"role" db:"role"`
	Profession string    `json:"profession,omitempty" db:"profession"` // meaningful for performers only
	Balance    int64     `json:"balance" db:"balance"`                 // in cents
	FirstName  string    `json:"firstName" db:"first_name"`
	LastName   string    `json:"lastName" db:"last_name"`
	Version    int       `json:"-" db:"version"` // for optimistic locking
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
