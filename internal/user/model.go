package user

import "time"

// User is the persisted account record. The password is held only as a
// bcrypt hash and must never be compared by equality.
type User struct {
	ID                int
	FirstName         string
	LastName          string
	Email             string
	EmailVerified     bool
	CountryCode       CountryCode
	PhoneNumber       string
	PhoneVerified     bool
	PasswordHash      []byte
	Role              Role
	CreatedAt         time.Time
	UpdatedAt         time.Time
	PasswordUpdatedAt time.Time
}

// Public is the caller-facing projection of a user. It carries no password
// hash and no verification flags.
type Public struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Public projects the record into its caller-safe shape.
func (u User) Public() Public {
	return Public{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// EmailInfo is the read model for the email verification status endpoint.
type EmailInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}
