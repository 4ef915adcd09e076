package domain

import "time"

// DefaultDisplayName is shown for accounts that never set a display name.
const DefaultDisplayName = "User"

// User models an authenticated account. Accounts are created by registration
// and are never mutated or deleted through this application.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Name returns the display name, falling back to DefaultDisplayName.
func (u *User) Name() string {
	if u.DisplayName == "" {
		return DefaultDisplayName
	}
	return u.DisplayName
}
