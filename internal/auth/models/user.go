package models

// ============================================================
// User Model
// ============================================================

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	CreatedAt    string `json:"created_at"`
}

// Identity is what a session remembers about its user.
type Identity struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name"`
}

func (u User) Identity() Identity {
	return Identity{Username: u.Username, Name: u.Name}
}
