package domain

import "time"

// User is an account that can sign in and act as requester or admin
type User struct {
	ID           int64
	Username     string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Actor returns the session identity of the user
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
