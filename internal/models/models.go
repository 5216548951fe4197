package models

import "time"

type User struct {
	Username    string    `json:"username"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	JoinAt      time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// UserSummary is the public projection embedded in message listings and
// returned by the user index.
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

// Message carries raw usernames on creation and resolved profiles on reads.
// ReadAt stays nil until the recipient marks the message read.
type Message struct {
	ID           int64        `json:"id"`
	FromUsername string       `json:"from_username,omitempty"`
	ToUsername   string       `json:"to_username,omitempty"`
	FromUser     *UserSummary `json:"from_user,omitempty"`
	ToUser       *UserSummary `json:"to_user,omitempty"`
	Body         string       `json:"body"`
	SentAt       time.Time    `json:"sent_at"`
	ReadAt       *time.Time   `json:"read_at"`
}
