package models

import "time"

type User struct {
	ID        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	MobileNo  string    `json:"mobileNo"`
	Password  string    `json:"-"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role maps the admin flag to the role claim carried in access tokens.
func (u *User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "customer"
}
