package model

import "time"

// User roles.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

type User struct {
	ID       string `json:"id" bson:"id"`
	Email    string `json:"email" bson:"email"`
	Username string `json:"username" bson:"username"`
	// Bcrypt hash. Never serialized to JSON.
	Password  string    `json:"-" bson:"password"`
	FullName  string    `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Country   string    `json:"country" bson:"country"`
	City      string    `json:"city,omitempty" bson:"city,omitempty"`
	Avatar    string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Sanitize clears the password hash before the user leaves the service layer.
func (u *User) Sanitize() *User {
	u.Password = ""
	return u
}

// UserPatch holds fields that can be updated on a user profile.
type UserPatch struct {
	FullName *string
	Phone    *string
	Country  *string
	City     *string
	Avatar   *string
}
