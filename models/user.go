package models

import "github.com/octabyte/quizmaster-client/enums"

// User is the logged-in identity as derived from the access token claims.
// Profile fields (email, full name) are not carried by the token.
type User struct {
	ID   string     `json:"id"`
	Role enums.Role `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role.IsAdmin()
}
