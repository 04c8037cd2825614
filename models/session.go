package models

// Session is the in-memory view of who is logged in. User and Token are always set or
// cleared together.
type Session struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"-"`
}

func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

func (s Session) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin()
}
