package domain

// Session is the record of the currently authenticated user and their
// backend bearer token. It is owned exclusively by the session store:
// populated wholesale on login, cleared wholesale on logout. A reader sees
// either both fields or neither, never a user without a token.
type Session struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}

// IsEmpty reports whether no user is logged in.
func (s Session) IsEmpty() bool {
	return s.User == nil || s.Token == ""
}
