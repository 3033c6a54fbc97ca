package user

// User is a registered account. Only the bcrypt hash of the password is
// retained.
type User struct {
	ID           string
	Username     string
	PasswordHash string
}

// Public is the view of a user returned by the auth endpoints.
type Public struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Public strips the credential material from a User.
func (u User) Public() Public {
	return Public{ID: u.ID, Username: u.Username}
}
