package models

// User is a credential row. PasswordDigest is a one-way hash and never
// leaves the server.
type User struct {
	Username       string
	PasswordDigest string
	Role           string
}
