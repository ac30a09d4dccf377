package models

// Farmer is a registered account. PasswordHash holds a bcrypt hash and
// never leaves the server; JoinedDate is a YYYY-MM-DD string chosen at
// signup.
type Farmer struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Location     string
	PhoneNumber  string
	FarmSize     string
	JoinedDate   string
}
