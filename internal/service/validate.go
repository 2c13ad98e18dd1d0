package service

import "net/mail"

// validEmail reports whether the string is a bare, syntactically valid
// address. Display-name forms ("Alice <alice@example.com>") are rejected;
// only the plain addr-spec is accepted.
func validEmail(email string) bool {
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
