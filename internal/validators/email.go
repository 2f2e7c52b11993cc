package validators

import (
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// IsEmail checks the syntax of a single address.
func IsEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	return validate.Var(email, "email") == nil
}

// IsEmailDomainValid reports whether the domain part resolves to a mail
// exchanger or at least an address.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
