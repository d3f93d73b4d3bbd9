package validation

import (
	_ "embed"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Error messages surfaced on the sign-up form. The wording is part of
// the page contract and must not drift.
const (
	MsgFieldRequired    = "This field is required"
	MsgPasswordMismatch = "The two password fields didn't match."
	MsgEntirelyNumeric  = "This password is entirely numeric"
	MsgTooShort         = "This password is too short. It must contain at least 8 characters."
	MsgTooCommon        = "This password is too common"
	MsgUsernameTaken    = "A user with that username already exists."
)

const minPasswordLength = 8

//go:embed common_passwords.txt
var commonPasswordsRaw string

var commonPasswords = func() map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(commonPasswordsRaw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			set[line] = struct{}{}
		}
	}
	return set
}()

// SignUp carries the raw sign-up form values.
type SignUp struct {
	Username  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Password2 string
}

// ValidateSignUp runs the sign-up rule chain in order and returns the
// message of the first rule that fails, or "" when all rules pass.
// Username uniqueness is checked separately against the store.
func ValidateSignUp(in SignUp) string {
	if in.Username == "" || in.Password == "" || in.Password2 == "" {
		return MsgFieldRequired
	}
	if in.Password != in.Password2 {
		return MsgPasswordMismatch
	}
	if isEntirelyNumeric(in.Password) {
		return MsgEntirelyNumeric
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return MsgTooShort
	}
	if field := similarField(in); field != "" {
		return "The password is too similar to the " + field
	}
	if _, common := commonPasswords[strings.ToLower(in.Password)]; common {
		return MsgTooCommon
	}
	return ""
}

func isEntirelyNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

// similarField returns the display name of the first personal field the
// password is too similar to, or "".
func similarField(in SignUp) string {
	checks := []struct {
		name  string
		value string
	}{
		{"username", in.Username},
		{"first name", in.FirstName},
		{"last name", in.LastName},
		{"email", in.Email},
	}

	password := strings.ToLower(in.Password)
	for _, check := range checks {
		if check.value == "" {
			continue
		}
		if tooSimilar(password, strings.ToLower(check.value)) {
			return check.name
		}
	}
	return ""
}
