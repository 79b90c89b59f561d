package auth

import (
	"regexp"
	"strings"
)

const MinPasswordLength = 8

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[!@#?]`)
)

// PasswordProblems checks every rule and returns all violations; empty means the password is acceptable.
func PasswordProblems(pw string) []string {
	var out []string
	if len(pw) < MinPasswordLength {
		out = append(out, "Password must be at least 8 characters")
	}
	if !upperRe.MatchString(pw) {
		out = append(out, "Password must have at least 1 capital letter")
	}
	if !digitRe.MatchString(pw) {
		out = append(out, "Password must have at least 1 number")
	}
	if !specialRe.MatchString(pw) {
		out = append(out, "Password must have at least 1 special character from (!, @, #, ?)")
	}
	return out
}

// NormalizeUsername lower-cases and trims; every read and write goes through it.
func NormalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}
