package domain

import (
	"net/mail"
	"regexp"
	"time"
	"unicode"
	"unicode/utf8"
)

// Atomic field predicates shared by the lifecycle operations. All of them are
// pure: they never touch storage and never panic on hostile input.

// Canadian postal code, "A1A 1A1". Letters are case-insensitive.
var postalCodeRe = regexp.MustCompile(`^[A-Za-z][0-9][A-Za-z] [0-9][A-Za-z][0-9]$`)

// LengthCheck reports whether the length of s is within [min, max],
// inclusive on both ends.
func LengthCheck(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

// RangeCheck reports whether n is within [min, max], inclusive on both ends.
func RangeCheck(n, min, max float64) bool {
	return n >= min && n <= max
}

// NotEmpty reports whether s has at least one character.
func NotEmpty(s string) bool {
	return len(s) > 0
}

// AlphanumericCheck reports whether s is non-empty, contains only letters,
// digits, and spaces, and neither starts nor ends with a space.
func AlphanumericCheck(s string) bool {
	if s == "" {
		return false
	}
	runes := []rune(s)
	if runes[0] == ' ' || runes[len(runes)-1] == ' ' {
		return false
	}
	for _, r := range runes {
		if r != ' ' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// EmailCheck reports whether s is a bare RFC 5322 addr-spec. Display-name
// forms ("Name <a@b.com>") are rejected.
func EmailCheck(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}

// PasswordCheck reports whether s meets the password complexity rules:
// at least 6 characters, at least one upper case letter, one lower case
// letter, and one character that is neither letter nor digit.
func PasswordCheck(s string) bool {
	if utf8.RuneCountInString(s) < 6 {
		return false
	}
	var upper, lower, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			special = true
		}
	}
	return upper && lower && special
}

// PostalCodeCheck reports whether s is a valid Canadian postal code of the
// exact form "A1A 1A1".
func PostalCodeCheck(s string) bool {
	return len(s) == 7 && postalCodeRe.MatchString(s)
}

// DateCheck reports whether d falls strictly between min and max, exclusive
// on both ends. Unlike RangeCheck, the boundary dates themselves fail.
func DateCheck(d, min, max time.Time) bool {
	return d.After(min) && d.Before(max)
}

// DescriptionLengthCheck reports whether the description is strictly longer
// than the title.
func DescriptionLengthCheck(description, title string) bool {
	return utf8.RuneCountInString(description) > utf8.RuneCountInString(title)
}
