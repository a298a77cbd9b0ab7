package accounts

import "unicode"

const minPasswordLength = 8

// ValidatePassword checks the acceptance policy: at least 8 characters, at
// least one digit or special character, at least one uppercase and one
// lowercase letter. Each rule is a named predicate so failures stay
// attributable.
func ValidatePassword(password string) error {
	if password == "" {
		return invalidField("password", "Password is required.")
	}
	if !hasMinLength(password) || !hasDigitOrSpecial(password) || !hasUppercase(password) || !hasLowercase(password) {
		return invalidField("password", "Password must have 8+ chars, 1 Uppercase, 1 Number, 1 Special Char.")
	}
	return nil
}

// ValidateConfirmation requires byte-for-byte equality with the password.
func ValidateConfirmation(password, confirm string) error {
	if confirm == "" {
		return invalidField("confirm_password", "Confirm Password is required.")
	}
	if password != confirm {
		return invalidField("confirm_password", "Passwords do not match.")
	}
	return nil
}

func hasMinLength(password string) bool {
	return len(password) >= minPasswordLength
}

func hasDigitOrSpecial(password string) bool {
	for _, r := range password {
		if unicode.IsDigit(r) || isSpecial(r) {
			return true
		}
	}
	return false
}

// isSpecial mirrors a regex \W class: anything outside letters, digits and
// underscore.
func isSpecial(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
}

func hasUppercase(password string) bool {
	for _, r := range password {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasLowercase(password string) bool {
	for _, r := range password {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}
