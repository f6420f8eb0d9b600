package validate

import "regexp"

var (
	phoneRe    = regexp.MustCompile(`^[0-9]{6,15}$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@gmail\.com$`)
	txnIDRe    = regexp.MustCompile(`^[0-9]{6}$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	digitRe    = regexp.MustCompile(`[0-9]`)
	specialRe  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
	spaceRe    = regexp.MustCompile(`\s`)
)

func Phone(phone string) (bool, string) {
	if !phoneRe.MatchString(phone) {
		return false, "Invalid phone number format"
	}
	return true, ""
}

func Password(password string) (bool, string) {
	switch {
	case len(password) < 6:
		return false, "Password must be at least 6 characters"
	case !upperRe.MatchString(password):
		return false, "Password must contain at least one uppercase letter"
	case !digitRe.MatchString(password):
		return false, "Password must contain at least one number"
	case !specialRe.MatchString(password):
		return false, "Password must contain at least one special character"
	}
	return true, ""
}

func Username(username string) (bool, string) {
	switch {
	case len(username) < 3:
		return false, "Username must be at least 3 characters"
	case spaceRe.MatchString(username):
		return false, "Username must not contain spaces"
	case !usernameRe.MatchString(username):
		return false, "Username must contain only English letters and numbers"
	}
	return true, ""
}

func Email(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailRe.MatchString(email) {
		return false, "Must be a valid Gmail address"
	}
	return true, ""
}

// TransactionID accepts the six-digit payment reference users attest with.
func TransactionID(id string) (bool, string) {
	if !txnIDRe.MatchString(id) {
		return false, "Transaction ID must be exactly 6 digits"
	}
	return true, ""
}
