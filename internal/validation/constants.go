package validation

import "regexp"

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex   = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	pincodeRegex = regexp.MustCompile(`^[1-9][0-9]{5}$`)
	ifscRegex    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	gstinRegex   = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
)

const (
	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxNameLength    = 120
	MaxAddressLength = 500
	MaxNotesLength   = 1000
)

// BusinessTypes lists the accepted values for a merchant's business type.
var BusinessTypes = []string{
	"sole_proprietorship",
	"partnership",
	"private_limited",
	"public_limited",
	"llp",
	"trust",
}
