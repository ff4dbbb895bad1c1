package document

// MaskAadhaar renders an Aadhaar number in the only form allowed to
// reach storage, logs or UI. Separators in the input are ignored.
func MaskAadhaar(number string) string {
	digits := aadhaarSeparators.ReplaceAllString(number, "")
	if len(digits) < 4 {
		return "****-****-****"
	}
	return "****-****-" + digits[len(digits)-4:]
}
