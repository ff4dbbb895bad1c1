package validation

import (
	"veridesk/internal/models"
)

// UserRegistration validates a registration payload
func (v *Validator) UserRegistration(in *models.CreateUserInput) {
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, MaxNameLength)
	v.Required("email", in.Email)
	v.Email("email", in.Email)
	v.Required("phone", in.Phone)
	v.Phone("phone", in.Phone)
	v.Password("password", in.Password)

	if in.Role != "" {
		v.In("role", in.Role, []string{"merchant", "support", "bank", "admin"})
	}
}

// Profile validates a merchant business profile payload
func (v *Validator) Profile(in *models.ProfileInput) {
	v.Required("legal_name", in.LegalName)
	v.MaxLength("legal_name", in.LegalName, MaxNameLength)
	v.Required("business_type", in.BusinessType)
	v.In("business_type", in.BusinessType, BusinessTypes)
	v.Required("address", in.Address)
	v.MaxLength("address", in.Address, MaxAddressLength)
	v.Required("city", in.City)
	v.Required("state", in.State)
	v.Required("pincode", in.Pincode)
	v.Matches("pincode", in.Pincode, pincodeRegex, "must be a valid 6-digit pincode")
	v.Required("contact_email", in.ContactEmail)
	v.Email("contact_email", in.ContactEmail)
	v.Required("contact_phone", in.ContactPhone)
	v.Phone("contact_phone", in.ContactPhone)

	if in.GSTIN != "" {
		v.Matches("gstin", in.GSTIN, gstinRegex, "must be a valid GSTIN")
	}
}

// SettlementAccount validates the bank account fields of a profile
func (v *Validator) SettlementAccount(in *models.ProfileInput) {
	v.Required("account_number", in.AccountNumber)
	v.MinLength("account_number", in.AccountNumber, 9)
	v.MaxLength("account_number", in.AccountNumber, 18)
	v.Required("ifsc", in.IFSC)
	v.Matches("ifsc", in.IFSC, ifscRegex, "must be a valid IFSC code")
	v.Required("account_holder", in.AccountHolder)
}
