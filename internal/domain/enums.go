package domain

// UserRole defines the account role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// TaxType identifies which engine produced a saved calculation.
type TaxType string

const (
	TaxTypePIT         TaxType = "pit"
	TaxTypeCIT         TaxType = "cit"
	TaxTypeCGT         TaxType = "cgt"
	TaxTypeVAT         TaxType = "vat"
	TaxTypeVATBusiness TaxType = "vat_business"
)

// AllTaxTypes lists every valid TaxType for validation and stats grouping.
var AllTaxTypes = []TaxType{TaxTypePIT, TaxTypeCIT, TaxTypeCGT, TaxTypeVAT, TaxTypeVATBusiness}

// ValidTaxType reports whether t is a known tax type.
func ValidTaxType(t TaxType) bool {
	for _, known := range AllTaxTypes {
		if t == known {
			return true
		}
	}
	return false
}
