// Package routes provides the legal domain taxonomy and the static
// route/glossary reference data the engine selects from.
package routes

// Domain is a legal subject-matter category.
type Domain string

const (
	DomainFamily           Domain = "family_law"
	DomainCriminal         Domain = "criminal_law"
	DomainCorporate        Domain = "corporate_law"
	DomainProperty         Domain = "property_law"
	DomainEmployment       Domain = "employment_law"
	DomainImmigration      Domain = "immigration_law"
	DomainIntellectualProp Domain = "intellectual_property"
	DomainTax              Domain = "tax_law"
	DomainConstitutional   Domain = "constitutional_law"
	DomainContract         Domain = "contract_law"
	DomainTort             Domain = "tort_law"
	DomainBankruptcy       Domain = "bankruptcy_law"

	// DomainUnknown is returned when the classifier's confidence is below
	// the configured threshold.
	DomainUnknown Domain = "unknown"
)

// AllDomains lists every classifiable domain, excluding DomainUnknown.
func AllDomains() []Domain {
	return []Domain{
		DomainFamily,
		DomainCriminal,
		DomainCorporate,
		DomainProperty,
		DomainEmployment,
		DomainImmigration,
		DomainIntellectualProp,
		DomainTax,
		DomainConstitutional,
		DomainContract,
		DomainTort,
		DomainBankruptcy,
	}
}

// Valid reports whether d is a known domain (including DomainUnknown).
func (d Domain) Valid() bool {
	if d == DomainUnknown {
		return true
	}
	for _, known := range AllDomains() {
		if d == known {
			return true
		}
	}
	return false
}

// String returns the domain label.
func (d Domain) String() string {
	return string(d)
}

// ParseDomain converts a label to a Domain, returning DomainUnknown for
// unrecognized labels.
func ParseDomain(s string) Domain {
	d := Domain(s)
	if d.Valid() {
		return d
	}
	return DomainUnknown
}
