// Package pricing is the static role fee table: fixed FRW amounts and the
// localized payment notices shown before signup. Pure lookups, no error
// paths; the role enum is closed and every value maps to an amount.
package pricing

// Role mirrors the registration roles. Declared here so the table has no
// dependencies and stays usable from any layer.
type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleBuyer       Role = "buyer"
	RoleTransporter Role = "transporter"
	RoleAdmin       Role = "admin"
)

// BuyerPortalAmount is the verification fee charged by the standalone buyer
// portal flow, which is cheaper than buyer registration from the main form.
const BuyerPortalAmount = 500

var amounts = map[Role]int{
	RoleFarmer:      2500,
	RoleBuyer:       1500,
	RoleTransporter: 1000,
	RoleAdmin:       0,
}

// AmountForRole returns the activation fee in FRW minor units for the main
// signup flow. Unknown values fall back to the farmer fee, matching the
// form's default role.
func AmountForRole(role Role) int {
	if amount, ok := amounts[role]; ok {
		return amount
	}
	return amounts[RoleFarmer]
}

type notice struct {
	en string
	fr string
	rw string
}

var notices = map[Role]notice{
	RoleFarmer: {
		en: "Payment Required: 2,500 FRW activation fee",
		fr: "Paiement requis: Frais d'activation de 2,500 FRW",
		rw: "Kwishyura birasabwa: Amafaranga yo gutangiza 2,500 FRW",
	},
	RoleBuyer: {
		en: "Payment Required: 1,500 FRW verification fee",
		fr: "Paiement requis: Frais de vérification de 1,500 FRW",
		rw: "Kwishyura birasabwa: Amafaranga yo kwemeza 1,500 FRW",
	},
	RoleTransporter: {
		en: "Payment Required: 1,000 FRW registration fee",
		fr: "Paiement requis: Frais d'inscription de 1,000 FRW",
		rw: "Kwishyura birasabwa: Amafaranga yo kwiyandikisha 1,000 FRW",
	},
	RoleAdmin: {
		en: "Admin registration - No payment required",
		fr: "Inscription admin - Aucun paiement requis",
		rw: "Kwiyandikisha kwa admin - Ntakwishyura bisabwa",
	},
}

// Notice returns the localized payment notice for a role. Unknown roles get
// the farmer notice; unknown languages fall back to English.
func Notice(role Role, lang string) string {
	n, ok := notices[role]
	if !ok {
		n = notices[RoleFarmer]
	}
	switch lang {
	case "fr":
		return n.fr
	case "rw":
		return n.rw
	default:
		return n.en
	}
}
