package cnst

// GatewayName identifies a payment gateway integration.
type GatewayName string

const (
	GatewayPayTabs GatewayName = "paytabs"
	GatewayStripe  GatewayName = "stripe"
)

func (g GatewayName) String() string {
	return string(g)
}

// ExclusiveWith returns the gateway that must be disabled before g may be
// enabled, or "" when g has no exclusivity constraint. PayTabs and Stripe
// are mutually exclusive.
func (g GatewayName) ExclusiveWith() GatewayName {
	switch g {
	case GatewayPayTabs:
		return GatewayStripe
	case GatewayStripe:
		return GatewayPayTabs
	default:
		return ""
	}
}
