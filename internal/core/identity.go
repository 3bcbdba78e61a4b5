package core

// Kind classifies a participant. The string values are the platform's wire
// vocabulary and appear verbatim in payloads and stored records.
type Kind string

const (
	KindCustomer      Kind = "customer"
	KindDeliveryAgent Kind = "deliveryAgent"
	KindAdmin         Kind = "admin"
)

// ParseKind maps a wire value to a Kind. Unknown values are rejected rather
// than defaulted; a typo'd kind must not silently become a customer.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindCustomer, KindDeliveryAgent, KindAdmin:
		return Kind(s), true
	default:
		return "", false
	}
}

// Identity names a logical participant. A connection has no identity until
// its first join supplies one.
type Identity struct {
	ID          string
	DisplayName string
	Kind        Kind
}
