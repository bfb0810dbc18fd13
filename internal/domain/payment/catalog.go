package payment

import "github.com/Samerabualsoud/jam3a-payments/internal/domain/platform"

// Descriptor is a read-only catalog entry describing a selectable payment
// method for UI presentation.
type Descriptor struct {
	ID   string
	Name string
	Icon string
}

// The four platform-agnostic entries, always first and always in this order.
// mada cards are charged through the credit-card flow.
var baseCatalog = [...]Descriptor{
	{ID: "credit-card", Name: "Credit Card", Icon: "card"},
	{ID: "mada", Name: "mada", Icon: "mada"},
	{ID: "stc-pay", Name: "STC Pay", Icon: "stc"},
	{ID: "tabby", Name: "Tabby", Icon: "tabby"},
}

var (
	applePayEntry  = Descriptor{ID: "apple-pay", Name: "Apple Pay", Icon: "apple"}
	googlePayEntry = Descriptor{ID: "google-pay", Name: "Google Pay", Icon: "google"}
)

// Catalog returns the payment methods offered on the given platform: the
// fixed base entries plus exactly one platform-specific entry appended last.
func Catalog(p platform.Platform) []Descriptor {
	out := make([]Descriptor, 0, len(baseCatalog)+1)
	out = append(out, baseCatalog[:]...)
	if p == platform.IOS {
		return append(out, applePayEntry)
	}
	return append(out, googlePayEntry)
}
