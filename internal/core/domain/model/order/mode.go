package order

import "dispatch/internal/pkg/errs"

// Mode determines which status sequence an order follows and whether it
// carries an address and a sector reference.
type Mode int

const (
	// ModeUnknown represents an invalid or undefined mode.
	ModeUnknown Mode = iota

	// Delivery orders travel through the dispatch pipeline and are the
	// only orders with an address, a sector and a driver binding.
	Delivery

	// Pickup orders are collected by the customer.
	Pickup

	// DineIn orders are served on site.
	DineIn
)

func getModeStrings() map[Mode]string {
	return map[Mode]string{
		ModeUnknown: "unknown",
		Delivery:    "delivery",
		Pickup:      "pickup",
		DineIn:      "dine-in",
	}
}

// ModeFromString parses the wire representation of a mode.
func ModeFromString(s string) (Mode, error) {
	for mode, str := range getModeStrings() {
		if str == s && mode != ModeUnknown {
			return mode, nil
		}
	}
	return ModeUnknown, errs.NewValueIsInvalidError("mode")
}

// String returns the wire representation of the mode.
func (m Mode) String() string {
	if str, ok := getModeStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the Mode is one of the defined modes.
func (m Mode) Validate() error {
	if m != Delivery && m != Pickup && m != DineIn {
		return errs.NewValueIsInvalidError("mode")
	}
	return nil
}

// sequence returns the mode's full status progression, first to last.
func (m Mode) sequence() []Status {
	if m == Delivery {
		return []Status{Pending, Preparing, Packing, ReadyForDelivery, OutForDelivery, Completed}
	}
	return []Status{Pending, Preparing, ReadyForPickup, Completed}
}
