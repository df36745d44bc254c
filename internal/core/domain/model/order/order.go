package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrDriverBindingNotAllowed is returned when a driver binding is
	// present on an order whose mode or status cannot carry one.
	ErrDriverBindingNotAllowed = errors.New("driver binding is only allowed on delivery orders out for delivery or completed")

	// ErrReviewRequiresCompletion is returned when a review is attached
	// to an order that has not completed.
	ErrReviewRequiresCompletion = errors.New("review can only be attached to a completed order")
)

// LineItem is a single position on an order.
type LineItem struct {
	Name      string
	Quantity  int
	UnitPrice float64
}

// Subtotal returns the line's contribution to the order total.
func (li LineItem) Subtotal() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

func (li LineItem) validate() error {
	if li.Name == "" {
		return errs.NewValueIsRequiredError("line item name")
	}
	if li.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("line item quantity",
			fmt.Errorf("%d is not greater than 0", li.Quantity))
	}
	if li.UnitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("line item unit price",
			fmt.Errorf("%v is negative", li.UnitPrice))
	}
	return nil
}

// DriverBinding identifies the agent carrying an order. It is written
// exactly once, when the order is claimed into a route.
type DriverBinding struct {
	Name  string
	Phone kernel.Phone
	Color string
}

func (b DriverBinding) validate() error {
	if b.Name == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	if b.Color == "" {
		return errs.NewValueIsRequiredError("driver color")
	}
	return b.Phone.Validate()
}

// Review is an opaque customer review payload attached after completion.
type Review struct {
	Rating  int
	Comment string
	At      time.Time
}

// Order is the aggregate root of the dispatch core. It owns the status
// state machine and the driver binding, and enforces the mode invariants:
// address and sector exist only on delivery orders, a driver binding only
// on delivery orders that are out for delivery or completed.
//
// Orders are created by the ordering flow in Pending and are never
// deleted by this core. All status mutation goes through TransitionTo or
// AssignDriver; a status value computed from a stale read must never be
// written back directly.
type Order struct {
	code          string
	customerName  string
	customerPhone string
	mode          Mode
	address       string
	sectorID      string
	items         []LineItem
	paymentMethod string
	changeFor     float64
	status        Status
	driver        *DriverBinding
	review        *Review
	createdAt     time.Time
	updatedAt     time.Time
	completedAt   *time.Time
	isConstructed bool
}

// NewOrder creates a Pending order with validation. code is the
// externally visible, customer-facing order code; sectorID may be empty
// for delivery orders not yet mapped to a sector and must be empty for
// every other mode.
func NewOrder(
	code string,
	customerName string,
	customerPhone string,
	mode Mode,
	address string,
	sectorID string,
	items []LineItem,
	paymentMethod string,
	changeFor float64,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCode(code),
		o.setCustomer(customerName, customerPhone),
		o.setMode(mode),
		o.setDestination(mode, address, sectorID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.paymentMethod = paymentMethod
	o.changeFor = changeFor

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without replaying
// its history. The stored state is validated against the aggregate
// invariants before use.
func RestoreOrder(
	code string,
	customerName string,
	customerPhone string,
	mode Mode,
	address string,
	sectorID string,
	items []LineItem,
	paymentMethod string,
	changeFor float64,
	status Status,
	driver *DriverBinding,
	review *Review,
	createdAt time.Time,
	updatedAt time.Time,
	completedAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(code, customerName, customerPhone, mode, address, sectorID,
		items, paymentMethod, changeFor, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if driver != nil {
		if mode != Delivery || (status != OutForDelivery && status != Completed) {
			return nil, ErrDriverBindingNotAllowed
		}
		if err = driver.validate(); err != nil {
			return nil, err
		}
		o.driver = driver
	}

	if review != nil && status != Completed {
		return nil, ErrReviewRequiresCompletion
	}

	o.status = status
	o.review = review
	o.updatedAt = updatedAt
	o.completedAt = completedAt

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their codes.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.code == other.code
}

// Code returns the externally visible order code.
func (o *Order) Code() string { return o.code }

// CustomerName returns the customer's display name.
func (o *Order) CustomerName() string { return o.customerName }

// CustomerPhone returns the customer's phone as entered.
func (o *Order) CustomerPhone() string { return o.customerPhone }

// Mode returns the order's delivery mode.
func (o *Order) Mode() Mode { return o.mode }

// Address returns the delivery address; empty for non-delivery orders.
func (o *Order) Address() string { return o.address }

// SectorID returns the delivery sector reference; empty when the order
// has no sector or is not a delivery order.
func (o *Order) SectorID() string { return o.sectorID }

// Items returns the order's line items.
func (o *Order) Items() []LineItem { return o.items }

// PaymentMethod returns the payment method label.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// ChangeFor returns the cash amount the customer will pay with, zero
// when no change is needed.
func (o *Order) ChangeFor() float64 { return o.changeFor }

// Status returns the current state in the order lifecycle.
func (o *Order) Status() Status { return o.status }

// Driver returns the driver binding, nil while unclaimed.
func (o *Order) Driver() *DriverBinding { return o.driver }

// Review returns the attached review, nil when none.
func (o *Order) Review() *Review { return o.review }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last-update timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// CompletedAt returns the completion timestamp, nil until completed.
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// Total returns the computed order total.
func (o *Order) Total() float64 {
	var total float64
	for _, li := range o.items {
		total += li.Subtotal()
	}
	return total
}

// TransitionTo applies a status transition.
//
// The target must be the next state in the order's mode sequence or
// Cancelled; anything else fails with an InvalidTransitionError and
// leaves the order unchanged. Re-applying the current status is a no-op
// success so retried transitions are harmless; the no-op does not touch
// any timestamp, which keeps the completion timestamp stable.
//
// Every applied transition updates the last-update timestamp. Entering
// Completed stamps the completion timestamp; entering Cancelled drops
// the driver binding, since only out-for-delivery and completed orders
// may carry one.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	if target == o.status {
		return nil
	}

	if err := o.status.CanTransition(target, o.mode); err != nil {
		return err
	}

	o.status = target
	o.updatedAt = now

	switch target {
	case Completed:
		if o.completedAt == nil {
			completed := now
			o.completedAt = &completed
		}
	case Cancelled:
		o.driver = nil
	}

	return nil
}

// AssignDriver claims the order into an agent's route: it binds the
// driver identity and moves the order to OutForDelivery in one step.
//
// Only delivery orders in ReadyForDelivery can be claimed. The storage
// layer must additionally guard this with a conditional write on the
// status so that two agents can never both claim the same order.
func (o *Order) AssignDriver(binding DriverBinding, now time.Time) error {
	if err := binding.validate(); err != nil {
		return err
	}

	if o.mode != Delivery || o.status != ReadyForDelivery {
		return errs.NewInvalidTransitionError(o.status.String(), OutForDelivery.String())
	}

	o.driver = &binding
	o.status = OutForDelivery
	o.updatedAt = now
	return nil
}

// BelongsTo reports whether the order's driver binding matches the given
// identity, using normalized phone comparison.
func (o *Order) BelongsTo(phone kernel.Phone) bool {
	return o.driver != nil && o.driver.Phone.IsEqual(phone)
}

// AttachReview stores a customer review on a completed order.
func (o *Order) AttachReview(review Review, now time.Time) error {
	if o.status != Completed {
		return ErrReviewRequiresCompletion
	}

	o.review = &review
	o.updatedAt = now
	return nil
}

func (o *Order) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("order code")
	}
	o.code = code
	return nil
}

func (o *Order) setCustomer(name, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customerName = name
	o.customerPhone = phone
	return nil
}

func (o *Order) setMode(mode Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	o.mode = mode
	return nil
}

func (o *Order) setDestination(mode Mode, address, sectorID string) error {
	if mode == Delivery {
		if address == "" {
			return errs.NewValueIsRequiredError("delivery address")
		}
		o.address = address
		o.sectorID = sectorID
		return nil
	}

	if address != "" || sectorID != "" {
		return errs.NewValueIsInvalidErrorWithCause("destination",
			fmt.Errorf("%s orders cannot have an address or sector", mode))
	}
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	for _, li := range items {
		if err := li.validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
