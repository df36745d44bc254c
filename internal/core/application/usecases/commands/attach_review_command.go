package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAttachReviewCommandIsNotConstructed = errors.New(
	"AttachReviewCommand must be created via NewAttachReviewCommand constructor",
)

const (
	minReviewRating = 1
	maxReviewRating = 5
)

// AttachReviewCommand attaches a customer review to a completed order.
type AttachReviewCommand struct { //nolint:recvcheck //using for validation
	orderCode string
	rating    int
	comment   string

	guard guard.ConstructorGuard
}

// NewAttachReviewCommand creates a review attachment for the order.
func NewAttachReviewCommand(orderCode string, rating int, comment string) (AttachReviewCommand, error) {
	command := AttachReviewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderCode(orderCode),
		command.setRating(rating),
	); err != nil {
		return AttachReviewCommand{}, err
	}

	command.comment = comment

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachReviewCommand) Validate() error {
	return c.guard.Validate(ErrAttachReviewCommandIsNotConstructed)
}

// OrderCode returns the code of the reviewed order.
func (c AttachReviewCommand) OrderCode() string {
	return c.orderCode
}

// Rating returns the star rating.
func (c AttachReviewCommand) Rating() int {
	return c.rating
}

// Comment returns the free-form review text. May be empty.
func (c AttachReviewCommand) Comment() string {
	return c.comment
}

func (c *AttachReviewCommand) setOrderCode(code string) error {
	if code == "" {
		return ErrOrderCodeIsRequired
	}
	c.orderCode = code
	return nil
}

func (c *AttachReviewCommand) setRating(rating int) error {
	if rating < minReviewRating || rating > maxReviewRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, minReviewRating, maxReviewRating)
	}
	c.rating = rating
	return nil
}
