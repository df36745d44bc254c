// Package errs provides standardized error types for the dispatch core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package carries two groups of errors:
//   - generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError)
//   - the dispatch taxonomy (InvalidTransitionError, SlotUnavailableError,
//     NotAuthenticatedError, TransportFailureError)
//
// Each error type follows a consistent pattern:
//   - a sentinel error variable (e.g. ErrSlotUnavailable)
//   - a struct type with fields for error details
//   - constructor functions, with and without cause where it applies
//   - Error() for formatting and Unwrap() for errors.Is classification
//
// A lost claim is deliberately NOT in this package: an order claimed by a
// competing agent between listing and claiming is an expected race outcome
// and is reported as a per-item result, not as an error.
package errs
