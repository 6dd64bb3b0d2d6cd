// Package errs provides the typed errors shared by the refill domain, the
// command layer and the adapters.
//
// Every error type pairs a sentinel with a struct carrying details:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed
//     or missing input (the InvalidArgument kind)
//   - StateIsInvalidError: an operation attempted from a state that forbids it
//     (the InvalidState kind)
//   - ObjectAlreadyExistsError, VersionIsInvalidError: uniqueness violations and
//     optimistic concurrency conflicts; both also match ErrStateIsInvalid
//   - ObjectNotFoundError: a missing aggregate or record
//
// Use errors.Is against the sentinels to classify an error, for example when
// the HTTP adapter maps failures to status codes.
package errs
