// Package printjob models label print jobs and their dispatch lifecycle.
//
// A job is created Pending, handed to a dispatcher and marked Dispatched by the
// same command, and later acknowledged by the print worker as Printed or
// Failed. Acknowledgment idempotence lives in the command layer; the state
// machine here rejects every transition off the Pending -> Dispatched ->
// Printed|Failed path with errs.ErrStateIsInvalid.
package printjob
