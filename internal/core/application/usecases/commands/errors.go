package commands

import (
	"fmt"

	"refill/internal/pkg/errs"
)

// Rule violations detected by the handlers. Each one matches its error class
// through errors.Is as well as itself.
var (
	ErrCylinderInAnotherOpenOrder = fmt.Errorf("%w: cylinder is already in another open order", errs.ErrStateIsInvalid)
	ErrCylinderNotInOrder         = fmt.Errorf("%w: cylinder does not belong to this order", errs.ErrStateIsInvalid)
	ErrOrderNotReadyForPickup     = fmt.Errorf("%w: order not ready for pickup", errs.ErrStateIsInvalid)
	ErrNoCylindersToMarkReady     = fmt.Errorf("%w: no cylinders to mark as ready in this order", errs.ErrStateIsInvalid)
	ErrCustomerHasOrders          = fmt.Errorf("%w: cannot delete customers with order history", errs.ErrStateIsInvalid)
	ErrPhoneHasTooManyDigits      = fmt.Errorf("%w: phone number must have at most 9 digits", errs.ErrValueIsInvalid)
)

// PhoneNumberMaxDigits bounds phone numbers set through UpdateCustomerPhone.
const PhoneNumberMaxDigits = 9
