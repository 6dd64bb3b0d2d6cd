package order

import (
	"errors"
	"fmt"
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a customer's batch of cylinders moving through fill and return. It
// is the aggregate root owning its CylinderRef memberships.
//
// Order follows these invariants:
//   - Must have a valid identifier and customer
//   - The cylinder set is duplicate-free and changes only while Open
//   - Open becomes ReadyForPickup only through CheckAndUpdateStatus
//   - ReadyForPickup becomes Completed only through Complete
//   - Mirrored cylinder states are refreshed before any status decision
//
// A cylinder belonging to at most one Open order is checked by the command
// that scans it, not here.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the owner of the order
	customerID kernel.UUID

	// status is the current lifecycle state
	status Status

	// cylinders is the ordered membership collection
	cylinders []*CylinderRef

	createdAt   time.Time
	completedAt *time.Time
	notifiedAt  *time.Time

	// version is the optimistic concurrency token read from storage
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an Open order without cylinders for the given customer.
//
// Example:
//
//	o, created, err := order.NewOrder(kernel.NewUUID(), customer.ID())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, customerID kernel.UUID) (*Order, CreatedEvent, error) {
	o := &Order{
		status:        Open,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
	); err != nil {
		return nil, CreatedEvent{}, err
	}

	return o, CreatedEvent{
		OrderID:    o.id,
		CustomerID: o.customerID,
		OccurredAt: o.createdAt,
	}, nil
}

// RestoreOrder rebuilds an order and its memberships from storage. Every ref
// must belong to the order and appear once.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	status Status,
	refs []*CylinderRef,
	createdAt time.Time,
	completedAt *time.Time,
	notifiedAt *time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		completedAt:   completedAt,
		notifiedAt:    notifiedAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	if err := o.restoreCylinders(refs); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owner of the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CompletedAt returns when the order was completed, nil while not Completed.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// NotifiedAt returns the last time the customer was notified, nil if never.
func (o *Order) NotifiedAt() *time.Time {
	return o.notifiedAt
}

// Version returns the concurrency token the order was loaded with.
func (o *Order) Version() int {
	return o.version
}

// Cylinders returns a copy of the membership collection in insertion order.
func (o *Order) Cylinders() []*CylinderRef {
	refs := make([]*CylinderRef, len(o.cylinders))
	copy(refs, o.cylinders)
	return refs
}

// CylinderIDs returns the identifiers of the member cylinders in insertion order.
func (o *Order) CylinderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.cylinders))
	for _, ref := range o.cylinders {
		ids = append(ids, ref.cylinderID)
	}
	return ids
}

// ContainsCylinder reports whether the cylinder is a member of the order.
func (o *Order) ContainsCylinder(cylinderID kernel.UUID) bool {
	for _, ref := range o.cylinders {
		if ref.cylinderID.IsEqual(cylinderID) {
			return true
		}
	}
	return false
}

// CountInState counts members whose mirrored state equals state.
func (o *Order) CountInState(state cylinder.State) int {
	n := 0
	for _, ref := range o.cylinders {
		if ref.state == state {
			n++
		}
	}
	return n
}

// NeedsNotification is true for ReadyForPickup orders whose customer was never notified.
func (o *Order) NeedsNotification() bool {
	return o.status == ReadyForPickup && o.notifiedAt == nil
}

// AddCylinder attaches a cylinder to an Open order. The membership mirrors the
// cylinder's current state.
//
// Errors:
//   - errs.ErrStateIsInvalid if the order is not Open
//   - errs.ErrObjectAlreadyExists (also errs.ErrStateIsInvalid) if the cylinder is already a member
func (o *Order) AddCylinder(c *cylinder.Cylinder) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := o.status.ValidateModify(); err != nil {
		return err
	}

	if o.ContainsCylinder(c.ID()) {
		return errs.NewObjectAlreadyExistsErrorWithCause(
			"cylinder",
			c.ID(),
			fmt.Errorf("cylinder already added to order %s", o.id),
		)
	}

	o.cylinders = append(o.cylinders, &CylinderRef{
		orderID:    o.id,
		cylinderID: c.ID(),
		state:      c.State(),
	})
	return nil
}

// CheckAndUpdateStatus is the order rollup. While the order is Open it
// refreshes the mirrored states from cylinders (members absent from the list
// stay stale) and, when there is at least one member and every member is
// Ready, moves the order to ReadyForPickup and returns the event. In every
// other case it returns nil, so repeated calls are harmless.
func (o *Order) CheckAndUpdateStatus(cylinders []*cylinder.Cylinder) *BecameReadyForPickupEvent {
	if o.status != Open {
		return nil
	}

	o.refreshStates(cylinders)

	if len(o.cylinders) == 0 || o.CountInState(cylinder.Ready) != len(o.cylinders) {
		return nil
	}

	next, err := o.status.MarkReadyForPickup()
	if err != nil {
		return nil
	}

	o.status = next
	return &BecameReadyForPickupEvent{
		OrderID:       o.id,
		CustomerID:    o.customerID,
		CylinderCount: len(o.cylinders),
		OccurredAt:    time.Now().UTC(),
	}
}

// Complete closes a ReadyForPickup order once every member is Delivered. The
// mirrored states are refreshed from cylinders first, so the decision never
// rests on a stale rollup.
//
// Errors:
//   - errs.ErrStateIsInvalid if the order is not ReadyForPickup
//   - errs.ErrStateIsInvalid if any member is not Delivered
func (o *Order) Complete(cylinders []*cylinder.Cylinder) (CompletedEvent, error) {
	next, err := o.status.Complete()
	if err != nil {
		return CompletedEvent{}, err
	}

	o.refreshStates(cylinders)

	if pending := len(o.cylinders) - o.CountInState(cylinder.Delivered); pending > 0 {
		return CompletedEvent{}, errs.NewStateIsInvalidErrorWithCause(
			"order status",
			o.status,
			fmt.Errorf("%d cylinders are not delivered yet", pending),
		)
	}

	now := time.Now().UTC()
	o.status = next
	o.completedAt = &now

	return CompletedEvent{
		OrderID:    o.id,
		CustomerID: o.customerID,
		OccurredAt: now,
	}, nil
}

// MarkAsNotified stamps the notification time. Repeated calls overwrite it.
func (o *Order) MarkAsNotified() error {
	if err := o.status.ValidateNotify(); err != nil {
		return err
	}

	now := time.Now().UTC()
	o.notifiedAt = &now
	return nil
}

func (o *Order) refreshStates(cylinders []*cylinder.Cylinder) {
	current := make(map[kernel.UUID]cylinder.State, len(cylinders))
	for _, c := range cylinders {
		if c == nil {
			continue
		}
		current[c.ID()] = c.State()
	}

	for _, ref := range o.cylinders {
		if state, ok := current[ref.cylinderID]; ok {
			ref.state = state
		}
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) restoreCylinders(refs []*CylinderRef) error {
	o.cylinders = make([]*CylinderRef, 0, len(refs))
	for _, ref := range refs {
		if ref == nil || !ref.orderID.IsEqual(o.id) {
			return errs.NewValueIsInvalidErrorWithCause(
				"cylinder ref",
				fmt.Errorf("membership does not belong to order %s", o.id),
			)
		}
		if o.ContainsCylinder(ref.cylinderID) {
			return errs.NewObjectAlreadyExistsError("cylinder", ref.cylinderID)
		}
		r := *ref
		o.cylinders = append(o.cylinders, &r)
	}
	return nil
}
