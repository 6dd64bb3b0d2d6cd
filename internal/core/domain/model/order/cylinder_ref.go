package order

import (
	"errors"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
)

// CylinderRef is the membership of a cylinder in an order. State mirrors the
// cylinder's own state and is only a cache: the rollup refreshes it from the
// authoritative cylinders before deciding anything.
type CylinderRef struct {
	orderID    kernel.UUID
	cylinderID kernel.UUID
	state      cylinder.State
}

// RestoreCylinderRef rebuilds a membership from storage.
func RestoreCylinderRef(orderID, cylinderID kernel.UUID, state cylinder.State) (*CylinderRef, error) {
	if err := errors.Join(orderID.Validate(), cylinderID.Validate(), state.Validate()); err != nil {
		return nil, err
	}

	return &CylinderRef{
		orderID:    orderID,
		cylinderID: cylinderID,
		state:      state,
	}, nil
}

func (r *CylinderRef) OrderID() kernel.UUID {
	return r.orderID
}

func (r *CylinderRef) CylinderID() kernel.UUID {
	return r.cylinderID
}

// State returns the mirrored cylinder state as of the last refresh.
func (r *CylinderRef) State() cylinder.State {
	return r.state
}
