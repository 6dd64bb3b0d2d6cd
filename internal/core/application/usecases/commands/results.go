package commands

import (
	"time"

	"refill/internal/core/domain/model/customer"
	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/printjob"
)

// CustomerResult is returned by the customer maintenance commands.
type CustomerResult struct {
	CustomerID kernel.UUID
	Name       string
	Phone      string
}

func newCustomerResult(c *customer.Customer) CustomerResult {
	return CustomerResult{
		CustomerID: c.ID(),
		Name:       c.Name(),
		Phone:      c.Phone().String(),
	}
}

// CylinderResult describes a cylinder attached to an order.
type CylinderResult struct {
	CylinderID       kernel.UUID
	SequentialNumber int64
	// LabelToken is empty when the cylinder has no label.
	LabelToken string
	State      cylinder.State
}

func newCylinderResult(c *cylinder.Cylinder) CylinderResult {
	label := ""
	if token, ok := c.LabelToken(); ok {
		label = token.String()
	}

	return CylinderResult{
		CylinderID:       c.ID(),
		SequentialNumber: c.SequentialNumber(),
		LabelToken:       label,
		State:            c.State(),
	}
}

// PrintJobResult is a snapshot of a print job.
type PrintJobResult struct {
	PrintJobID   kernel.UUID
	StoreID      kernel.UUID
	Quantity     int
	TemplateID   string
	Status       printjob.Status
	ErrorMessage string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}

func newPrintJobResult(j *printjob.PrintJob) PrintJobResult {
	return PrintJobResult{
		PrintJobID:   j.ID(),
		StoreID:      j.StoreID(),
		Quantity:     j.Quantity(),
		TemplateID:   j.TemplateID(),
		Status:       j.Status(),
		ErrorMessage: j.ErrorMessage(),
		CreatedAt:    j.CreatedAt(),
		CompletedAt:  j.CompletedAt(),
	}
}

// withCylinder returns cylinders with the element sharing c's id replaced by c,
// or c appended when none does. Rollups must see the in-memory change.
func withCylinder(cylinders []*cylinder.Cylinder, c *cylinder.Cylinder) []*cylinder.Cylinder {
	out := make([]*cylinder.Cylinder, 0, len(cylinders)+1)
	replaced := false
	for _, existing := range cylinders {
		if existing.IsEqual(c) {
			out = append(out, c)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, c)
	}
	return out
}

func countInState(cylinders []*cylinder.Cylinder, state cylinder.State) int {
	n := 0
	for _, c := range cylinders {
		if c.State() == state {
			n++
		}
	}
	return n
}
