// Package memory keeps refill state in process memory. It backs the memory
// storage driver and the command scenario tests.
//
// Units of work are serialized: Begin takes the store's single slot and works
// on a private copy of the state, Commit publishes that copy and Rollback drops
// it. Versions are still checked on every update, so an aggregate loaded in an
// earlier unit of work cannot overwrite newer data.
package memory

import (
	"time"

	"refill/internal/core/domain/model/cylinder"
	"refill/internal/core/domain/model/history"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/printjob"
)

// Store holds the committed state shared by every unit of work it creates.
type Store struct {
	slot  chan struct{}
	state *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		slot:  make(chan struct{}, 1),
		state: newState(),
	}
}

type customerRecord struct {
	id        kernel.UUID
	name      string
	phone     string
	createdAt time.Time
	version   int
}

type orderRecord struct {
	id          kernel.UUID
	customerID  kernel.UUID
	status      order.Status
	cylinders   []refRecord
	createdAt   time.Time
	completedAt *time.Time
	notifiedAt  *time.Time
	version     int
}

type refRecord struct {
	cylinderID kernel.UUID
	state      cylinder.State
}

type cylinderRecord struct {
	id               kernel.UUID
	sequentialNumber int64
	labelToken       string
	state            cylinder.State
	occurrenceNotes  string
	createdAt        time.Time
	version          int
}

type historyRecord struct {
	id         kernel.UUID
	cylinderID kernel.UUID
	eventType  history.EventType
	details    string
	orderID    *kernel.UUID
	timestamp  time.Time
}

type printJobRecord struct {
	id           kernel.UUID
	storeID      kernel.UUID
	quantity     int
	templateID   string
	status       printjob.Status
	errorMessage string
	createdAt    time.Time
	dispatchedAt *time.Time
	completedAt  *time.Time
	version      int
}

type state struct {
	customers map[kernel.UUID]customerRecord
	orders    map[kernel.UUID]orderRecord
	cylinders map[kernel.UUID]cylinderRecord
	history   []historyRecord
	printJobs map[kernel.UUID]printJobRecord
	sequence  int64
}

func newState() *state {
	return &state{
		customers: make(map[kernel.UUID]customerRecord),
		orders:    make(map[kernel.UUID]orderRecord),
		cylinders: make(map[kernel.UUID]cylinderRecord),
		printJobs: make(map[kernel.UUID]printJobRecord),
	}
}

// clone copies everything a unit of work may change. Records are values, so
// only the slices inside them need their own backing arrays.
func (s *state) clone() *state {
	c := &state{
		customers: make(map[kernel.UUID]customerRecord, len(s.customers)),
		orders:    make(map[kernel.UUID]orderRecord, len(s.orders)),
		cylinders: make(map[kernel.UUID]cylinderRecord, len(s.cylinders)),
		history:   append([]historyRecord(nil), s.history...),
		printJobs: make(map[kernel.UUID]printJobRecord, len(s.printJobs)),
		sequence:  s.sequence,
	}

	for id, r := range s.customers {
		c.customers[id] = r
	}
	for id, r := range s.orders {
		r.cylinders = append([]refRecord(nil), r.cylinders...)
		c.orders[id] = r
	}
	for id, r := range s.cylinders {
		c.cylinders[id] = r
	}
	for id, r := range s.printJobs {
		c.printJobs[id] = r
	}

	return c
}
