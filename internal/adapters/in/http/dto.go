package http

import (
	"time"

	"refill/internal/core/application/usecases/commands"
	"refill/internal/core/application/usecases/queries"
	"refill/internal/core/domain/model/kernel"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx JSON response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type NewCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type CustomerPhoneUpdate struct {
	Phone string `json:"phone"`
}

type CustomerNameUpdate struct {
	Name string `json:"name"`
}

type NewOrder struct {
	CustomerID openapi_types.UUID `json:"customerId"`
}

type NewCylinder struct {
	LabelToken string `json:"labelToken,omitempty"`
}

type ScanRequest struct {
	Token string `json:"token"`
}

type ProblemRequest struct {
	ProblemType string `json:"problemType,omitempty"`
	Notes       string `json:"notes"`
}

type LabelRequest struct {
	QRToken string `json:"qrToken"`
}

type NewPrintJob struct {
	StoreID       openapi_types.UUID `json:"storeId"`
	Quantity      int                `json:"quantity"`
	TemplateID    string             `json:"templateId,omitempty"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
}

type PrintJobFailure struct {
	ErrorMessage string `json:"errorMessage"`
}

type Customer struct {
	ID    openapi_types.UUID `json:"id"`
	Name  string             `json:"name"`
	Phone string             `json:"phone"`
}

type CustomerSummary struct {
	ID          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	OpenOrders  int                `json:"openOrders"`
	TotalOrders int                `json:"totalOrders"`
}

type Order struct {
	ID            openapi_types.UUID `json:"id"`
	CustomerID    openapi_types.UUID `json:"customerId"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	CompletedAt   *time.Time         `json:"completedAt,omitempty"`
	CylinderCount int                `json:"cylinderCount"`
}

type Cylinder struct {
	ID               openapi_types.UUID `json:"id"`
	SequentialNumber int64              `json:"sequentialNumber"`
	LabelToken       string             `json:"labelToken,omitempty"`
	State            string             `json:"state"`
}

type BatchReady struct {
	OrderID         openapi_types.UUID `json:"orderId"`
	OrderStatus     string             `json:"orderStatus"`
	MarkedCount     int                `json:"markedCount"`
	Total           int                `json:"total"`
	IsOrderComplete bool               `json:"isOrderComplete"`
}

type ReadyProgress struct {
	CylinderID      openapi_types.UUID `json:"cylinderId"`
	State           string             `json:"state"`
	OrderID         openapi_types.UUID `json:"orderId"`
	OrderStatus     string             `json:"orderStatus"`
	Total           int                `json:"total"`
	Ready           int                `json:"ready"`
	IsOrderComplete bool               `json:"isOrderComplete"`
}

type DeliveryProgress struct {
	CylinderID         openapi_types.UUID `json:"cylinderId"`
	State              string             `json:"state"`
	OrderID            openapi_types.UUID `json:"orderId"`
	OrderStatus        string             `json:"orderStatus"`
	TotalCylinders     int                `json:"totalCylinders"`
	DeliveredCylinders int                `json:"deliveredCylinders"`
	IsOrderComplete    bool               `json:"isOrderComplete"`
}

type Notified struct {
	OrderID    openapi_types.UUID `json:"orderId"`
	NotifiedAt time.Time          `json:"notifiedAt"`
}

type ProblemReport struct {
	CylinderID  openapi_types.UUID `json:"cylinderId"`
	State       string             `json:"state"`
	ProblemType string             `json:"problemType"`
	Notes       string             `json:"notes"`
}

type LabelAssignment struct {
	CylinderID         openapi_types.UUID `json:"cylinderId"`
	LabelToken         string             `json:"labelToken"`
	PreviousLabelToken string             `json:"previousLabelToken,omitempty"`
}

type PickupCylinder struct {
	CylinderID       openapi_types.UUID `json:"cylinderId"`
	SequentialNumber int64              `json:"sequentialNumber"`
	LabelToken       string             `json:"labelToken,omitempty"`
	State            string             `json:"state"`
	IsDelivered      bool               `json:"isDelivered"`
}

type PickupOrder struct {
	OrderID            openapi_types.UUID `json:"orderId"`
	CustomerID         openapi_types.UUID `json:"customerId"`
	CustomerName       string             `json:"customerName"`
	CustomerPhone      string             `json:"customerPhone"`
	Status             string             `json:"status"`
	CreatedAt          time.Time          `json:"createdAt"`
	NotifiedAt         *time.Time         `json:"notifiedAt,omitempty"`
	NeedsNotification  bool               `json:"needsNotification"`
	TotalCylinders     int                `json:"totalCylinders"`
	DeliveredCylinders int                `json:"deliveredCylinders"`
	Cylinders          []PickupCylinder   `json:"cylinders"`
}

type FillingQueueItem struct {
	CylinderID            openapi_types.UUID `json:"cylinderId"`
	SequentialNumber      int64              `json:"sequentialNumber"`
	LabelToken            string             `json:"labelToken,omitempty"`
	State                 string             `json:"state"`
	ReceivedAt            time.Time          `json:"receivedAt"`
	OrderID               openapi_types.UUID `json:"orderId"`
	CustomerName          string             `json:"customerName"`
	CustomerPhone         string             `json:"customerPhone"`
	TotalCylindersInOrder int                `json:"totalCylindersInOrder"`
	ReadyCylindersInOrder int                `json:"readyCylindersInOrder"`
}

type CylinderOrder struct {
	OrderID       openapi_types.UUID `json:"orderId"`
	Status        string             `json:"status"`
	CustomerID    openapi_types.UUID `json:"customerId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
}

type HistoryItem struct {
	EventType string              `json:"eventType"`
	Details   string              `json:"details"`
	OrderID   *openapi_types.UUID `json:"orderId,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

type CylinderDetails struct {
	CylinderID       openapi_types.UUID `json:"cylinderId"`
	SequentialNumber int64              `json:"sequentialNumber"`
	LabelToken       string             `json:"labelToken,omitempty"`
	State            string             `json:"state"`
	OccurrenceNotes  string             `json:"occurrenceNotes,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	CurrentOrder     *CylinderOrder     `json:"currentOrder,omitempty"`
	History          []HistoryItem      `json:"history"`
}

type CustomerCylinder struct {
	OrderID          openapi_types.UUID `json:"orderId"`
	OrderStatus      string             `json:"orderStatus"`
	CylinderID       openapi_types.UUID `json:"cylinderId"`
	SequentialNumber int64              `json:"sequentialNumber"`
	LabelToken       string             `json:"labelToken,omitempty"`
	State            string             `json:"state"`
	CreatedAt        time.Time          `json:"createdAt"`
	History          []HistoryItem      `json:"history"`
}

type CustomerCylinders struct {
	CustomerID openapi_types.UUID `json:"customerId"`
	Name       string             `json:"name"`
	Phone      string             `json:"phone"`
	Cylinders  []CustomerCylinder `json:"cylinders"`
}

type PrintJob struct {
	ID           openapi_types.UUID `json:"id"`
	StoreID      openapi_types.UUID `json:"storeId"`
	Quantity     int                `json:"quantity"`
	TemplateID   string             `json:"templateId,omitempty"`
	Status       string             `json:"status"`
	ErrorMessage string             `json:"errorMessage,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	DispatchedAt *time.Time         `json:"dispatchedAt,omitempty"`
	CompletedAt  *time.Time         `json:"completedAt,omitempty"`
}

type DashboardStats struct {
	OrdersOpen                 int `json:"ordersOpen"`
	OrdersReadyForPickup       int `json:"ordersReadyForPickup"`
	OrdersCompletedToday       int `json:"ordersCompletedToday"`
	OrdersCompletedThisWeek    int `json:"ordersCompletedThisWeek"`
	OrdersAwaitingNotification int `json:"ordersAwaitingNotification"`
	CylindersReceived          int `json:"cylindersReceived"`
	CylindersReady             int `json:"cylindersReady"`
	CylindersWithProblem       int `json:"cylindersWithProblem"`
	CylindersFilledToday       int `json:"cylindersFilledToday"`
	CylindersFilledThisWeek    int `json:"cylindersFilledThisWeek"`
	TotalCustomers             int `json:"totalCustomers"`
}

// PrintJobCreated is the data of one print gateway event.
type PrintJobCreated struct {
	PrintJobID    openapi_types.UUID `json:"printJobId"`
	Quantity      int                `json:"quantity"`
	TemplateID    string             `json:"templateId,omitempty"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerPhone string             `json:"customerPhone,omitempty"`
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func uuidPtr(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := id.Bytes()
	return &out
}

func customerResponse(r commands.CustomerResult) Customer {
	return Customer{ID: r.CustomerID.Bytes(), Name: r.Name, Phone: r.Phone}
}

func orderResponse(r commands.OrderResult) Order {
	return Order{
		ID:            r.OrderID.Bytes(),
		CustomerID:    r.CustomerID.Bytes(),
		Status:        r.Status.String(),
		CreatedAt:     r.CreatedAt,
		CompletedAt:   r.CompletedAt,
		CylinderCount: r.CylinderCount,
	}
}

func cylinderResponse(r commands.CylinderResult) Cylinder {
	return Cylinder{
		ID:               r.CylinderID.Bytes(),
		SequentialNumber: r.SequentialNumber,
		LabelToken:       r.LabelToken,
		State:            r.State.String(),
	}
}

func printJobResponse(r commands.PrintJobResult) PrintJob {
	return PrintJob{
		ID:           r.PrintJobID.Bytes(),
		StoreID:      r.StoreID.Bytes(),
		Quantity:     r.Quantity,
		TemplateID:   r.TemplateID,
		Status:       r.Status.String(),
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		CompletedAt:  r.CompletedAt,
	}
}

func printJobSnapshot(r queries.GetPrintJobQueryResponse) PrintJob {
	return PrintJob{
		ID:           r.PrintJobID.Bytes(),
		StoreID:      r.StoreID.Bytes(),
		Quantity:     r.Quantity,
		TemplateID:   r.TemplateID,
		Status:       r.Status.String(),
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		DispatchedAt: r.DispatchedAt,
		CompletedAt:  r.CompletedAt,
	}
}

func cylinderDetails(r queries.GetCylinderHistoryQueryResponse) CylinderDetails {
	out := CylinderDetails{
		CylinderID:       r.CylinderID.Bytes(),
		SequentialNumber: r.SequentialNumber,
		LabelToken:       r.LabelToken,
		State:            r.State.String(),
		OccurrenceNotes:  r.OccurrenceNotes,
		CreatedAt:        r.CreatedAt,
	}

	if r.CurrentOrder != nil {
		out.CurrentOrder = &CylinderOrder{
			OrderID:       r.CurrentOrder.OrderID.Bytes(),
			Status:        r.CurrentOrder.Status.String(),
			CustomerID:    r.CurrentOrder.CustomerID.Bytes(),
			CustomerName:  r.CurrentOrder.CustomerName,
			CustomerPhone: r.CurrentOrder.CustomerPhone,
		}
	}

	out.History = historyItems(r.History)

	return out
}

func historyItems(items []queries.HistoryItem) []HistoryItem {
	out := make([]HistoryItem, len(items))
	for i, item := range items {
		out[i] = HistoryItem{
			EventType: item.EventType.String(),
			Details:   item.Details,
			OrderID:   uuidPtr(item.OrderID),
			Timestamp: item.Timestamp,
		}
	}
	return out
}

func customerCylinders(r queries.GetCustomerCylindersQueryResponse) CustomerCylinders {
	out := CustomerCylinders{
		CustomerID: r.CustomerID.Bytes(),
		Name:       r.Name,
		Phone:      r.Phone,
		Cylinders:  make([]CustomerCylinder, len(r.Cylinders)),
	}

	for i, c := range r.Cylinders {
		out.Cylinders[i] = CustomerCylinder{
			OrderID:          c.OrderID.Bytes(),
			OrderStatus:      c.OrderStatus.String(),
			CylinderID:       c.CylinderID.Bytes(),
			SequentialNumber: c.SequentialNumber,
			LabelToken:       c.LabelToken,
			State:            c.State.String(),
			CreatedAt:        c.CreatedAt,
			History:          historyItems(c.History),
		}
	}

	return out
}

func pickupOrder(r queries.GetReadyForPickupQueryResponse) PickupOrder {
	out := PickupOrder{
		OrderID:            r.OrderID.Bytes(),
		CustomerID:         r.CustomerID.Bytes(),
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		Status:             r.Status.String(),
		CreatedAt:          r.CreatedAt,
		NotifiedAt:         r.NotifiedAt,
		NeedsNotification:  r.NeedsNotification,
		TotalCylinders:     r.TotalCylinders,
		DeliveredCylinders: r.DeliveredCylinders,
		Cylinders:          make([]PickupCylinder, len(r.Cylinders)),
	}

	for i, c := range r.Cylinders {
		out.Cylinders[i] = PickupCylinder{
			CylinderID:       c.CylinderID.Bytes(),
			SequentialNumber: c.SequentialNumber,
			LabelToken:       c.LabelToken,
			State:            c.State.String(),
			IsDelivered:      c.IsDelivered,
		}
	}

	return out
}
