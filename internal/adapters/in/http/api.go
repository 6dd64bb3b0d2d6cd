package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// SearchParams carries the optional search query parameter.
type SearchParams struct {
	Search *string `form:"search,omitempty" json:"search,omitempty"`
}

// ServerInterface lists every operation of openapi.yaml. Path parameters are
// already bound and format-checked when a method runs.
type ServerInterface interface {
	SearchCustomers(ctx echo.Context, params SearchParams) error
	CreateCustomer(ctx echo.Context) error
	DeleteCustomer(ctx echo.Context, id openapi_types.UUID) error
	UpdateCustomerPhone(ctx echo.Context, id openapi_types.UUID) error
	UpdateCustomerName(ctx echo.Context, id openapi_types.UUID) error
	GetCustomerCylinders(ctx echo.Context, id openapi_types.UUID) error

	CreateOrder(ctx echo.Context) error
	GetReadyForPickup(ctx echo.Context, params SearchParams) error
	ReceiveCylinder(ctx echo.Context, id openapi_types.UUID) error
	ScanCylinderToOrder(ctx echo.Context, id openapi_types.UUID) error
	MarkOrderCylindersReady(ctx echo.Context, id openapi_types.UUID) error
	DeliverCylinder(ctx echo.Context, id openapi_types.UUID, cylinderID openapi_types.UUID) error
	MarkOrderNotified(ctx echo.Context, id openapi_types.UUID) error

	GetFillingQueue(ctx echo.Context) error
	GetCylinderByToken(ctx echo.Context, token string) error
	DeleteCylinder(ctx echo.Context, id openapi_types.UUID) error
	MarkCylinderReady(ctx echo.Context, id openapi_types.UUID) error
	ReportCylinderProblem(ctx echo.Context, id openapi_types.UUID) error
	AssignLabel(ctx echo.Context, id openapi_types.UUID) error
	GetCylinderHistory(ctx echo.Context, id openapi_types.UUID) error

	CreatePrintJob(ctx echo.Context) error
	GetPrintJob(ctx echo.Context, id openapi_types.UUID) error
	AckPrintJobPrinted(ctx echo.Context, id openapi_types.UUID) error
	AckPrintJobFailed(ctx echo.Context, id openapi_types.UUID) error
	StreamPrintGatewayEvents(ctx echo.Context) error

	GetDashboardStats(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to typed parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindSearch(ctx echo.Context) (SearchParams, error) {
	var params SearchParams
	err := runtime.BindQueryParameter("form", true, false, "search", ctx.QueryParams(), &params.Search)
	if err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter search: %s", err))
	}
	return params, nil
}

// withID adapts operations taking only the id path parameter.
func withID(op func(echo.Context, openapi_types.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindUUID(ctx, "id")
		if err != nil {
			return err
		}
		return op(ctx, id)
	}
}

// withSearch adapts operations taking only the search query parameter.
func withSearch(op func(echo.Context, SearchParams) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		params, err := bindSearch(ctx)
		if err != nil {
			return err
		}
		return op(ctx, params)
	}
}

func (w *ServerInterfaceWrapper) DeliverCylinder(ctx echo.Context) error {
	id, err := bindUUID(ctx, "id")
	if err != nil {
		return err
	}

	cylinderID, err := bindUUID(ctx, "cylinderId")
	if err != nil {
		return err
	}

	return w.Handler.DeliverCylinder(ctx, id, cylinderID)
}

func (w *ServerInterfaceWrapper) GetCylinderByToken(ctx echo.Context) error {
	var token string
	err := runtime.BindStyledParameterWithOptions("simple", "token", ctx.Param("token"), &token,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter token: %s", err))
	}

	return w.Handler.GetCylinderByToken(ctx, token)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlersWithBaseURL mounts every operation under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/customers", withSearch(si.SearchCustomers))
	router.POST(baseURL+"/api/v1/customers", si.CreateCustomer)
	router.DELETE(baseURL+"/api/v1/customers/:id", withID(si.DeleteCustomer))
	router.PATCH(baseURL+"/api/v1/customers/:id/phone", withID(si.UpdateCustomerPhone))
	router.PATCH(baseURL+"/api/v1/customers/:id/name", withID(si.UpdateCustomerName))
	router.GET(baseURL+"/api/v1/customers/:id/cylinders", withID(si.GetCustomerCylinders))

	router.POST(baseURL+"/api/v1/orders", si.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/ready-for-pickup", withSearch(si.GetReadyForPickup))
	router.POST(baseURL+"/api/v1/orders/:id/cylinders", withID(si.ReceiveCylinder))
	router.POST(baseURL+"/api/v1/orders/:id/scan", withID(si.ScanCylinderToOrder))
	router.POST(baseURL+"/api/v1/orders/:id/mark-ready", withID(si.MarkOrderCylindersReady))
	router.POST(baseURL+"/api/v1/orders/:id/cylinders/:cylinderId/deliver", w.DeliverCylinder)
	router.POST(baseURL+"/api/v1/orders/:id/notified", withID(si.MarkOrderNotified))

	router.GET(baseURL+"/api/v1/cylinders/filling-queue", si.GetFillingQueue)
	router.GET(baseURL+"/api/v1/cylinders/scan/:token", w.GetCylinderByToken)
	router.DELETE(baseURL+"/api/v1/cylinders/:id", withID(si.DeleteCylinder))
	router.POST(baseURL+"/api/v1/cylinders/:id/mark-ready", withID(si.MarkCylinderReady))
	router.POST(baseURL+"/api/v1/cylinders/:id/report-problem", withID(si.ReportCylinderProblem))
	router.POST(baseURL+"/api/v1/cylinders/:id/assign-label", withID(si.AssignLabel))
	router.GET(baseURL+"/api/v1/cylinders/:id/history", withID(si.GetCylinderHistory))

	router.POST(baseURL+"/api/v1/print-jobs", si.CreatePrintJob)
	router.GET(baseURL+"/api/v1/print-jobs/:id", withID(si.GetPrintJob))
	router.POST(baseURL+"/api/v1/print-jobs/:id/ack-printed", withID(si.AckPrintJobPrinted))
	router.POST(baseURL+"/api/v1/print-jobs/:id/ack-failed", withID(si.AckPrintJobFailed))
	router.GET(baseURL+"/api/v1/print-gateway/events", si.StreamPrintGatewayEvents)

	router.GET(baseURL+"/api/v1/reports/dashboard", si.GetDashboardStats)
}
