package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HeartbeatInterval keeps idle print gateway connections open through proxies.
var HeartbeatInterval = 15 * time.Second

// StreamPrintGatewayEvents handles GET /api/v1/print-gateway/events. Each
// dispatched job is written as a PrintJobCreated server-sent event. A gateway
// that is not connected when a job is dispatched never sees it.
func (s *Server) StreamPrintGatewayEvents(ctx echo.Context) error {
	if s.gateway == nil {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "print gateway is not enabled",
		})
	}

	sub := s.gateway.Subscribe()
	defer sub.Close()

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	reqCtx := ctx.Request().Context()
	s.logger.InfoContext(reqCtx, "Print gateway connected", "remote", ctx.RealIP())
	defer s.logger.InfoContext(reqCtx, "Print gateway disconnected", "remote", ctx.RealIP())

	heartbeat := time.NewTicker(HeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-reqCtx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case req, ok := <-sub.Requests():
			if !ok {
				return nil
			}

			data, err := json.Marshal(PrintJobCreated{
				PrintJobID:    req.PrintJobID.Bytes(),
				Quantity:      req.Quantity,
				TemplateID:    req.TemplateID,
				CustomerName:  req.CustomerName,
				CustomerPhone: req.CustomerPhone,
			})
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintf(res, "id: %s\nevent: PrintJobCreated\ndata: %s\n\n", req.PrintJobID, data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
