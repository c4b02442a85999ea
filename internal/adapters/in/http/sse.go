package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"lastbite/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Subscribe handles GET /api/v1/notifications/subscribe - opens a Server-Sent
// Events stream for the requesting party.
//
// The role comes from the ?role= query parameter and the party from the
// requester header: the customer id for role=customer, the store id (not the
// operator account) for role=store, matching how dispatched events are
// addressed. A reconnecting client passes its last seen event id via
// the standard Last-Event-ID header (or ?lastEventId= as a fallback for
// clients that cannot set headers); missed events still in the cache are
// replayed before live ones.
//
// The connection stays open until the client disconnects, the idle timeout
// fires, or delivery fails. Every event carries the id the client must quote
// to resume.
func (s *Server) Subscribe(ctx echo.Context) error {
	subscriberID, err := requesterID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid or missing "+RequesterHeader+" header")
	}

	role, err := order.RoleFromString(ctx.QueryParam("role"))
	if err != nil {
		return badRequest(ctx, "Invalid role")
	}

	lastEventID := ctx.Request().Header.Get("Last-Event-ID")
	if lastEventID == "" {
		lastEventID = ctx.QueryParam("lastEventId")
	}

	sub, err := s.streams.Subscribe(subscriberID, role, lastEventID)
	if err != nil {
		return errorResponse(ctx, err)
	}
	defer sub.Stream.Close()

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	done := ctx.Request().Context().Done()
	for {
		select {
		case <-done:
			return nil
		case ev, ok := <-sub.Stream.Events():
			if !ok {
				return nil
			}
			if err = writeEvent(res, ev.ID, ev.Name, ev.Data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

// writeEvent emits one SSE frame: id, event name, and a JSON data line.
func writeEvent(res *echo.Response, id, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(res, "id: %s\nevent: %s\ndata: %s\n\n", id, name, payload)
	return err
}
