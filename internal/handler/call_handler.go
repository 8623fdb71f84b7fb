package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gyansetu/internal/call"
	"gyansetu/internal/models"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

type StartCallRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=video voice"`
}

type EndCallRequest struct {
	Reason string `json:"reason" validate:"omitempty,oneof=hangup premium-end upgrade"`
}

func (h *Handlers) StartCall(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req StartCallRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	snap, err := h.CallService.Start(r.Context(), session.User, req.ReceiverID, models.CallType(req.Type))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, snap, http.StatusCreated)
}

func (h *Handlers) GetCall(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	snap, err := h.CallService.Get(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, snap, http.StatusOK)
}

func (h *Handlers) ToggleMute(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	snap, err := h.CallService.ToggleMute(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, snap, http.StatusOK)
}

func (h *Handlers) ToggleCamera(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	snap, err := h.CallService.ToggleCamera(r.Context(), session.UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, snap, http.StatusOK)
}

// EndCall defaults to a hang-up when no reason is given.
func (h *Handlers) EndCall(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req EndCallRequest
	if r.ContentLength != 0 && !h.decodeJSON(w, r, &req) {
		return
	}
	reason := call.ReasonHangup
	if req.Reason != "" {
		reason = call.EndReason(req.Reason)
	}

	record, err := h.CallService.End(r.Context(), session.UserID, chi.URLParam(r, "id"), reason)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, record, http.StatusOK)
}

// CallEvents streams call snapshots over a websocket until the call ends.
func (h *Handlers) CallEvents(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}
	callID := chi.URLParam(r, "id")

	events, cancel, err := h.CallService.Subscribe(r.Context(), session.UserID, callID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	defer cancel()

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.String("callID", callID), zap.Error(err))
		return
	}
	defer conn.Close()

	// the reader only handles pongs and notices the client going away
	gone := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case snap, open := <-events:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !open {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "call ended"))
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}
