package httpx

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/villaflora/go-resto-console/internal/feed"
	"github.com/villaflora/go-resto-console/internal/reservations"
	"github.com/villaflora/go-resto-console/internal/triage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4 * 1024,
	WriteBufferSize: 64 * 1024,
	// Konsol staff dilayani dari origin admin yang sama; token sesi tetap
	// dicek sebelum upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// feedMsg is everything the console receives over the feed socket.
type feedMsg struct {
	Type      string                     `json:"type"` // snapshot | alert | alert_dismissed
	Pending   []reservations.Reservation `json:"pending,omitempty"`
	Completed []reservations.Reservation `json:"completed,omitempty"`
	Alert     *triage.Alert              `json:"alert,omitempty"`
}

// feedAction is the only inbound traffic: alert dismissal ("view" also
// dismisses, the navigation itself is client-side).
type feedAction struct {
	Action string `json:"action"` // dismiss | view
}

// feedToken pulls the operator session token for the websocket handshake.
// Preferred carrier is `Sec-WebSocket-Protocol: bearer, <token>` (browsers
// cannot set Authorization on a ws dial, and ?token= ends up in the request
// log via middleware.Logger). The bearerToken fallback keeps curl/tests and
// older console builds working.
func feedToken(r *http.Request) (token string, viaProtocol bool) {
	parts := strings.Split(r.Header.Get("Sec-WebSocket-Protocol"), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) == 2 && parts[0] == "bearer" && parts[1] != "" {
		return parts[1], true
	}
	return bearerToken(r), false
}

// serveFeed runs one operator session: feed delivery -> differ -> lists +
// alert, alert events back over the socket, dismissal in. Each session
// diffs against its own pending count, so alerts are per-session by
// design -- two open consoles both chime on the same arrival.
func (h *ReservationsHandler) serveFeed(w http.ResponseWriter, r *http.Request) {
	token, viaProtocol := feedToken(r)
	operator, err := h.Sessions.Authorize(r.Context(), token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	// Echo the subprotocol we accepted, else the browser drops the conn.
	var respHeader http.Header
	if viaProtocol {
		respHeader = http.Header{"Sec-WebSocket-Protocol": {"bearer"}}
	}
	ws, err := upgrader.Upgrade(w, r, respHeader)
	if err != nil {
		log.Printf("feed: upgrade: %v", err)
		return
	}
	defer ws.Close()
	log.Printf("feed: console attached (operator=%s)", operator)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Outbound is funneled through one writer goroutine; gorilla conns do
	// not allow concurrent writes. Full buffer = drop, snapshot berikutnya
	// bawa state lengkap lagi.
	out := make(chan feedMsg, 32)
	send := func(m feedMsg) {
		select {
		case out <- m:
		default:
		}
	}

	sess := feed.NewOperatorSession(0,
		func(pending, completed []reservations.Reservation) {
			send(feedMsg{Type: "snapshot", Pending: pending, Completed: completed})
		},
		func(a triage.Alert) {
			send(feedMsg{Type: "alert", Alert: &a})
		},
		func() {
			send(feedMsg{Type: "alert_dismissed"})
		},
	)
	defer sess.Close()

	deliveries := h.Hub.Attach()
	defer h.Hub.Detach(deliveries)
	defer cancel() // stop writer/delivery goroutines before detach & close

	// writer
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-out:
				if err := ws.WriteJSON(m); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	// delivery loop: satu logical thread per sesi
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-deliveries:
				sess.Apply(snap)
			}
		}
	}()

	// reader: dismissal + disconnect detection
	for {
		var act feedAction
		if err := ws.ReadJSON(&act); err != nil {
			log.Printf("feed: console detached (operator=%s): %v", operator, err)
			return
		}
		switch act.Action {
		case "dismiss", "view":
			sess.Alerts.Dismiss()
		}
	}
}
