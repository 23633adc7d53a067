// Package ws carries live theme previews between a studio session and its
// embedded preview frames over WebSocket.
package ws

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PreviewOptions configures one preview connection.
type PreviewOptions struct {
	// SiteOrigin is the only origin frames may connect from, e.g.
	// "https://warungforza.id". Compared as scheme://host[:port].
	SiteOrigin string
	// Initial, if set, supplies the mapping sent as soon as a frame connects.
	Initial func() theme.Tokens
	// OnMessage receives the mapping of every accepted inbound message.
	OnMessage func(theme.Tokens)
}

// OriginAllowed reports whether origin equals the configured site origin.
func OriginAllowed(origin, siteOrigin string) bool {
	if origin == "" || siteOrigin == "" {
		return false
	}
	a, err := url.Parse(origin)
	if err != nil {
		return false
	}
	b, err := url.Parse(siteOrigin)
	if err != nil {
		return false
	}
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}

// ServePreview upgrades r to a WebSocket attached to hub and blocks until
// the frame disconnects or the hub closes. Frames from a foreign origin are
// refused before the upgrade.
func ServePreview(w http.ResponseWriter, r *http.Request, hub *Hub, opts PreviewOptions, logger *zap.Logger) {
	origin := r.Header.Get("Origin")
	if !OriginAllowed(origin, opts.SiteOrigin) {
		logger.Warn("rejected preview frame from foreign origin",
			zap.String("origin", origin),
			zap.String("site_origin", opts.SiteOrigin),
		)
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Origin was compared against the site origin above.
		InsecureSkipVerify: true,
	})
	if err != nil {
		logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		id:     uuid.NewString(),
		origin: origin,
		send:   make(chan Message, sendBuffer),
		logger: logger,
	}
	if opts.Initial != nil {
		client.send <- Message{
			Type:    MessageThemePreview,
			Version: ProtocolVersion,
			Seq:     hub.seq.Add(1),
			Theme:   opts.Initial(),
		}
	}
	if !hub.Register(client) {
		conn.Close(websocket.StatusGoingAway, "session closed")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		cancel() // a dead writer ends the read side too
		close(done)
	}()

	client.readPump(ctx, opts.OnMessage)

	hub.Unregister(client)
	cancel()
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}
