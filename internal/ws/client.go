package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/localconnect/localconnect-backend/internal/apperr"
	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/internal/locator"
	"github.com/localconnect/localconnect-backend/internal/refresh"
	"github.com/localconnect/localconnect-backend/pkg/geo"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Position payloads are tiny.
	maxMessageSize = 4 * 1024
)

// Client is one device connection. Each connection owns a locator and a
// refresh controller; sessions do not share position state.
type Client struct {
	conn      *websocket.Conn
	sessionID string
	send      chan []byte

	provider   *feedProvider
	locator    *locator.Locator
	controller *refresh.Controller
}

func newClient(conn *websocket.Conn, sessionID string, fetch refresh.FetchFunc) *Client {
	c := &Client{
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, 64),
	}

	c.provider = newFeedProvider(func() {
		c.push(ServerMessage{Type: MsgPositionRequest})
	})
	c.locator = locator.New(c.provider)
	c.controller = refresh.NewController(fetch)

	c.locator.OnLocationChange(c.controller.OnPositionUpdate)
	c.controller.OnPrompt(func(state model.RefreshState) {
		c.push(ServerMessage{
			Type:            MsgRefreshPrompt,
			DistanceMovedKm: state.DistanceMovedKm,
			Formatted:       formatMoved(state.DistanceMovedKm),
		})
	})

	return c
}

// push queues an outbound message, dropping it if the client cannot keep
// up. Position state is re-sent on every change so a dropped frame heals
// itself.
func (c *Client) push(msg ServerMessage) {
	select {
	case c.send <- msg.encode():
	default:
		logger.Warn("Client send buffer full, dropping message", map[string]interface{}{
			"session_id": c.sessionID,
			"type":       msg.Type,
		})
	}
}

// ReadPump consumes inbound messages until the connection drops.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.locator.Close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error", err, map[string]interface{}{
					"session_id": c.sessionID,
				})
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("Unparsable client message", map[string]interface{}{
				"session_id": c.sessionID,
				"error":      err.Error(),
			})
			continue
		}

		c.handleMessage(ctx, msg)
	}
}

// WritePump flushes queued messages and keeps the connection alive with
// pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("Failed to write message", err, map[string]interface{}{
					"session_id": c.sessionID,
				})
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(ctx context.Context, msg ClientMessage) {
	switch msg.Type {
	case MsgPosition:
		c.provider.deliver(locator.Position{
			Latitude:  msg.Latitude,
			Longitude: msg.Longitude,
			Accuracy:  msg.Accuracy,
		})
		c.pushLocationState()

	case MsgPositionError:
		c.provider.deliverError(positionError(msg.Code))
		c.pushLocationState()

	case MsgLocate:
		go c.locate(ctx)

	case MsgStartTracking:
		if err := c.locator.StartTracking(); err != nil {
			c.pushError(apperr.LocationUnsupported, err.Error())
		}

	case MsgStopTracking:
		c.locator.StopTracking()

	case MsgRefresh:
		go c.refresh(ctx)

	case MsgDismiss:
		c.controller.Dismiss()

	default:
		logger.Debug("Unknown message type", map[string]interface{}{
			"session_id": c.sessionID,
			"type":       msg.Type,
		})
	}
}

// locate runs one-shot resolution, then fetches businesses around the fix
// and marks it as the refresh point.
func (c *Client) locate(ctx context.Context) {
	err := c.locator.Resolve(ctx)
	c.pushLocationState()
	if err != nil {
		c.pushError(locationErrorCode(err), err.Error())
		return
	}

	state := c.locator.State()
	if state.Latitude == nil || state.Longitude == nil {
		return
	}

	// Seed the refresh point at the resolved fix, then fetch through the
	// controller so movement is measured from here.
	c.controller.SetRefreshPoint(*state.Latitude, *state.Longitude)
	businesses, err := c.controller.Refresh(ctx)
	if err != nil {
		c.pushError(apperr.FetchNetworkFailure, "Could not load nearby businesses")
		return
	}

	c.push(ServerMessage{Type: MsgBusinesses, Businesses: businesses})
}

func (c *Client) refresh(ctx context.Context) {
	businesses, err := c.controller.Refresh(ctx)
	if err != nil {
		c.pushError(apperr.FetchNetworkFailure, "Refresh failed, please try again")
		return
	}
	c.push(ServerMessage{Type: MsgBusinesses, Businesses: businesses})
}

func (c *Client) pushLocationState() {
	state := c.locator.State()
	c.push(ServerMessage{Type: MsgLocationState, LocationState: &state})
}

func (c *Client) pushError(code, message string) {
	c.push(ServerMessage{Type: MsgError, Code: code, Message: message})
}

// positionError maps browser geolocation error codes onto the locator's
// failure classes.
func positionError(code int) *locator.PositionError {
	switch code {
	case 1:
		return locator.NewError(locator.KindPermissionDenied)
	case 2:
		return locator.NewError(locator.KindPositionUnavailable)
	case 3:
		return locator.NewError(locator.KindTimeout)
	default:
		return &locator.PositionError{}
	}
}

func locationErrorCode(err error) string {
	switch locator.Classify(err).Kind {
	case locator.KindPermissionDenied:
		return apperr.LocationPermissionDenied
	case locator.KindTimeout:
		return apperr.LocationTimeout
	case locator.KindUnsupported:
		return apperr.LocationUnsupported
	default:
		return apperr.LocationPositionUnavailable
	}
}

// formatMoved renders the accumulated displacement for the prompt.
func formatMoved(km float64) string {
	return geo.FormatDistance(km)
}
