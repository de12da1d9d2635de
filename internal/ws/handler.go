package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/localconnect/localconnect-backend/internal/app/model"
	"github.com/localconnect/localconnect-backend/internal/app/service"
	"github.com/localconnect/localconnect-backend/internal/middleware"
	"github.com/localconnect/localconnect-backend/internal/refresh"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

// Handler upgrades /ws/location connections and wires each one to its
// own locator and refresh controller.
type Handler struct {
	businessService service.BusinessService
	upgrader        websocket.Upgrader
}

func NewHandler(businessService service.BusinessService, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &Handler{
		businessService: businessService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
	}
}

// Serve handles GET /ws/location.
func (h *Handler) Serve(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		sessionID = c.Query("session_id")
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := newClient(conn, sessionID, h.fetchFunc(sessionID))

	logger.Info("Location feed connected", map[string]interface{}{
		"session_id": sessionID,
	})

	go client.WritePump()
	client.ReadPump(c.Request.Context())

	logger.Info("Location feed disconnected", map[string]interface{}{
		"session_id": sessionID,
	})
}

func (h *Handler) fetchFunc(sessionID string) refresh.FetchFunc {
	return func(ctx context.Context, lat, lng float64) ([]model.Business, error) {
		return h.businessService.Nearby(ctx, sessionID, lat, lng, "")
	}
}
