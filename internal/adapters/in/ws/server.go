package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/realtime"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// subscribeOrdersLimit caps the backlog pushed right after a per-user
// subscription is attached.
const subscribeOrdersLimit = 10

// OrderHistoryReader supplies a customer's recent orders for the backlog
// pushed on subscription.
type OrderHistoryReader interface {
	Handle(ctx context.Context, query queries.GetUserOrdersQuery) ([]queries.UserOrderResponse, error)
}

// clientMessage is the union of control messages a viewer may send.
type clientMessage struct {
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
}

type pongMessage struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

type subscribedMessage struct {
	Type   string `json:"type"`
	UserID int64  `json:"user_id"`
}

type currentOrdersMessage struct {
	Type   string              `json:"type"`
	Orders []userOrderSnapshot `json:"orders"`
}

type userOrderSnapshot struct {
	ID            int64          `json:"id"`
	RefCode       string         `json:"ref_code"`
	DisplayNumber int            `json:"display_number"`
	Status        string         `json:"status"`
	TotalValue    float64        `json:"total_value"`
	ItemsSummary  map[string]int `json:"items_summary"`
	DateOrdered   string         `json:"date_ordered"`
}

// Server terminates the WebSocket endpoints and bridges them onto the
// connection registry and the broadcaster.
type Server struct {
	registry    *realtime.Registry
	broadcaster *realtime.Broadcaster
	history     OrderHistoryReader
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewServer creates a WebSocket server over the given registry, broadcaster
// and order history read side.
func NewServer(
	registry *realtime.Registry,
	broadcaster *realtime.Broadcaster,
	history OrderHistoryReader,
	logger *slog.Logger,
) *Server {
	return &Server{
		registry:    registry,
		broadcaster: broadcaster,
		history:     history,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the storefront origin; access
			// control happens at the gateway in front of this service.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
		logger: logger.With("component", "ws"),
	}
}

// RegisterRoutes mounts one endpoint per broadcast channel.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/kitchen/display", s.handleChannel(realtime.ChannelKitchenDisplay))
	e.GET("/ws/admin/dashboard", s.handleChannel(realtime.ChannelAdminDashboard))
	e.GET("/ws/orders/updates", s.handleChannel(realtime.ChannelOrderUpdates))
}

// handleChannel upgrades the request, registers the connection on its channel
// and serves it until the peer goes away. The initial snapshot is pushed
// before any control message is read so new viewers render immediately.
func (s *Server) handleChannel(channel realtime.Channel) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		conn := newSocketConn(raw)
		id := s.registry.Connect(channel, conn)
		s.logger.InfoContext(ctx, "viewer connected",
			"channel", channel.String(), "conn_id", id.String())

		if err = s.broadcaster.SyncConnection(ctx, channel, conn); err != nil {
			s.logger.ErrorContext(ctx, "failed to push initial snapshot",
				"channel", channel.String(), "error", err)
		}

		s.readLoop(ctx, channel, id, conn, raw)

		s.registry.Disconnect(channel, id)
		_ = conn.Close()
		s.logger.InfoContext(ctx, "viewer disconnected",
			"channel", channel.String(), "conn_id", id.String())
		return nil
	}
}

func (s *Server) readLoop(
	ctx context.Context,
	channel realtime.Channel,
	id uuid.UUID,
	conn *socketConn,
	raw *websocket.Conn,
) {
	for {
		_, payload, err := raw.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.InfoContext(ctx, "read failed", "channel", channel.String(), "error", err)
			}
			return
		}

		s.handleClientMessage(ctx, channel, id, conn, payload)
	}
}

func (s *Server) handleClientMessage(
	ctx context.Context,
	channel realtime.Channel,
	id uuid.UUID,
	conn *socketConn,
	payload []byte,
) {
	var msg clientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		// Some clients send a bare "ping" string instead of JSON.
		if strings.EqualFold(strings.TrimSpace(string(payload)), "ping") {
			s.reply(ctx, conn, pongMessage{
				Type:      "pong",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
		s.logger.WarnContext(ctx, "unparseable client message", "channel", channel.String())
		return
	}

	switch msg.Type {
	case "ping":
		s.reply(ctx, conn, pongMessage{
			Type:      "pong",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	case "request_update":
		if err := s.broadcaster.SyncConnection(ctx, channel, conn); err != nil {
			s.logger.ErrorContext(ctx, "failed to refresh snapshot",
				"channel", channel.String(), "error", err)
		}
	case "subscribe_orders":
		if channel != realtime.ChannelOrderUpdates || msg.UserID <= 0 {
			return
		}
		if s.registry.SubscribeUser(channel, id, msg.UserID) {
			s.reply(ctx, conn, subscribedMessage{Type: "subscribed", UserID: msg.UserID})
			s.sendCurrentOrders(ctx, conn, msg.UserID)
		}
	default:
		s.logger.WarnContext(ctx, "unknown client message type",
			"channel", channel.String(), "type", msg.Type)
	}
}

// sendCurrentOrders pushes the subscriber's recent orders so the feed does
// not start blank for an order already moving through the kitchen.
func (s *Server) sendCurrentOrders(ctx context.Context, conn *socketConn, userID int64) {
	query, err := queries.NewGetUserOrdersQuery(userID, subscribeOrdersLimit)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build order history query", "error", err)
		return
	}

	orders, err := s.history.Handle(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read order history", "user_id", userID, "error", err)
		return
	}

	snapshots := make([]userOrderSnapshot, 0, len(orders))
	for _, entry := range orders {
		snapshots = append(snapshots, userOrderSnapshot{
			ID:            entry.ID,
			RefCode:       entry.RefCode,
			DisplayNumber: entry.DisplayNumber,
			Status:        entry.Status,
			TotalValue:    entry.TotalValue,
			ItemsSummary:  entry.ItemsSummary,
			DateOrdered:   entry.DateOrdered.UTC().Format(time.RFC3339),
		})
	}

	s.reply(ctx, conn, currentOrdersMessage{Type: "current_orders", Orders: snapshots})
}

func (s *Server) reply(ctx context.Context, conn *socketConn, message any) {
	payload, err := json.Marshal(message)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to serialize reply", "error", err)
		return
	}

	if err = conn.Send(ctx, payload); err != nil {
		s.logger.InfoContext(ctx, "reply write failed", "error", err)
	}
}
