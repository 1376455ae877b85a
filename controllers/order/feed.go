package orderControllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/shoplane-dev/storefront-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	feedMu      sync.Mutex
	feedClients = make(map[*websocket.Conn]bool)
)

// orderEvent is the wire shape pushed to feed subscribers whenever an order
// is placed or changes status.
type orderEvent struct {
	OrderID     uint               `json:"order_id"`
	OrderRef    string             `json:"order_ref"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount float64            `json:"total_amount"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// OrderFeedHandler upgrades the connection and keeps it registered until the
// client goes away.
func OrderFeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	feedMu.Lock()
	feedClients[conn] = true
	feedMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			feedMu.Lock()
			delete(feedClients, conn)
			feedMu.Unlock()
			break
		}
	}
}

// broadcastOrderEvent pushes the event to every subscriber. Called only after
// the surrounding transaction has committed; a slow or dead client never
// affects the order.
func broadcastOrderEvent(order *models.Order) {
	event := orderEvent{
		OrderID:     order.ID,
		OrderRef:    order.OrderRef,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}

	feedMu.Lock()
	defer feedMu.Unlock()
	for client := range feedClients {
		if err := client.WriteJSON(event); err != nil {
			client.Close()
			delete(feedClients, client)
		}
	}
}
