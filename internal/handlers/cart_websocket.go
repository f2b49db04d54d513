package handlers

import (
	"log"
	"net/http"
	"time"

	"tamaq_back_end/internal/cart"
	"tamaq_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse l'état du panier à chaque mutation. Le stockage
// Redis publie "updated"/"cleared" sur cart:<email> ; chaque onglet
// connecté reçoit la liste complète après chaque changement.
func (h *CartHandler) CartWebSocket(c *gin.Context) {
	email := cartUserEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	pubsub := database.Redis.Subscribe(ctx, "cart:"+email)
	defer pubsub.Close()
	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			items, err := h.Store.Get(ctx, email)
			if err != nil {
				log.Printf("⚠️ Lecture panier WebSocket de %s: %v", email, err)
				continue
			}

			totals := cart.ComputeTotals(items)
			count := 0
			for _, it := range items {
				count += it.Quantity
			}

			if err := conn.WriteJSON(map[string]interface{}{
				"type":   "cart_updated",
				"items":  items,
				"totals": totals,
				"count":  count,
			}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
