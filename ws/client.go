package ws

import (
	"context"
	"encoding/json"

	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/services/dto"

	"github.com/gorilla/websocket"
)

// IncomingWSMessage is the envelope clients send over the socket.
type IncomingWSMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// OutgoingWSError is pushed back when an action fails.
type OutgoingWSError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type Client struct {
	UserID  string
	Conn    *websocket.Conn
	Send    chan any
	Ctx     context.Context
	Manager *WebSocketManager
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket read error", "user_id", c.UserID, "error", err)
			}
			break
		}

		var msg IncomingWSMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			c.sendError("Malformed message envelope")
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	for msg := range c.Send {
		if err := c.Conn.WriteJSON(msg); err != nil {
			logger.Warn("WebSocket write error", "user_id", c.UserID, "error", err)
			break
		}
	}
}

func (c *Client) handleMessage(msg IncomingWSMessage) {
	switch msg.Action {

	case "subscribe":
		var payload struct {
			ProjectID string `json:"project_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.ProjectID == "" {
			c.sendError("Invalid subscribe payload")
			return
		}
		if err := c.Manager.Subscribe(c, payload.ProjectID); err != nil {
			c.sendError("Cannot subscribe to this project")
			return
		}
		c.Send <- map[string]string{"type": "subscribed", "project_id": payload.ProjectID}

	case "unsubscribe":
		var payload struct {
			ProjectID string `json:"project_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.ProjectID == "" {
			c.sendError("Invalid unsubscribe payload")
			return
		}
		c.Manager.Unsubscribe(c, payload.ProjectID)

	case "send_message":
		var payload struct {
			ProjectID string `json:"project_id"`
			Content   string `json:"content"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.ProjectID == "" {
			c.sendError("Invalid send_message payload")
			return
		}
		req := &dto.SendMessageRequest{Content: payload.Content}
		if _, err := c.Manager.messageService.SendText(c.Ctx, c.UserID, payload.ProjectID, req); err != nil {
			c.sendError("Failed to send message")
			return
		}
		// Delivery to subscribers, including the sender, happens
		// through the service's broadcast.

	default:
		c.sendError("Unhandled action: " + msg.Action)
	}
}

func (c *Client) sendError(message string) {
	select {
	case c.Send <- OutgoingWSError{Type: "error", Error: message}:
	default:
	}
}
