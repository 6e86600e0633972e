package ws

import (
	"sync"

	"designmatch_backend/internal/logger"
	"designmatch_backend/internal/services"
)

// WebSocketManager tracks connected clients and their project
// conversation subscriptions. It implements services.Broadcaster.
type WebSocketManager struct {
	clients       map[string]*Client            // userID -> client
	subscriptions map[string]map[string]*Client // projectID -> userID -> client
	register      chan *Client
	unregister    chan *Client
	mu            sync.RWMutex

	projectService services.ProjectService
	messageService services.MessageService
}

func NewWebSocketManager(projectService services.ProjectService) *WebSocketManager {
	return &WebSocketManager{
		clients:        make(map[string]*Client),
		subscriptions:  make(map[string]map[string]*Client),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		projectService: projectService,
	}
}

// SetMessageService wires the message service after construction; the
// message service itself broadcasts through this manager, so the two
// cannot be built in one step.
func (manager *WebSocketManager) SetMessageService(messageService services.MessageService) {
	manager.messageService = messageService
}

func (manager *WebSocketManager) Run() {
	for {
		select {
		case client := <-manager.register:
			manager.mu.Lock()
			// A reconnect displaces the previous socket for the user.
			// Its own unregister arrives later and must not touch the
			// new connection, so its entries are cleaned up here.
			if prev, ok := manager.clients[client.UserID]; ok && prev != client {
				close(prev.Send)
				for _, subscribers := range manager.subscriptions {
					if subscribers[client.UserID] == prev {
						delete(subscribers, client.UserID)
					}
				}
			}
			manager.clients[client.UserID] = client
			total := len(manager.clients)
			manager.mu.Unlock()
			logger.Info("WebSocket client registered", "user_id", client.UserID, "total", total)

		case client := <-manager.unregister:
			manager.mu.Lock()
			for _, subscribers := range manager.subscriptions {
				if subscribers[client.UserID] == client {
					delete(subscribers, client.UserID)
				}
			}
			// Only the connection currently mapped for the user is
			// removed; a displaced connection was already closed at
			// register time.
			if current, ok := manager.clients[client.UserID]; ok && current == client {
				close(client.Send)
				delete(manager.clients, client.UserID)
			}
			total := len(manager.clients)
			manager.mu.Unlock()
			logger.Info("WebSocket client unregistered", "user_id", client.UserID, "total", total)
		}
	}
}

// Subscribe attaches a client to a project conversation after the
// project service confirms the user may read it.
func (manager *WebSocketManager) Subscribe(client *Client, projectID string) error {
	if _, err := manager.projectService.Get(client.Ctx, client.UserID, projectID); err != nil {
		return err
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.subscriptions[projectID] == nil {
		manager.subscriptions[projectID] = make(map[string]*Client)
	}
	manager.subscriptions[projectID][client.UserID] = client
	return nil
}

// Unsubscribe detaches a client from a project conversation.
func (manager *WebSocketManager) Unsubscribe(client *Client, projectID string) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if subscribers, ok := manager.subscriptions[projectID]; ok {
		if subscribers[client.UserID] == client {
			delete(subscribers, client.UserID)
		}
	}
}

// BroadcastToProject delivers a payload to every subscriber of the
// project conversation. A client with a full send buffer is dropped.
func (manager *WebSocketManager) BroadcastToProject(projectID string, payload interface{}) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	for userID, client := range manager.subscriptions[projectID] {
		select {
		case client.Send <- payload:
		default:
			logger.Warn("Dropping WebSocket client with full send buffer", "user_id", userID)
			go func(c *Client) {
				manager.unregister <- c
			}(client)
		}
	}
}

// SendToUser delivers a payload to one connected user, if online.
func (manager *WebSocketManager) SendToUser(userID string, payload interface{}) {
	manager.mu.RLock()
	defer manager.mu.RUnlock()

	client, ok := manager.clients[userID]
	if !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}
