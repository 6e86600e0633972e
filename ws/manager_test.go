package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *WebSocketManager {
	manager := NewWebSocketManager(nil)
	go manager.Run()
	return manager
}

func (manager *WebSocketManager) clientFor(userID string) *Client {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.clients[userID]
}

func (manager *WebSocketManager) subscriberFor(projectID, userID string) *Client {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.subscriptions[projectID][userID]
}

func (manager *WebSocketManager) seedSubscription(projectID string, client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	if manager.subscriptions[projectID] == nil {
		manager.subscriptions[projectID] = make(map[string]*Client)
	}
	manager.subscriptions[projectID][client.UserID] = client
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestManagerReconnectDisplacesOldConnection(t *testing.T) {
	t.Parallel()
	manager := newTestManager()

	first := &Client{UserID: "u-1", Send: make(chan any, 4)}
	manager.register <- first
	waitFor(t, func() bool { return manager.clientFor("u-1") == first })
	manager.seedSubscription("project-1", first)

	// The same user reconnects. The old socket is closed and its
	// subscriptions dropped.
	second := &Client{UserID: "u-1", Send: make(chan any, 4)}
	manager.register <- second
	waitFor(t, func() bool { return manager.clientFor("u-1") == second })

	_, open := <-first.Send
	assert.False(t, open, "displaced connection's send channel is closed")
	assert.Nil(t, manager.subscriberFor("project-1", "u-1"))

	// The live connection subscribes and the stale connection's
	// unregister trickles in afterwards. The live socket must stay
	// registered and subscribed.
	manager.seedSubscription("project-1", second)
	manager.unregister <- first
	// Run handles events in order; once the sentinel is visible the
	// stale unregister has been processed.
	sentinel := &Client{UserID: "sentinel", Send: make(chan any, 1)}
	manager.register <- sentinel
	waitFor(t, func() bool { return manager.clientFor("sentinel") == sentinel })
	assert.Equal(t, second, manager.clientFor("u-1"))
	assert.Equal(t, second, manager.subscriberFor("project-1", "u-1"))

	select {
	case _, open := <-second.Send:
		assert.True(t, open, "live connection's send channel stays open")
	default:
	}
}

func TestManagerUnregisterRemovesClient(t *testing.T) {
	t.Parallel()
	manager := newTestManager()

	client := &Client{UserID: "u-2", Send: make(chan any, 4)}
	manager.register <- client
	waitFor(t, func() bool { return manager.clientFor("u-2") == client })
	manager.seedSubscription("project-2", client)

	manager.unregister <- client
	waitFor(t, func() bool { return manager.clientFor("u-2") == nil })

	_, open := <-client.Send
	assert.False(t, open)
	assert.Nil(t, manager.subscriberFor("project-2", "u-2"))
}

func TestManagerUnsubscribeIgnoresDisplacedConnection(t *testing.T) {
	t.Parallel()
	manager := NewWebSocketManager(nil)

	stale := &Client{UserID: "u-3", Send: make(chan any, 1)}
	live := &Client{UserID: "u-3", Send: make(chan any, 1)}
	manager.seedSubscription("project-3", live)

	manager.Unsubscribe(stale, "project-3")
	assert.Equal(t, live, manager.subscriberFor("project-3", "u-3"))

	manager.Unsubscribe(live, "project-3")
	assert.Nil(t, manager.subscriberFor("project-3", "u-3"))
}
