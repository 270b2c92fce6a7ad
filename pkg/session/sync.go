package session

import (
	"errors"
	"sync"
)

var ErrSyncStarted = errors.New("session: cross-tab sync already started")

// CrossTabSync logs this context out when another context empties the
// token slot. Logins elsewhere are deliberately not followed.
type CrossTabSync struct {
	store   *Store
	watcher Watcher

	mu   sync.Mutex
	stop func()
}

func NewCrossTabSync(store *Store, watcher Watcher) *CrossTabSync {
	return &CrossTabSync{store: store, watcher: watcher}
}

// Start subscribes to slot changes. It may only be called once per Stop.
func (c *CrossTabSync) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		return ErrSyncStarted
	}

	stop, err := c.watcher.Watch(func(token string) {
		if token == "" {
			c.store.logger.Info("session ended in another context")
			c.store.Logout()
		}
	})
	if err != nil {
		return err
	}
	c.stop = stop
	return nil
}

// Stop tears down the subscription. Calling it when not started is a no-op.
func (c *CrossTabSync) Stop() {
	c.mu.Lock()
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
}
