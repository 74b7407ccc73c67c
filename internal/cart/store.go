package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/alexedwards/scs/v2"
)

// Key is the store key the cart is saved under.
const Key = "edustream-cart"

var ErrCorrupt = errors.New("cart: corrupt saved cart")

// Store is a key/value store for serialized carts. Load returns nil data and no error for an unknown key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

type saved struct {
	Items []Item `json:"items"`
}

// Load restores the cart saved in store. Items are re-added one by one so a saved cart with duplicates
// loads clean. When the saved data cannot be decoded an empty cart is returned along with an error
// wrapping ErrCorrupt.
func Load(ctx context.Context, store Store) (*Cart, error) {
	c := &Cart{}

	data, err := store.Load(ctx, Key)
	if err != nil {
		return c, fmt.Errorf("cart load: %w", err)
	}
	if len(data) == 0 {
		return c, nil
	}

	var s saved
	if err := json.Unmarshal(data, &s); err != nil {
		return c, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	for _, item := range s.Items {
		c.Add(item)
	}

	return c, nil
}

// Save persists the items of c. The open state belongs to the page and is not saved.
func Save(ctx context.Context, store Store, c *Cart) error {
	data, err := json.Marshal(saved{Items: c.Items})
	if err != nil {
		return fmt.Errorf("cart encode: %w", err)
	}

	if err := store.Save(ctx, Key, data); err != nil {
		return fmt.Errorf("cart save: %w", err)
	}

	return nil
}

// SessionStore keeps carts in the visitor's session.
type SessionStore struct {
	Sessions *scs.SessionManager
}

func (s *SessionStore) Load(ctx context.Context, key string) ([]byte, error) {
	return s.Sessions.GetBytes(ctx, key), nil
}

func (s *SessionStore) Save(ctx context.Context, key string, data []byte) error {
	s.Sessions.Put(ctx, key, data)
	return nil
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.data[key], nil
}

func (m *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = data

	return nil
}
