package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

// Collection stores one JSON value of type T per owner under a fixed key.
type Collection[T any] struct {
	store domain.DocumentStore
	key   string
}

func NewCollection[T any](store domain.DocumentStore, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns the zero value of T when nothing has been saved yet.
// Unreadable documents are treated the same way and logged.
func (c *Collection[T]) Load(ctx context.Context, owner string) (T, error) {
	var value T

	data, err := c.store.Get(ctx, owner, c.key)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentNotFound) {
			return value, nil
		}
		return value, fmt.Errorf("load %s: %w", c.key, err)
	}

	if err := json.Unmarshal(data, &value); err != nil {
		log.Printf("[STORE] Corrupted document %s for owner %s, using defaults: %v", c.key, owner, err)
		var zero T
		return zero, nil
	}

	return value, nil
}

func (c *Collection[T]) Save(ctx context.Context, owner string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}

	if err := c.store.Put(ctx, owner, c.key, data); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}
