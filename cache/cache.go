// Package cache holds large immutable objects, such as parsed word lists,
// that are expensive to build and safe to share between games.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type Cache[T any] struct {
	sync.Mutex
	objects map[string]T
}

func New[T any]() *Cache[T] {
	return &Cache[T]{objects: make(map[string]T)}
}

// Get returns the object stored under key, calling load to build it the
// first time. A failed load is not stored.
func (c *Cache[T]) Get(key string, load func(key string) (T, error)) (T, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, err := load(key)
	if err != nil {
		var zero T
		return zero, err
	}
	c.objects[key] = obj
	return obj, nil
}

func (c *Cache[T]) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.objects)
}

// Reset drops everything.
func (c *Cache[T]) Reset() {
	c.Lock()
	defer c.Unlock()
	clear(c.objects)
}
