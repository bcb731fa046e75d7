package cache

import (
	"sync"
	"time"
)

// Clock función de tiempo inyectable; los tests la fijan para controlar la expiración.
type Clock func() time.Time

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache es una caché en memoria con expiración por entrada. Es un
// componente explícito con su propio espacio de llaves, inyectado en los
// casos de uso en lugar de un global de módulo.
type TTLCache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     Clock
	entries map[string]entry[V]
}

// Option opción de construcción de la caché.
type Option[V any] func(*TTLCache[V])

// WithClock reemplaza la fuente de tiempo (para tests).
func WithClock[V any](clock Clock) Option[V] {
	return func(c *TTLCache[V]) {
		c.now = clock
	}
}

// New construye una caché con el TTL indicado.
func New[V any](ttl time.Duration, opts ...Option[V]) *TTLCache[V] {
	c := &TTLCache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[V]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retorna el valor vigente para la llave. Las entradas vencidas se
// eliminan perezosamente en la lectura.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set guarda el valor con vencimiento now+TTL.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Delete invalida una llave.
func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Purge elimina todas las entradas vencidas.
func (c *TTLCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// Len retorna el número de entradas almacenadas (incluidas las vencidas aún no purgadas).
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
