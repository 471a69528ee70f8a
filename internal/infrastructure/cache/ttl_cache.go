package cache

import (
	"sync"
	"time"
)

// Cache almacén clave-valor con expiración. Se inyecta donde haga falta
// cachear lecturas calientes; Invalidate permite expirar una clave de forma
// explícita tras una escritura.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Invalidate(key string)
	InvalidateAll()
}

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache implementación en memoria de Cache con TTL fijo por instancia.
// Las entradas vencidas se eliminan de forma perezosa en Get.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ Cache = (*TTLCache)(nil)

// NewTTLCache construye la caché con el TTL indicado.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get devuelve el valor si existe y no venció.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		// Recheck bajo el write lock: otro Set pudo renovar la entrada.
		if cur, ok := c.entries[key]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set guarda el valor con el TTL de la caché.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate elimina una clave concreta.
func (c *TTLCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll vacía la caché.
func (c *TTLCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}
