package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCache caché con reloj controlado para simular el paso del tiempo.
func newTestCache(ttl time.Duration) (*TTLCache, *time.Time) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	c := NewTTLCache(ttl)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestTTLCache_GetDevuelveLoGuardado(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	c.Set("bodeguero-stock", "valor")
	v, ok := c.Get("bodeguero-stock")
	require.True(t, ok)
	assert.Equal(t, "valor", v)

	_, ok = c.Get("inexistente")
	assert.False(t, ok)
}

func TestTTLCache_EntradaVencidaNoSeDevuelve(t *testing.T) {
	c, now := newTestCache(5 * time.Minute)

	c.Set("clave", 42)
	*now = now.Add(5*time.Minute + time.Second)

	_, ok := c.Get("clave")
	assert.False(t, ok, "pasado el TTL la entrada está vencida")

	// La eliminación perezosa la sacó del mapa
	c.mu.RLock()
	_, stillThere := c.entries["clave"]
	c.mu.RUnlock()
	assert.False(t, stillThere)
}

func TestTTLCache_SetRenuevaElVencimiento(t *testing.T) {
	c, now := newTestCache(5 * time.Minute)

	c.Set("clave", 1)
	*now = now.Add(4 * time.Minute)
	c.Set("clave", 2)
	*now = now.Add(4 * time.Minute)

	v, ok := c.Get("clave")
	require.True(t, ok, "el segundo Set renovó el TTL")
	assert.Equal(t, 2, v)
}

func TestTTLCache_Invalidate(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Invalidate("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok, "invalidar una clave no toca las demás")
}

func TestTTLCache_InvalidateAll(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.InvalidateAll()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}
