package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandlerRegistry(t *testing.T) {
	t.Run("specific types", func(t *testing.T) {
		registry := NewHandlerRegistry()
		h := newTestHandler()
		registry.Register(h, "ContractCreated", "ContractRenewed")

		assert.Len(t, registry.GetHandlers("ContractCreated"), 1)
		assert.Len(t, registry.GetHandlers("ContractRenewed"), 1)
		assert.Empty(t, registry.GetHandlers("ContractExpired"))
		assert.Equal(t, 1, registry.Len())
	})

	t.Run("duplicate registration is ignored", func(t *testing.T) {
		registry := NewHandlerRegistry()
		h := newTestHandler()
		registry.Register(h, "ContractCreated")
		registry.Register(h, "ContractCreated")
		registry.Register(h)

		// typed and wildcard registration of the same handler still yields one call
		assert.Len(t, registry.GetHandlers("ContractCreated"), 1)
		assert.Len(t, registry.GetHandlers("Other"), 1)
	})

	t.Run("typed handlers precede wildcards", func(t *testing.T) {
		registry := NewHandlerRegistry()
		wildcard := newTestHandler()
		typed := newTestHandler()
		registry.Register(wildcard)
		registry.Register(typed, "ContractCreated")

		handlers := registry.GetHandlers("ContractCreated")
		assert.Len(t, handlers, 2)
		assert.Same(t, typed, handlers[0])
		assert.Same(t, wildcard, handlers[1])
	})

	t.Run("unregister removes every registration", func(t *testing.T) {
		registry := NewHandlerRegistry()
		h := newTestHandler()
		other := newTestHandler()
		registry.Register(h, "A", "B")
		registry.Register(h)
		registry.Register(other, "A")

		registry.Unregister(h)

		assert.Len(t, registry.GetHandlers("A"), 1)
		assert.Empty(t, registry.GetHandlers("B"))
		assert.Equal(t, 1, registry.Len())
	})
}
