package units

import (
	"sync"

	"github.com/gravitas-games/hexunits/internal/combat"
	"github.com/gravitas-games/hexunits/pkg/hex"
)

// EventType represents the type of unit event.
type EventType int

const (
	// EventUnitCreated is emitted when a unit is placed on the map.
	EventUnitCreated EventType = iota
	// EventUnitRemoved is emitted when a unit leaves the table.
	EventUnitRemoved
	// EventUnitMoved is emitted after a teleport or a path move.
	EventUnitMoved
	// EventCombatResolved is emitted after two units fought.
	EventCombatResolved
)

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventUnitCreated:
		return "UnitCreated"
	case EventUnitRemoved:
		return "UnitRemoved"
	case EventUnitMoved:
		return "UnitMoved"
	case EventCombatResolved:
		return "CombatResolved"
	default:
		return "Unknown"
	}
}

// AnyPlayer subscribes a handler to the events of every player.
const AnyPlayer = -1

// Event describes a completed manager operation.
type Event struct {
	Type     EventType       `json:"type"`
	UnitID   int             `json:"unitId"`
	Player   int             `json:"player"`
	From     hex.Cube        `json:"from"`
	To       hex.Cube        `json:"to"`
	Layer    int             `json:"layer"`
	Cost     int             `json:"cost,omitempty"`     // movement points spent on a path move
	TargetID int             `json:"targetId,omitempty"` // defender of a combat
	Outcome  *combat.Outcome `json:"outcome,omitempty"`
}

// EventBus manages event subscriptions and delivery.
type EventBus interface {
	// Subscribe registers a handler for the events of one player, or of
	// every player when player is AnyPlayer.
	Subscribe(player int, handler func(Event))

	// Unsubscribe removes the handlers of a player.
	Unsubscribe(player int)

	// Publish delivers an event to the subscribed handlers.
	Publish(event Event)
}

// SimpleEventBus is a basic in-memory event bus implementation.
type SimpleEventBus struct {
	mu       sync.RWMutex
	handlers map[int][]func(Event)
}

// NewSimpleEventBus creates a new event bus.
func NewSimpleEventBus() *SimpleEventBus {
	return &SimpleEventBus{handlers: make(map[int][]func(Event))}
}

// Subscribe registers a handler for events of a specific player.
func (bus *SimpleEventBus) Subscribe(player int, handler func(Event)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[player] = append(bus.handlers[player], handler)
}

// Unsubscribe removes the handlers for a player.
func (bus *SimpleEventBus) Unsubscribe(player int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.handlers, player)
}

// Publish calls the player's handlers, then the wildcard handlers, on the
// caller's goroutine, so they observe the manager state right after the
// operation.
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.RLock()
	handlers := append([]func(Event){}, bus.handlers[event.Player]...)
	if event.Player != AnyPlayer {
		handlers = append(handlers, bus.handlers[AnyPlayer]...)
	}
	bus.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// NullEventBus is an event bus that does nothing.
type NullEventBus struct{}

// NewNullEventBus creates a new null event bus.
func NewNullEventBus() *NullEventBus {
	return &NullEventBus{}
}

// Subscribe does nothing.
func (bus *NullEventBus) Subscribe(player int, handler func(Event)) {}

// Unsubscribe does nothing.
func (bus *NullEventBus) Unsubscribe(player int) {}

// Publish does nothing.
func (bus *NullEventBus) Publish(event Event) {}
