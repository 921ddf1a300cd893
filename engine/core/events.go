package core

// Event represents a simulation event
type Event struct {
	Type    EventType
	Tick    uint64
	Source  EntityID
	Target  EntityID
	Faction Faction
	Amount  float64 // damage dealt, cost spent, ...
	Label   string  // archetype name where relevant
}

type EventType uint16

const (
	EvtUnitSpawned EventType = iota
	EvtSpawnDropped
	EvtAttackStarted
	EvtStrike
	EvtDamaged
	EvtEntityDied
	EvtMatchEnded
)

var eventNames = [...]string{
	EvtUnitSpawned:   "unit_spawned",
	EvtSpawnDropped:  "spawn_dropped",
	EvtAttackStarted: "attack_started",
	EvtStrike:        "strike",
	EvtDamaged:       "damaged",
	EvtEntityDied:    "entity_died",
	EvtMatchEnded:    "match_ended",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	any       []EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// OnAny registers a handler for every event type
func (eb *EventBus) OnAny(h EventHandler) {
	eb.any = append(eb.any, h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns a copy of the queued events
func (eb *EventBus) Pending() []Event {
	out := make([]Event, len(eb.queue))
	copy(out, eb.queue)
	return out
}

// Dispatch processes all queued events
func (eb *EventBus) Dispatch() {
	for _, e := range eb.queue {
		for _, h := range eb.any {
			h(e)
		}
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.queue = eb.queue[:0]
}
