// Package events carries in-process domain notifications between features:
// public submissions, admin actions and session changes all travel on one bus.
package events

import (
	"log"
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TopicAdminAction = "admin:action"
	TopicSubmission  = "site:submission"
)

// AdminAction is published after every successful back-office mutation.
type AdminAction struct {
	AdminID    *uuid.UUID
	Action     string
	EntityType string
	EntityID   *uuid.UUID
	Changes    map[string]any
	IP         string
	At         time.Time
}

// Submission is published when a visitor creates a record through a public form.
type Submission struct {
	Type       string // application | job_posting | job_application
	EntityType string
	EntityID   uuid.UUID
	Title      string
	Message    string
	Tags       []string
	At         time.Time
}

type subscription struct {
	topic string
	fn    any
}

// Bus wraps EventBus and remembers its subscriptions so shutdown can drain
// async handlers and detach them.
type Bus struct {
	bus evbus.Bus

	mu   sync.Mutex
	subs []subscription
}

func New() *Bus { return &Bus{bus: evbus.New()} }

// Raw exposes the underlying bus for packages that manage their own topics.
func (b *Bus) Raw() evbus.Bus {
	if b == nil {
		return nil
	}
	return b.bus
}

func (b *Bus) Subscribe(topic string, fn any) error {
	if err := b.bus.Subscribe(topic, fn); err != nil {
		return err
	}
	b.track(topic, fn)
	return nil
}

func (b *Bus) SubscribeAsync(topic string, fn any) error {
	if err := b.bus.SubscribeAsync(topic, fn, false); err != nil {
		return err
	}
	b.track(topic, fn)
	return nil
}

func (b *Bus) track(topic string, fn any) {
	b.mu.Lock()
	b.subs = append(b.subs, subscription{topic: topic, fn: fn})
	b.mu.Unlock()
}

// Publish is a no-op on a nil bus, so features can run without listeners.
func (b *Bus) Publish(topic string, payload any) {
	if b == nil || b.bus == nil {
		return
	}
	if !b.bus.HasCallback(topic) {
		return
	}
	b.bus.Publish(topic, payload)
}

func (b *Bus) Wait() {
	if b != nil {
		b.bus.WaitAsync()
	}
}

func (b *Bus) Close() {
	if b == nil {
		return
	}
	b.bus.WaitAsync()
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()
	for _, s := range subs {
		if err := b.bus.Unsubscribe(s.topic, s.fn); err != nil {
			log.Printf("[WARN] unsubscribe %s: %v", s.topic, err)
		}
	}
}

// RecordAdmin publishes an AdminAction for the admin in c's locals.
func RecordAdmin(c *fiber.Ctx, bus *Bus, action, entityType string, entityID *uuid.UUID, changes map[string]any) {
	if bus == nil {
		return
	}
	ev := AdminAction{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changes,
		IP:         c.IP(),
		At:         time.Now(),
	}
	if s, ok := c.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			ev.AdminID = &id
		}
	}
	bus.Publish(TopicAdminAction, ev)
}

// IDPtr is a small helper for RecordAdmin call sites.
func IDPtr(id uuid.UUID) *uuid.UUID { return &id }
