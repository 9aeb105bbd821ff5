package storage

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eugenenazirov/slot-inventory/internal/inventory"
)

var (
	// ErrNotFound indicates that no inventory exists with the requested ID.
	ErrNotFound = errors.New("inventory not found")
	// ErrInvalidLayout indicates the requested layout violates validation rules.
	ErrInvalidLayout = errors.New("invalid inventory layout")
)

var defaultLayout = Layout{
	Kind:     inventory.KindLazyStack,
	Slots:    20,
	Capacity: 64,
}

var defaultLimits = Limits{
	MaxSlots:      1024,
	MaxCapacity:   1_000_000,
	MaxStackUnits: 1 << 20,
}

// Layout describes the shape of an inventory.
type Layout struct {
	Kind     inventory.Kind
	Slots    int
	Capacity int
}

// Limits bounds the layouts the storage accepts.
type Limits struct {
	MaxSlots    int
	MaxCapacity int
	// MaxStackUnits caps slots*capacity for materialized stacks, which keep
	// one entry per stored unit.
	MaxStackUnits int
}

// Validate checks layout against the limits. Simple layouts ignore capacity.
func (l Limits) Validate(layout Layout) error {
	if layout.Slots <= 0 || layout.Slots > l.MaxSlots {
		return fmt.Errorf("%w: slots must be between 1 and %d, got %d", ErrInvalidLayout, l.MaxSlots, layout.Slots)
	}

	switch layout.Kind {
	case inventory.KindSimple:
		return nil
	case inventory.KindStack, inventory.KindLazyStack:
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidLayout, layout.Kind)
	}

	if layout.Capacity <= 0 || layout.Capacity > l.MaxCapacity {
		return fmt.Errorf("%w: capacity must be between 1 and %d, got %d", ErrInvalidLayout, l.MaxCapacity, layout.Capacity)
	}
	if layout.Kind == inventory.KindStack && layout.Capacity > l.MaxStackUnits/layout.Slots {
		return fmt.Errorf("%w: stack inventories hold at most %d units, got %d slots of %d",
			ErrInvalidLayout, l.MaxStackUnits, layout.Slots, layout.Capacity)
	}
	return nil
}

// Summary describes a stored inventory without exposing its slots.
type Summary struct {
	ID        string
	Name      string
	Layout    Layout
	Total     int
	CreatedAt time.Time
}

// Inventory is the kind-agnostic view of a container of string items. Every
// container variant of the inventory package satisfies it.
type Inventory interface {
	Len() int
	Kind() inventory.Kind
	Slots() []inventory.SlotSnapshot[string]
	SlotAt(i int) (inventory.SlotSnapshot[string], error)
	Count(item string) int
	Find(item string) []int
	Total() int
	AddOrder(item string, amount int) ([]int, error)
	AddAmount(item string, amount int) (int, error)
	ReplaceAmount(i int, item string) (string, int, error)
	Withdraw(i, amount int) (string, int, error)
}

// Storage keeps inventories addressable by ID.
type Storage interface {
	Create(name string, layout Layout) (Summary, error)
	Get(id string) (Summary, error)
	List() []Summary
	Delete(id string) error
	View(id string, fn func(Inventory) error) error
	Update(id string, fn func(Inventory) error) error
}

// Option configures MemoryStorage.
type Option func(*MemoryStorage)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *MemoryStorage) {
		s.clock = clock
	}
}

// WithLimits overrides the default layout limits.
func WithLimits(limits Limits) Option {
	return func(s *MemoryStorage) {
		s.limits = limits
	}
}

// WithIDGenerator overrides how inventory IDs are produced.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryStorage) {
		s.newID = gen
	}
}

type entry struct {
	mu        sync.RWMutex
	id        string
	name      string
	layout    Layout
	createdAt time.Time
	inv       Inventory
}

// MemoryStorage keeps inventories in-memory. The registry is guarded by a
// RWMutex and every inventory has its own lock, so operations on different
// inventories never wait for each other.
type MemoryStorage struct {
	mu          sync.RWMutex
	inventories map[string]*entry

	limits Limits
	clock  func() time.Time
	newID  func() string
}

// NewMemoryStorage creates an empty storage.
func NewMemoryStorage(opts ...Option) *MemoryStorage {
	s := &MemoryStorage{
		inventories: make(map[string]*entry),
		limits:      defaultLimits,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultLayout returns the layout used when callers do not specify one.
func DefaultLayout() Layout {
	return defaultLayout
}

// DefaultLimits returns the default layout limits.
func DefaultLimits() Limits {
	return defaultLimits
}

// Create validates layout, builds the matching container and stores it.
func (s *MemoryStorage) Create(name string, layout Layout) (Summary, error) {
	normalized, err := s.normalizeLayout(layout)
	if err != nil {
		return Summary{}, err
	}
	inv, err := newContainer(normalized)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}

	e := &entry{
		id:        s.newID(),
		name:      name,
		layout:    normalized,
		createdAt: s.clock(),
		inv:       inv,
	}

	s.mu.Lock()
	s.inventories[e.id] = e
	s.mu.Unlock()

	return e.summary(), nil
}

// Get returns the summary of inventory id.
func (s *MemoryStorage) Get(id string) (Summary, error) {
	e, err := s.lookup(id)
	if err != nil {
		return Summary{}, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.summary(), nil
}

// List returns summaries of every inventory ordered by creation time.
func (s *MemoryStorage) List() []Summary {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.inventories))
	for _, e := range s.inventories {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		e.mu.RLock()
		out = append(out, e.summary())
		e.mu.RUnlock()
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Delete removes inventory id.
func (s *MemoryStorage) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inventories[id]; !ok {
		return ErrNotFound
	}
	delete(s.inventories, id)
	return nil
}

// View runs fn with shared access to inventory id. fn must not mutate it.
func (s *MemoryStorage) View(id string, fn func(Inventory) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.inv)
}

// Update runs fn with exclusive access to inventory id.
func (s *MemoryStorage) Update(id string, fn func(Inventory) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.inv)
}

func (s *MemoryStorage) lookup(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.inventories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStorage) normalizeLayout(layout Layout) (Layout, error) {
	if err := s.limits.Validate(layout); err != nil {
		return Layout{}, err
	}
	if layout.Kind == inventory.KindSimple {
		layout.Capacity = 1
	}
	return layout, nil
}

func (e *entry) summary() Summary {
	return Summary{
		ID:        e.id,
		Name:      e.name,
		Layout:    e.layout,
		Total:     e.inv.Total(),
		CreatedAt: e.createdAt,
	}
}

func newContainer(layout Layout) (Inventory, error) {
	switch layout.Kind {
	case inventory.KindSimple:
		inv, err := inventory.Build(layout.Slots, inventory.SimpleSlots[string]())
		if err != nil {
			return nil, err
		}
		return inv, nil
	case inventory.KindStack:
		inv, err := inventory.Build(layout.Slots, inventory.StackSlots[string](layout.Capacity))
		if err != nil {
			return nil, err
		}
		return inv, nil
	case inventory.KindLazyStack:
		inv, err := inventory.Build(layout.Slots, inventory.LazyStackSlots[string](layout.Capacity))
		if err != nil {
			return nil, err
		}
		return inv, nil
	}
	return nil, fmt.Errorf("unknown kind %s", layout.Kind)
}
