package inventory

import (
	"fmt"
	"slices"
)

// Container owns a fixed-length sequence of slots of one variant.
type Container[T comparable, S slotType[T]] struct {
	slots []S
}

type (
	// Inventory is a container of simple slots.
	Inventory[T comparable] = Container[T, *SimpleSlot[T]]
	// StackInventory is a container of stack slots.
	StackInventory[T comparable] = Container[T, *StackSlot[T]]
	// LazyStackInventory is a container of lazy stack slots.
	LazyStackInventory[T comparable] = Container[T, *LazyStackSlot[T]]
)

// New returns a container over slots. Empty input, nil slots and slots listed
// twice are rejected.
//
// The container takes ownership of the slots: the caller must not mutate
// them afterwards or hand them to another container, since the container
// cannot observe changes made behind its back. Build creates containers whose
// slots are never visible to the caller.
func New[T comparable, S slotType[T]](slots []S) (*Container[T, S], error) {
	if len(slots) == 0 {
		return nil, ErrNoSlots
	}

	var zero S
	seen := make(map[S]int, len(slots))
	owned := make([]S, len(slots))
	for i, slot := range slots {
		if slot == zero {
			return nil, fmt.Errorf("%w: index %d", ErrNilSlot, i)
		}
		if j, dup := seen[slot]; dup {
			return nil, fmt.Errorf("%w: indexes %d and %d", ErrSharedSlot, j, i)
		}
		seen[slot] = i
		owned[i] = slot
	}
	return &Container[T, S]{slots: owned}, nil
}

// NewInventory creates a container of simple slots.
func NewInventory[T comparable](slots []*SimpleSlot[T]) (*Inventory[T], error) {
	return New[T](slots)
}

// NewStackInventory creates a container of stack slots.
func NewStackInventory[T comparable](slots []*StackSlot[T]) (*StackInventory[T], error) {
	return New[T](slots)
}

// NewLazyStackInventory creates a container of lazy stack slots.
func NewLazyStackInventory[T comparable](slots []*LazyStackSlot[T]) (*LazyStackInventory[T], error) {
	return New[T](slots)
}

// Len returns the number of slots.
func (c *Container[T, S]) Len() int {
	return len(c.slots)
}

// Kind returns the slot variant of the container.
func (c *Container[T, S]) Kind() Kind {
	return c.slots[0].Kind()
}

// At returns a copy of the units stored in slot i.
func (c *Container[T, S]) At(i int) ([]T, error) {
	slot, err := c.slot(i)
	if err != nil {
		return nil, err
	}
	return slot.Snapshot().Contents(), nil
}

// SlotAt returns a snapshot of slot i.
func (c *Container[T, S]) SlotAt(i int) (SlotSnapshot[T], error) {
	slot, err := c.slot(i)
	if err != nil {
		return SlotSnapshot[T]{}, err
	}
	return slot.Snapshot(), nil
}

// Slots returns snapshots of every slot in index order.
func (c *Container[T, S]) Slots() []SlotSnapshot[T] {
	out := make([]SlotSnapshot[T], len(c.slots))
	for i, slot := range c.slots {
		out[i] = slot.Snapshot()
	}
	return out
}

// GetAll returns every stored unit equal to item, in slot order. The
// container is not modified.
func (c *Container[T, S]) GetAll(item T) []T {
	return repeat(item, c.Count(item))
}

// Count returns the number of stored units equal to item.
func (c *Container[T, S]) Count(item T) int {
	if isZero(item) {
		return 0
	}
	total := 0
	for _, slot := range c.slots {
		if holds(slot, item) {
			total += slot.Amount()
		}
	}
	return total
}

// Find returns the indexes of slots holding item.
func (c *Container[T, S]) Find(item T) []int {
	var out []int
	if isZero(item) {
		return out
	}
	for i, slot := range c.slots {
		if holds(slot, item) {
			out = append(out, i)
		}
	}
	return out
}

// Total returns the number of stored units across all slots.
func (c *Container[T, S]) Total() int {
	total := 0
	for _, slot := range c.slots {
		total += slot.Amount()
	}
	return total
}

// IsEmpty reports whether no slot holds anything.
func (c *Container[T, S]) IsEmpty() bool {
	for _, slot := range c.slots {
		if !slot.IsEmpty() {
			return false
		}
	}
	return true
}

// IsFull reports whether every slot is at capacity.
func (c *Container[T, S]) IsFull() bool {
	for _, slot := range c.slots {
		if !slot.IsFull() {
			return false
		}
	}
	return true
}

// AddOrder returns the placement order AddAmount would use for amount units
// of item.
func (c *Container[T, S]) AddOrder(item T, amount int) ([]int, error) {
	order, err := AddOrder(c.slots, item, amount)
	if err != nil {
		return nil, err
	}
	return slices.Collect(order), nil
}

// AddAmount distributes amount units of item over the container following
// the placement order and returns how many units did not fit.
func (c *Container[T, S]) AddAmount(item T, amount int) (int, error) {
	order, err := AddOrder(c.slots, item, amount)
	if err != nil {
		return 0, err
	}

	remaining := amount
	for i := range order {
		if remaining == 0 {
			break
		}
		left, err := c.slots[i].AddAmount(item, remaining)
		if err != nil {
			return 0, fmt.Errorf("add to slot %d: %w", i, err)
		}
		remaining = left
	}
	return remaining, nil
}

// AddItems places a batch of items and returns the units that did not fit.
// Different items are placed one identity at a time, in order of first
// appearance.
func (c *Container[T, S]) AddItems(items ...T) ([]T, error) {
	var order []T
	counts := make(map[T]int)
	for _, item := range items {
		if isZero(item) {
			return nil, ErrInvalidItem
		}
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	leftover := []T{}
	for _, item := range order {
		left, err := c.AddAmount(item, counts[item])
		if err != nil {
			return nil, err
		}
		leftover = append(leftover, repeat(item, left)...)
	}
	return leftover, nil
}

// Replace swaps the content of slot i for a single item and returns the
// units previously stored there.
func (c *Container[T, S]) Replace(i int, item T) ([]T, error) {
	slot, err := c.slot(i)
	if err != nil {
		return nil, err
	}
	prev, n, err := slot.ReplaceAmount(item)
	if err != nil {
		return nil, err
	}
	return repeat(prev, n), nil
}

// ReplaceAmount is Replace reporting the previous content as a counter.
func (c *Container[T, S]) ReplaceAmount(i int, item T) (T, int, error) {
	slot, err := c.slot(i)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return slot.ReplaceAmount(item)
}

// Take removes up to amount units from slot i.
func (c *Container[T, S]) Take(i, amount int) ([]T, error) {
	slot, err := c.slot(i)
	if err != nil {
		return nil, err
	}
	return slot.Take(amount)
}

// Withdraw removes up to amount units from slot i and reports them as a counter.
func (c *Container[T, S]) Withdraw(i, amount int) (T, int, error) {
	slot, err := c.slot(i)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return slot.Withdraw(amount)
}

// Drain empties slot i and returns its units.
func (c *Container[T, S]) Drain(i int) ([]T, error) {
	slot, err := c.slot(i)
	if err != nil {
		return nil, err
	}
	return slot.GetAll(), nil
}

func (c *Container[T, S]) slot(i int) (S, error) {
	if i < 0 || i >= len(c.slots) {
		var zero S
		return zero, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(c.slots))
	}
	return c.slots[i], nil
}
