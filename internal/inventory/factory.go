package inventory

import "fmt"

// SlotFactory creates one fresh slot of a concrete variant.
type SlotFactory[T comparable, S Slot[T]] func() (S, error)

// SimpleSlots returns a factory of empty simple slots.
func SimpleSlots[T comparable]() SlotFactory[T, *SimpleSlot[T]] {
	return func() (*SimpleSlot[T], error) {
		return NewSimpleSlot[T](), nil
	}
}

// StackSlots returns a factory of empty stack slots with the given capacity.
func StackSlots[T comparable](capacity int) SlotFactory[T, *StackSlot[T]] {
	return func() (*StackSlot[T], error) {
		return NewStackSlot[T](capacity)
	}
}

// LazyStackSlots returns a factory of empty lazy stack slots with the given capacity.
func LazyStackSlots[T comparable](capacity int) SlotFactory[T, *LazyStackSlot[T]] {
	return func() (*LazyStackSlot[T], error) {
		return NewLazyStackSlot[T](capacity)
	}
}

// Build creates a container of n fresh slots produced by factory.
func Build[T comparable, S slotType[T]](n int, factory SlotFactory[T, S]) (*Container[T, S], error) {
	if n <= 0 {
		return nil, ErrNoSlots
	}
	slots := make([]S, n)
	for i := range slots {
		slot, err := factory()
		if err != nil {
			return nil, fmt.Errorf("create slot %d: %w", i, err)
		}
		slots[i] = slot
	}
	return New[T](slots)
}
