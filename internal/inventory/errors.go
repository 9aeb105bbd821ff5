package inventory

import "errors"

var (
	// ErrInvalidItem is returned when the zero value is used as an item.
	ErrInvalidItem = errors.New("item must not be the zero value")
	// ErrInvalidAmount is returned for negative amounts.
	ErrInvalidAmount = errors.New("amount must be a non-negative integer")
	// ErrInvalidCapacity is returned when a stack is created with a non-positive capacity.
	ErrInvalidCapacity = errors.New("capacity must be a positive integer")
	// ErrMixedItems is returned when a batch destined for one stack contains different items.
	ErrMixedItems = errors.New("items in a stack must be identical")
	// ErrOverCapacity is returned when a pre-populated slot would exceed its capacity.
	ErrOverCapacity = errors.New("amount exceeds slot capacity")
	// ErrIndexOutOfRange is returned for slot indexes outside the container.
	ErrIndexOutOfRange = errors.New("slot index out of range")
	// ErrNoSlots is returned when a container is built without slots.
	ErrNoSlots = errors.New("container requires at least one slot")
	// ErrNilSlot is returned when a container is built with a nil slot.
	ErrNilSlot = errors.New("container slot must not be nil")
	// ErrSharedSlot is returned when the same slot appears twice in a container.
	ErrSharedSlot = errors.New("container slot listed more than once")
)
