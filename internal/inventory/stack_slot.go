package inventory

// StackSlot holds up to a fixed capacity of identical items, storing every
// unit individually.
type StackSlot[T comparable] struct {
	contents []T
	capacity int
}

// NewStackSlot creates an empty stack slot with the given capacity. Storage
// for units grows as they are added.
func NewStackSlot[T comparable](capacity int) (*StackSlot[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &StackSlot[T]{capacity: capacity}, nil
}

// NewStackSlotWith creates a stack slot pre-populated with items.
func NewStackSlotWith[T comparable](capacity int, items ...T) (*StackSlot[T], error) {
	s, err := NewStackSlot[T](capacity)
	if err != nil {
		return nil, err
	}
	if err := checkBatch(items); err != nil {
		return nil, err
	}
	if len(items) > capacity {
		return nil, ErrOverCapacity
	}
	s.contents = append(s.contents, items...)
	return s, nil
}

func (s *StackSlot[T]) Kind() Kind { return KindStack }

func (s *StackSlot[T]) Item() (T, bool) {
	if len(s.contents) == 0 {
		var zero T
		return zero, false
	}
	return s.contents[0], true
}

func (s *StackSlot[T]) Amount() int { return len(s.contents) }

func (s *StackSlot[T]) Capacity() int { return s.capacity }

func (s *StackSlot[T]) Available() int { return s.capacity - len(s.contents) }

func (s *StackSlot[T]) IsEmpty() bool { return len(s.contents) == 0 }

func (s *StackSlot[T]) IsFull() bool { return len(s.contents) == s.capacity }

// Contents returns a copy of the stored units.
func (s *StackSlot[T]) Contents() []T {
	out := make([]T, len(s.contents))
	copy(out, s.contents)
	return out
}

func (s *StackSlot[T]) CanAdd(item T) bool {
	return s.CanAddAmount(item, 1)
}

func (s *StackSlot[T]) CanAddAmount(item T, amount int) bool {
	return accepts(s, item) && amount >= 0 && amount <= s.Available()
}

// CanAddItems reports whether the whole batch fits into the slot.
func (s *StackSlot[T]) CanAddItems(items []T) bool {
	if len(items) == 0 {
		return false
	}
	if checkBatch(items) != nil {
		return false
	}
	return s.CanAddAmount(items[0], len(items))
}

// Add stores as many of items as fit and returns the leftover. A batch that
// does not match the held item is returned whole.
func (s *StackSlot[T]) Add(items ...T) ([]T, error) {
	if len(items) == 0 {
		return []T{}, nil
	}
	if err := checkBatch(items); err != nil {
		return nil, err
	}
	if !accepts(s, items[0]) {
		return append([]T(nil), items...), nil
	}
	n := min(len(items), s.Available())
	s.contents = append(s.contents, items[:n]...)
	return append([]T{}, items[n:]...), nil
}

func (s *StackSlot[T]) AddAmount(item T, amount int) (int, error) {
	if isZero(item) {
		return amount, ErrInvalidItem
	}
	if amount < 0 {
		return 0, ErrInvalidAmount
	}
	if !accepts(s, item) {
		return amount, nil
	}
	n := min(amount, s.Available())
	for range n {
		s.contents = append(s.contents, item)
	}
	return amount - n, nil
}

func (s *StackSlot[T]) CanReplace(item T) bool {
	return !isZero(item)
}

func (s *StackSlot[T]) ReplaceAmount(item T) (T, int, error) {
	var zero T
	if !s.CanReplace(item) {
		return zero, 0, ErrInvalidItem
	}
	prev, _ := s.Item()
	n := len(s.contents)
	s.truncate(0)
	s.contents = append(s.contents, item)
	return prev, n, nil
}

// CanReplaceItems reports whether items may become the whole content of the
// slot.
func (s *StackSlot[T]) CanReplaceItems(items []T) bool {
	return checkReplacement(items, s.capacity) == nil
}

// Replace drains the stack, stores items in its place and returns the
// drained units. items must be a non-empty batch of one item that fits the
// capacity.
func (s *StackSlot[T]) Replace(items ...T) ([]T, error) {
	if err := checkReplacement(items, s.capacity); err != nil {
		return nil, err
	}
	prev := s.GetAll()
	s.contents = append(s.contents, items...)
	return prev, nil
}

// Get removes a single unit from the top of the stack.
func (s *StackSlot[T]) Get() (T, bool) {
	item, n, _ := s.Withdraw(1)
	return item, n == 1
}

func (s *StackSlot[T]) Withdraw(amount int) (T, int, error) {
	var zero T
	if amount < 0 {
		return zero, 0, ErrInvalidAmount
	}
	item, ok := s.Item()
	if !ok || amount == 0 {
		return zero, 0, nil
	}
	n := min(amount, len(s.contents))
	s.truncate(len(s.contents) - n)
	return item, n, nil
}

// Take removes up to amount units from the top of the stack.
func (s *StackSlot[T]) Take(amount int) ([]T, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	n := min(amount, len(s.contents))
	out := make([]T, n)
	copy(out, s.contents[len(s.contents)-n:])
	s.truncate(len(s.contents) - n)
	return out, nil
}

// GetAll drains the stack.
func (s *StackSlot[T]) GetAll() []T {
	out := s.Contents()
	s.truncate(0)
	return out
}

func (s *StackSlot[T]) Snapshot() SlotSnapshot[T] {
	item, _ := s.Item()
	return SlotSnapshot[T]{
		Kind:     KindStack,
		Item:     item,
		Amount:   len(s.contents),
		Capacity: s.capacity,
	}
}

// truncate shrinks the stack to n units, zeroing the released tail.
func (s *StackSlot[T]) truncate(n int) {
	clear(s.contents[n:])
	s.contents = s.contents[:n]
}

// accepts reports whether item may be stacked onto slot without exceeding
// the single-identity rule. Capacity is not considered.
func accepts[T comparable](slot Slot[T], item T) bool {
	if isZero(item) {
		return false
	}
	held, ok := slot.Item()
	return !ok || held == item
}

func checkReplacement[T comparable](items []T, capacity int) error {
	if len(items) == 0 {
		return ErrInvalidAmount
	}
	if err := checkBatch(items); err != nil {
		return err
	}
	if len(items) > capacity {
		return ErrOverCapacity
	}
	return nil
}

// checkBatch validates that items are non-zero and identical.
func checkBatch[T comparable](items []T) error {
	for _, item := range items {
		if isZero(item) {
			return ErrInvalidItem
		}
	}
	for _, item := range items[min(1, len(items)):] {
		if item != items[0] {
			return ErrMixedItems
		}
	}
	return nil
}
