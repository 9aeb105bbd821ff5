package inventory

// LazyStackSlot behaves like StackSlot but keeps a single item and a counter
// instead of one entry per unit. Units are synthesized when a caller asks for
// them.
type LazyStackSlot[T comparable] struct {
	item     T
	amount   int
	capacity int
}

// NewLazyStackSlot creates an empty lazy stack slot with the given capacity.
func NewLazyStackSlot[T comparable](capacity int) (*LazyStackSlot[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &LazyStackSlot[T]{capacity: capacity}, nil
}

// NewLazyStackSlotWith creates a lazy stack slot holding amount units of item.
func NewLazyStackSlotWith[T comparable](capacity int, item T, amount int) (*LazyStackSlot[T], error) {
	s, err := NewLazyStackSlot[T](capacity)
	if err != nil {
		return nil, err
	}
	switch {
	case amount < 0:
		return nil, ErrInvalidAmount
	case amount > capacity:
		return nil, ErrOverCapacity
	case amount > 0 && isZero(item):
		return nil, ErrInvalidItem
	}
	if amount > 0 {
		s.item = item
		s.amount = amount
	}
	return s, nil
}

func (s *LazyStackSlot[T]) Kind() Kind { return KindLazyStack }

func (s *LazyStackSlot[T]) Item() (T, bool) {
	return s.item, s.amount > 0
}

func (s *LazyStackSlot[T]) Amount() int { return s.amount }

func (s *LazyStackSlot[T]) Capacity() int { return s.capacity }

func (s *LazyStackSlot[T]) Available() int { return s.capacity - s.amount }

func (s *LazyStackSlot[T]) IsEmpty() bool { return s.amount == 0 }

func (s *LazyStackSlot[T]) IsFull() bool { return s.amount == s.capacity }

// Contents materializes the stored units.
func (s *LazyStackSlot[T]) Contents() []T {
	return repeat(s.item, s.amount)
}

func (s *LazyStackSlot[T]) CanAdd(item T) bool {
	return s.CanAddAmount(item, 1)
}

func (s *LazyStackSlot[T]) CanAddAmount(item T, amount int) bool {
	return accepts(s, item) && amount >= 0 && amount <= s.Available()
}

// CanAddItems reports whether the whole batch fits into the slot.
func (s *LazyStackSlot[T]) CanAddItems(items []T) bool {
	if len(items) == 0 || checkBatch(items) != nil {
		return false
	}
	return s.CanAddAmount(items[0], len(items))
}

// Add stores as many of items as fit and returns the leftover.
func (s *LazyStackSlot[T]) Add(items ...T) ([]T, error) {
	if len(items) == 0 {
		return []T{}, nil
	}
	if err := checkBatch(items); err != nil {
		return nil, err
	}
	left, err := s.AddAmount(items[0], len(items))
	if err != nil {
		return nil, err
	}
	return append([]T{}, items[len(items)-left:]...), nil
}

func (s *LazyStackSlot[T]) AddAmount(item T, amount int) (int, error) {
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
	if n > 0 {
		s.item = item
		s.amount += n
	}
	return amount - n, nil
}

func (s *LazyStackSlot[T]) CanReplace(item T) bool {
	return !isZero(item)
}

func (s *LazyStackSlot[T]) ReplaceAmount(item T) (T, int, error) {
	var zero T
	if !s.CanReplace(item) {
		return zero, 0, ErrInvalidItem
	}
	prev, n := s.item, s.amount
	s.item = item
	s.amount = 1
	return prev, n, nil
}

// CanReplaceItems reports whether items may become the whole content of the
// slot.
func (s *LazyStackSlot[T]) CanReplaceItems(items []T) bool {
	return checkReplacement(items, s.capacity) == nil
}

// Replace stores items in place of the current content and returns the
// previous units.
func (s *LazyStackSlot[T]) Replace(items ...T) ([]T, error) {
	if err := checkReplacement(items, s.capacity); err != nil {
		return nil, err
	}
	prev := repeat(s.item, s.amount)
	s.item, s.amount = items[0], len(items)
	return prev, nil
}

func (s *LazyStackSlot[T]) Get() (T, bool) {
	item, n, _ := s.Withdraw(1)
	return item, n == 1
}

func (s *LazyStackSlot[T]) Withdraw(amount int) (T, int, error) {
	var zero T
	if amount < 0 {
		return zero, 0, ErrInvalidAmount
	}
	if s.amount == 0 || amount == 0 {
		return zero, 0, nil
	}
	item := s.item
	n := min(amount, s.amount)
	s.amount -= n
	if s.amount == 0 {
		s.item = zero
	}
	return item, n, nil
}

func (s *LazyStackSlot[T]) Take(amount int) ([]T, error) {
	item, n, err := s.Withdraw(amount)
	if err != nil {
		return nil, err
	}
	return repeat(item, n), nil
}

func (s *LazyStackSlot[T]) GetAll() []T {
	out, _ := s.Take(s.amount)
	return out
}

func (s *LazyStackSlot[T]) Snapshot() SlotSnapshot[T] {
	return SlotSnapshot[T]{
		Kind:     KindLazyStack,
		Item:     s.item,
		Amount:   s.amount,
		Capacity: s.capacity,
	}
}
