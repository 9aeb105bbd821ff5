package inventory

// SimpleSlot holds at most one item.
type SimpleSlot[T comparable] struct {
	content T
}

// NewSimpleSlot creates an empty simple slot.
func NewSimpleSlot[T comparable]() *SimpleSlot[T] {
	return &SimpleSlot[T]{}
}

// NewSimpleSlotWith creates a simple slot already holding item.
func NewSimpleSlotWith[T comparable](item T) (*SimpleSlot[T], error) {
	if isZero(item) {
		return nil, ErrInvalidItem
	}
	return &SimpleSlot[T]{content: item}, nil
}

func (s *SimpleSlot[T]) Kind() Kind { return KindSimple }

func (s *SimpleSlot[T]) Item() (T, bool) {
	return s.content, !isZero(s.content)
}

func (s *SimpleSlot[T]) Amount() int {
	if isZero(s.content) {
		return 0
	}
	return 1
}

func (s *SimpleSlot[T]) Capacity() int { return 1 }

func (s *SimpleSlot[T]) Available() int { return 1 - s.Amount() }

func (s *SimpleSlot[T]) IsEmpty() bool { return isZero(s.content) }

func (s *SimpleSlot[T]) IsFull() bool { return !isZero(s.content) }

// CanAdd reports whether the slot is empty and item is valid.
func (s *SimpleSlot[T]) CanAdd(item T) bool {
	return s.IsEmpty() && !isZero(item)
}

func (s *SimpleSlot[T]) CanAddAmount(item T, amount int) bool {
	return accepts(s, item) && amount >= 0 && amount <= s.Available()
}

// Add stores item when CanAdd allows it. A full slot is reported with false
// and left untouched.
func (s *SimpleSlot[T]) Add(item T) bool {
	if !s.CanAdd(item) {
		return false
	}
	s.content = item
	return true
}

func (s *SimpleSlot[T]) AddAmount(item T, amount int) (int, error) {
	if isZero(item) {
		return amount, ErrInvalidItem
	}
	if amount < 0 {
		return 0, ErrInvalidAmount
	}
	if amount == 0 || !s.Add(item) {
		return amount, nil
	}
	return amount - 1, nil
}

func (s *SimpleSlot[T]) CanReplace(item T) bool {
	return !isZero(item)
}

func (s *SimpleSlot[T]) ReplaceAmount(item T) (T, int, error) {
	var zero T
	if !s.CanReplace(item) {
		return zero, 0, ErrInvalidItem
	}
	prev, n := s.content, s.Amount()
	s.content = item
	return prev, n, nil
}

// Replace stores item unconditionally and returns the previous content,
// which is empty when the slot was empty.
func (s *SimpleSlot[T]) Replace(item T) ([]T, error) {
	prev, n, err := s.ReplaceAmount(item)
	if err != nil {
		return nil, err
	}
	return repeat(prev, n), nil
}

// Get removes and returns the content.
func (s *SimpleSlot[T]) Get() (T, bool) {
	item, ok := s.Item()
	var zero T
	s.content = zero
	return item, ok
}

func (s *SimpleSlot[T]) Withdraw(amount int) (T, int, error) {
	var zero T
	if amount < 0 {
		return zero, 0, ErrInvalidAmount
	}
	if amount == 0 || s.IsEmpty() {
		return zero, 0, nil
	}
	item, _ := s.Get()
	return item, 1, nil
}

func (s *SimpleSlot[T]) Take(amount int) ([]T, error) {
	item, n, err := s.Withdraw(amount)
	if err != nil {
		return nil, err
	}
	return repeat(item, n), nil
}

func (s *SimpleSlot[T]) GetAll() []T {
	item, ok := s.Get()
	if !ok {
		return []T{}
	}
	return []T{item}
}

func (s *SimpleSlot[T]) Snapshot() SlotSnapshot[T] {
	return SlotSnapshot[T]{
		Kind:     KindSimple,
		Item:     s.content,
		Amount:   s.Amount(),
		Capacity: 1,
	}
}
