package inventory

import "iter"

// AddOrder computes the slot indexes a batch of amount units of item should
// be distributed into, in order. Slots already holding item come first,
// ascending, followed by the remaining eligible (empty) slots, ascending.
//
// Slots holding item are collected up front until their free capacity covers
// amount. The empty slots are found lazily while the sequence is consumed, so
// a caller that stops early never scans the rest of the container. Nothing is
// mutated; the order is cheap to recompute before every add.
func AddOrder[T comparable, S Slot[T]](slots []S, item T, amount int) (iter.Seq[int], error) {
	if isZero(item) {
		return nil, ErrInvalidItem
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	if amount == 0 {
		return func(func(int) bool) {}, nil
	}

	var main []int
	covered := 0
	for i, slot := range slots {
		if covered >= amount {
			break
		}
		if !holds(slot, item) || !eligible(slot, item, amount) {
			continue
		}
		main = append(main, i)
		covered += slot.Available()
	}

	return func(yield func(int) bool) {
		for _, i := range main {
			if !yield(i) {
				return
			}
		}
		for i, slot := range slots {
			if holds(slot, item) || !eligible(slot, item, amount) {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}, nil
}

func holds[T comparable](slot Slot[T], item T) bool {
	held, ok := slot.Item()
	return ok && held == item
}

// eligible reports whether slot can take the share of amount it has room for.
func eligible[T comparable](slot Slot[T], item T, amount int) bool {
	free := slot.Available()
	return free > 0 && slot.CanAddAmount(item, min(amount, free))
}
