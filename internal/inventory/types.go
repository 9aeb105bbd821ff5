package inventory

import "fmt"

// Kind identifies a slot variant.
type Kind int

const (
	KindSimple Kind = iota + 1
	KindStack
	KindLazyStack
)

var kindNames = map[Kind]string{
	KindSimple:    "simple",
	KindStack:     "stack",
	KindLazyStack: "lazy-stack",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves the textual name of a slot variant.
func ParseKind(name string) (Kind, error) {
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown slot kind %q", name)
}

// Slot is the capability set shared by every slot variant. Stack-like
// operations are defined for simple slots as a stack of capacity one.
type Slot[T comparable] interface {
	Kind() Kind
	Item() (T, bool)
	Amount() int
	Capacity() int
	Available() int
	IsEmpty() bool
	IsFull() bool

	CanAdd(item T) bool
	CanAddAmount(item T, amount int) bool
	// AddAmount stores as many of amount units as fit and returns the rest.
	AddAmount(item T, amount int) (int, error)

	CanReplace(item T) bool
	// ReplaceAmount swaps the whole content for a single unit of item and
	// reports what was there before as an (item, amount) pair.
	ReplaceAmount(item T) (T, int, error)

	Get() (T, bool)
	// Withdraw removes up to amount units and reports what was removed.
	Withdraw(amount int) (T, int, error)
	Take(amount int) ([]T, error)
	GetAll() []T

	Snapshot() SlotSnapshot[T]
}

// SlotSnapshot is a read-only copy of a slot's state.
type SlotSnapshot[T comparable] struct {
	Kind     Kind
	Item     T
	Amount   int
	Capacity int
}

// IsEmpty reports whether the snapshot holds no units.
func (s SlotSnapshot[T]) IsEmpty() bool {
	return s.Amount == 0
}

// Contents materializes the snapshot as individual units.
func (s SlotSnapshot[T]) Contents() []T {
	return repeat(s.Item, s.Amount)
}

// slotType constrains container slot types to comparable implementations so
// nil pointers can be detected without reflection.
type slotType[T comparable] interface {
	comparable
	Slot[T]
}

func isZero[T comparable](v T) bool {
	var zero T
	return v == zero
}

func repeat[T any](item T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	out := make([]T, n)
	for i := range out {
		out[i] = item
	}
	return out
}
