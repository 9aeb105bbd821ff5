package inventory

import (
	"errors"
	"slices"
	"testing"
)

// stackContainer is the part of the container API shared by every variant.
type stackContainer interface {
	Len() int
	Kind() Kind
	At(i int) ([]string, error)
	AddAmount(item string, amount int) (int, error)
	AddItems(items ...string) ([]string, error)
	Count(item string) int
	Total() int
}

func stackContainers(t *testing.T, n, capacity int) map[string]stackContainer {
	t.Helper()

	stack, err := Build(n, StackSlots[string](capacity))
	if err != nil {
		t.Fatalf("Build stack returned error: %v", err)
	}
	lazy, err := Build(n, LazyStackSlots[string](capacity))
	if err != nil {
		t.Fatalf("Build lazy stack returned error: %v", err)
	}
	return map[string]stackContainer{"Stack": stack, "LazyStack": lazy}
}

func TestContainerEndToEndScenario(t *testing.T) {
	t.Parallel()

	for name, inv := range stackContainers(t, 3, 2) {
		inv := inv
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			left, err := inv.AddAmount("A", 5)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if left != 0 {
				t.Fatalf("expected no leftover, got %d", left)
			}

			want := [][]string{{"A", "A"}, {"A", "A"}, {"A"}}
			for i, w := range want {
				got, err := inv.At(i)
				if err != nil {
					t.Fatalf("At(%d) returned error: %v", i, err)
				}
				if !slices.Equal(got, w) {
					t.Fatalf("slot %d: expected %v, got %v", i, w, got)
				}
			}

			leftover, err := inv.AddItems("B")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(leftover, []string{"B"}) {
				t.Fatalf("expected [B] leftover, got %v", leftover)
			}
			if inv.Count("A") != 5 {
				t.Fatalf("expected 5 A to remain, got %d", inv.Count("A"))
			}
		})
	}
}

func TestContainerAddFillsMatchingSlotsFirst(t *testing.T) {
	t.Parallel()

	inv, err := Build(4, LazyStackSlots[string](10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := inv.Replace(2, "X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	left, err := inv.AddAmount("X", 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left != 0 {
		t.Fatalf("expected no leftover, got %d", left)
	}

	amounts := make([]int, inv.Len())
	for i, s := range inv.Slots() {
		amounts[i] = s.Amount
	}
	if want := []int{3, 0, 10, 0}; !slices.Equal(amounts, want) {
		t.Fatalf("expected amounts %v, got %v", want, amounts)
	}
	if got := inv.Find("X"); !slices.Equal(got, []int{0, 2}) {
		t.Fatalf("expected X in slots [0 2], got %v", got)
	}
}

func TestContainerConstructionRejection(t *testing.T) {
	t.Parallel()

	a, b := NewSimpleSlot[string](), NewSimpleSlot[string]()

	tests := []struct {
		name  string
		slots []*SimpleSlot[string]
		want  error
	}{
		{name: "Nil", slots: nil, want: ErrNoSlots},
		{name: "Empty", slots: []*SimpleSlot[string]{}, want: ErrNoSlots},
		{name: "NilElement", slots: []*SimpleSlot[string]{a, nil, b}, want: ErrNilSlot},
		{name: "SharedSlot", slots: []*SimpleSlot[string]{a, b, a}, want: ErrSharedSlot},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			inv, err := NewInventory(tc.slots)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if inv != nil {
				t.Fatalf("expected no container to be produced")
			}
		})
	}

	if _, err := Build(0, SimpleSlots[string]()); !errors.Is(err, ErrNoSlots) {
		t.Fatalf("expected ErrNoSlots, got %v", err)
	}
	if _, err := Build(2, StackSlots[string](0)); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestContainerIndexRange(t *testing.T) {
	t.Parallel()

	inv, err := Build(3, StackSlots[string](2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, i := range []int{-1, inv.Len()} {
		if _, err := inv.At(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("At(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if _, err := inv.Replace(i, "A"); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Replace(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if _, err := inv.Take(i, 1); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("Take(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
		if _, err := inv.SlotAt(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("SlotAt(%d): expected ErrIndexOutOfRange, got %v", i, err)
		}
	}
	if _, err := inv.At(inv.Len() - 1); err != nil {
		t.Fatalf("expected last index to be accessible, got %v", err)
	}
}

func TestInventoryAddItemsGroupsBatch(t *testing.T) {
	t.Parallel()

	inv, err := Build(4, SimpleSlots[string]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.Kind() != KindSimple {
		t.Fatalf("expected simple inventory, got %s", inv.Kind())
	}

	leftover, err := inv.AddItems("apple", "pear", "apple", "plum", "fig")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(leftover, []string{"fig"}) {
		t.Fatalf("expected [fig] leftover, got %v", leftover)
	}

	want := []string{"apple", "apple", "pear", "plum"}
	for i, w := range want {
		got, _ := inv.At(i)
		if !slices.Equal(got, []string{w}) {
			t.Fatalf("slot %d: expected %s, got %v", i, w, got)
		}
	}
	if got := inv.GetAll("apple"); !slices.Equal(got, []string{"apple", "apple"}) {
		t.Fatalf("expected two apples, got %v", got)
	}
	if !inv.IsFull() || inv.IsEmpty() || inv.Total() != 4 {
		t.Fatalf("expected a full inventory of 4 units")
	}

	if _, err := inv.AddItems("kiwi", ""); !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
}

func TestAddItemsConservesUnitsAcrossKinds(t *testing.T) {
	t.Parallel()

	builders := map[string]func(t *testing.T) stackContainer{
		"Simple": func(t *testing.T) stackContainer {
			inv, err := Build(3, SimpleSlots[string]())
			if err != nil {
				t.Fatalf("Build simple returned error: %v", err)
			}
			return inv
		},
		"Stack": func(t *testing.T) stackContainer {
			return stackContainers(t, 3, 2)["Stack"]
		},
		"LazyStack": func(t *testing.T) stackContainer {
			return stackContainers(t, 3, 2)["LazyStack"]
		},
	}

	tests := []struct {
		name     string
		prefill  string
		items    []string
		leftover map[string][]string
	}{
		{
			name:  "SecondGroupPartlyFits",
			items: []string{"A", "B", "A", "B", "A", "B"},
			leftover: map[string][]string{
				"Simple":    {"B", "B", "B"},
				"Stack":     {"B"},
				"LazyStack": {"B"},
			},
		},
		{
			name:    "FirstGroupTopsUpPrefilledSlot",
			prefill: "C",
			items:   []string{"C", "D", "D", "D", "C", "C"},
			leftover: map[string][]string{
				"Simple":    {"C", "D", "D", "D"},
				"Stack":     {"D"},
				"LazyStack": {"D"},
			},
		},
		{
			name:  "EverythingFits",
			items: []string{"A", "B"},
			leftover: map[string][]string{
				"Simple":    {},
				"Stack":     {},
				"LazyStack": {},
			},
		},
	}

	for _, tc := range tests {
		for kind, build := range builders {
			tc, kind, build := tc, kind, build
			t.Run(tc.name+"/"+kind, func(t *testing.T) {
				t.Parallel()

				inv := build(t)
				if tc.prefill != "" {
					if _, err := inv.AddAmount(tc.prefill, 1); err != nil {
						t.Fatalf("prefill returned error: %v", err)
					}
				}
				before := inv.Total()

				leftover, err := inv.AddItems(tc.items...)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !slices.Equal(leftover, tc.leftover[kind]) {
					t.Fatalf("expected leftover %v, got %v", tc.leftover[kind], leftover)
				}
				if placed := inv.Total() - before; placed+len(leftover) != len(tc.items) {
					t.Fatalf("expected %d units accounted for, got %d placed and %d left over",
						len(tc.items), placed, len(leftover))
				}
			})
		}
	}
}

func TestNewKeepsItsOwnSlotList(t *testing.T) {
	t.Parallel()

	slots := []*SimpleSlot[string]{NewSimpleSlot[string](), NewSimpleSlot[string]()}
	inv, err := NewInventory(slots)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	outsider := NewSimpleSlot[string]()
	slots[0] = outsider
	outsider.Add("sword")

	if inv.Total() != 0 {
		t.Fatalf("expected container to ignore changes to the caller's list, got %d units", inv.Total())
	}
	if left, err := inv.AddAmount("axe", 2); err != nil || left != 0 {
		t.Fatalf("expected both original slots to be usable, got %d left (%v)", left, err)
	}
}

func TestContainerSlotMutations(t *testing.T) {
	t.Parallel()

	slot, err := NewStackSlotWith(3, "ore", "ore", "ore")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	empty, err := NewStackSlot[string](3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	inv, err := NewStackInventory([]*StackSlot[string]{slot, empty})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev, err := inv.Replace(0, "gem")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(prev, []string{"ore", "ore", "ore"}) {
		t.Fatalf("expected replaced ore, got %v", prev)
	}

	if _, err := inv.AddAmount("gem", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, n, err := inv.Withdraw(1, 5)
	if err != nil || item != "gem" || n != 1 {
		t.Fatalf("expected one gem withdrawn, got %q x%d (%v)", item, n, err)
	}
	drained, err := inv.Drain(0)
	if err != nil || len(drained) != 3 {
		t.Fatalf("expected three gems drained, got %v (%v)", drained, err)
	}
	if !inv.IsEmpty() {
		t.Fatalf("expected empty container")
	}
}

func TestContainerSnapshotsAreCopies(t *testing.T) {
	t.Parallel()

	inv, err := Build(2, StackSlots[string](4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := inv.AddAmount("ore", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	units, _ := inv.At(0)
	units[0] = "gold"
	snaps := inv.Slots()
	snaps[0].Amount = 99

	if got, _ := inv.At(0); !slices.Equal(got, []string{"ore", "ore"}) {
		t.Fatalf("expected container to be unaffected, got %v", got)
	}
	if s, _ := inv.SlotAt(0); s.Amount != 2 || s.Kind != KindStack || s.Capacity != 4 {
		t.Fatalf("unexpected snapshot %+v", s)
	}
}

func TestContainerAddOrderPreview(t *testing.T) {
	t.Parallel()

	inv, err := Build(4, LazyStackSlots[string](5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := inv.Replace(2, "X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := inv.AddOrder("X", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{2, 0, 1, 3}; !slices.Equal(order, want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}
	if _, err := inv.AddAmount("X", -1); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if inv.Total() != 1 {
		t.Fatalf("expected preview and rejected add to leave the container unchanged")
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, kind := range []Kind{KindSimple, KindStack, KindLazyStack} {
		got, err := ParseKind(kind.String())
		if err != nil || got != kind {
			t.Fatalf("expected %s to round trip, got %v (%v)", kind, got, err)
		}
	}
	if _, err := ParseKind("bag"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
