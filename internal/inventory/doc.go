// Package inventory implements slot-based item containers.
//
// A container owns a fixed number of slots of one kind. Simple slots hold a
// single item, stack slots hold up to a fixed capacity of identical items and
// lazy stack slots track the same thing as an (item, amount) counter. Batch
// adds are distributed by a placement order that favours slots already
// holding the incoming item over empty ones.
//
// Items are opaque comparable values and the zero value is never stored.
// Nothing in this package locks: callers serialize access to a container.
package inventory
