package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/slot-inventory/internal/inventory"
	"github.com/eugenenazirov/slot-inventory/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires inventory storage into HTTP handlers.
type Handler struct {
	storage       storage.Storage
	defaultLayout storage.Layout
	logger        *zap.Logger

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithDefaultLayout sets the layout used for inventories created without one.
func WithDefaultLayout(layout storage.Layout) HandlerOption {
	return func(h *Handler) {
		h.defaultLayout = layout
	}
}

// WithLogger sets the logger used for inventory events.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage:       store,
		defaultLayout: storage.DefaultLayout(),
		logger:        zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:      "ok",
		Timestamp:   h.clock(),
		Inventories: len(h.storage.List()),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListInventories(w http.ResponseWriter, r *http.Request) {
	_ = r
	summaries := h.storage.List()
	resp := inventoryListResponse{Inventories: make([]inventoryResponse, 0, len(summaries))}
	for _, s := range summaries {
		resp.Inventories = append(resp.Inventories, newInventoryResponse(s, nil))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateInventory(w http.ResponseWriter, r *http.Request) {
	var req createInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	layout := h.defaultLayout
	if req.Kind != "" {
		kind, err := inventory.ParseKind(req.Kind)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid layout", err.Error(), "Use one of: simple, stack, lazy-stack")
			return
		}
		layout.Kind = kind
	}
	if req.Slots != 0 {
		layout.Slots = req.Slots
	}
	if req.Capacity != 0 {
		layout.Capacity = req.Capacity
	}

	summary, err := h.storage.Create(req.Name, layout)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	h.logger.Info("inventory created",
		zap.String("inventory", summary.ID),
		zap.String("name", summary.Name),
		zap.Stringer("kind", summary.Layout.Kind),
		zap.Int("slots", summary.Layout.Slots),
		zap.Int("capacity", summary.Layout.Capacity),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)

	var contents []inventory.SlotSnapshot[string]
	err = h.storage.View(summary.ID, func(inv storage.Inventory) error {
		contents = inv.Slots()
		return nil
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newInventoryResponse(summary, contents))
}

func (h *Handler) handleGetInventory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var (
		summary  storage.Summary
		contents []inventory.SlotSnapshot[string]
	)
	err := h.storage.View(id, func(inv storage.Inventory) error {
		contents = inv.Slots()
		return nil
	})
	if err == nil {
		summary, err = h.storage.Get(id)
	}
	if err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newInventoryResponse(summary, contents))
}

func (h *Handler) handleDeleteInventory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.storage.Delete(id); err != nil {
		writeStorageError(w, err)
		return
	}

	h.logger.Info("inventory deleted",
		zap.String("inventory", id),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddItems(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req addItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Item == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "item must be a non-empty string")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "amount must be a positive integer")
		return
	}

	var (
		leftover int
		touched  []int
		slots    []inventory.SlotSnapshot[string]
	)
	err := h.storage.Update(id, func(inv storage.Inventory) error {
		before := inv.Slots()
		left, err := inv.AddAmount(req.Item, req.Amount)
		if err != nil {
			return err
		}
		leftover = left
		slots = inv.Slots()
		touched = changedSlots(before, slots)
		return nil
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}

	h.logger.Debug("items added",
		zap.String("inventory", id),
		zap.String("item", req.Item),
		zap.Int("requested", req.Amount),
		zap.Int("leftover", leftover),
		zap.Ints("slots", touched),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)

	resp := addItemsResponse{
		Item:      req.Item,
		Requested: req.Amount,
		Added:     req.Amount - leftover,
		Leftover:  leftover,
		Slots:     make([]slotResponse, 0, len(touched)),
	}
	for _, i := range touched {
		resp.Slots = append(resp.Slots, newSlotResponse(i, slots[i]))
	}
	if leftover > 0 {
		resp.Message = fmt.Sprintf("inventory is full for %q: %d unit(s) could not be placed", req.Item, leftover)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCountItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item := r.PathValue("item")

	var resp itemCountResponse
	err := h.storage.View(id, func(inv storage.Inventory) error {
		resp = itemCountResponse{
			Item:  item,
			Count: inv.Count(item),
			Slots: inv.Find(item),
		}
		return nil
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if resp.Slots == nil {
		resp.Slots = []int{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePlacement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	query := r.URL.Query()
	item := query.Get("item")

	amount := 1
	if raw := query.Get("amount"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", "amount must be an integer")
			return
		}
		amount = parsed
	}

	var order []int
	err := h.storage.View(id, func(inv storage.Inventory) error {
		var err error
		order, err = inv.AddOrder(item, amount)
		return err
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	if order == nil {
		order = []int{}
	}

	writeJSON(w, http.StatusOK, placementResponse{
		Item:   item,
		Amount: amount,
		Order:  order,
	})
}

func (h *Handler) handleGetSlot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, ok := slotIndex(w, r)
	if !ok {
		return
	}

	var snap inventory.SlotSnapshot[string]
	err := h.storage.View(id, func(inv storage.Inventory) error {
		var err error
		snap, err = inv.SlotAt(index)
		return err
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSlotResponse(index, snap))
}

func (h *Handler) handleReplaceSlot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, ok := slotIndex(w, r)
	if !ok {
		return
	}

	var req replaceSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	var resp slotChangeResponse
	err := h.storage.Update(id, func(inv storage.Inventory) error {
		prev, n, err := inv.ReplaceAmount(index, req.Item)
		if err != nil {
			return err
		}
		snap, err := inv.SlotAt(index)
		if err != nil {
			return err
		}
		resp = slotChangeResponse{
			Slot:    newSlotResponse(index, snap),
			Removed: newStackResponse(prev, n),
		}
		return nil
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}

	h.logger.Debug("slot replaced",
		zap.String("inventory", id),
		zap.Int("slot", index),
		zap.String("item", req.Item),
		zap.Int("replaced", resp.Removed.Amount),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleTakeFromSlot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, ok := slotIndex(w, r)
	if !ok {
		return
	}

	var req takeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "amount must be a non-negative integer")
		return
	}

	var resp slotChangeResponse
	err := h.storage.Update(id, func(inv storage.Inventory) error {
		snap, err := inv.SlotAt(index)
		if err != nil {
			return err
		}
		amount := req.Amount
		if amount == 0 {
			amount = snap.Amount
		}
		item, n, err := inv.Withdraw(index, amount)
		if err != nil {
			return err
		}
		if snap, err = inv.SlotAt(index); err != nil {
			return err
		}
		resp = slotChangeResponse{
			Slot:    newSlotResponse(index, snap),
			Removed: newStackResponse(item, n),
		}
		return nil
	})
	if err != nil {
		writeStorageError(w, err)
		return
	}

	h.logger.Debug("items taken",
		zap.String("inventory", id),
		zap.Int("slot", index),
		zap.Int("taken", resp.Removed.Amount),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)
	writeJSON(w, http.StatusOK, resp)
}

func slotIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "slot index must be an integer")
		return 0, false
	}
	return index, true
}

// changedSlots returns the indexes whose amount differs between two
// snapshots of the same inventory.
func changedSlots(before, after []inventory.SlotSnapshot[string]) []int {
	var out []int
	for i := range after {
		if before[i].Amount != after[i].Amount {
			out = append(out, i)
		}
	}
	return out
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func writeStorageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Inventory not found", err.Error())
	case errors.Is(err, inventory.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, "Slot not found", err.Error())
	case errors.Is(err, storage.ErrInvalidLayout):
		writeError(w, http.StatusBadRequest, "Invalid layout", err.Error())
	case errors.Is(err, inventory.ErrInvalidItem),
		errors.Is(err, inventory.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
	default:
		writeInternalError(w, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
