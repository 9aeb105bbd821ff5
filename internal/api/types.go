package api

import (
	"time"

	"github.com/eugenenazirov/slot-inventory/internal/inventory"
	"github.com/eugenenazirov/slot-inventory/internal/storage"
)

type createInventoryRequest struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Slots    int    `json:"slots"`
	Capacity int    `json:"capacity"`
}

type addItemsRequest struct {
	Item   string `json:"item"`
	Amount int    `json:"amount"`
}

type replaceSlotRequest struct {
	Item string `json:"item"`
}

type takeRequest struct {
	Amount int `json:"amount"`
}

type inventoryResponse struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	Kind      string         `json:"kind"`
	Slots     int            `json:"slots"`
	Capacity  int            `json:"capacity"`
	Total     int            `json:"total"`
	CreatedAt time.Time      `json:"createdAt"`
	Contents  []slotResponse `json:"contents,omitempty"`
}

type inventoryListResponse struct {
	Inventories []inventoryResponse `json:"inventories"`
}

type slotResponse struct {
	Index    int    `json:"index"`
	Item     string `json:"item,omitempty"`
	Amount   int    `json:"amount"`
	Capacity int    `json:"capacity"`
}

type stackResponse struct {
	Item   string `json:"item,omitempty"`
	Amount int    `json:"amount"`
}

type addItemsResponse struct {
	Item      string         `json:"item"`
	Requested int            `json:"requested"`
	Added     int            `json:"added"`
	Leftover  int            `json:"leftover"`
	Slots     []slotResponse `json:"slots"`
	Message   string         `json:"message,omitempty"`
}

type itemCountResponse struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
	Slots []int  `json:"slots"`
}

type placementResponse struct {
	Item   string `json:"item"`
	Amount int    `json:"amount"`
	Order  []int  `json:"order"`
}

type slotChangeResponse struct {
	Slot    slotResponse  `json:"slot"`
	Removed stackResponse `json:"removed"`
}

type healthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Inventories int       `json:"inventories"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func newInventoryResponse(s storage.Summary, contents []inventory.SlotSnapshot[string]) inventoryResponse {
	resp := inventoryResponse{
		ID:        s.ID,
		Name:      s.Name,
		Kind:      s.Layout.Kind.String(),
		Slots:     s.Layout.Slots,
		Capacity:  s.Layout.Capacity,
		Total:     s.Total,
		CreatedAt: s.CreatedAt,
	}
	for i, snap := range contents {
		resp.Contents = append(resp.Contents, newSlotResponse(i, snap))
	}
	return resp
}

func newSlotResponse(index int, snap inventory.SlotSnapshot[string]) slotResponse {
	return slotResponse{
		Index:    index,
		Item:     snap.Item,
		Amount:   snap.Amount,
		Capacity: snap.Capacity,
	}
}

func newStackResponse(item string, amount int) stackResponse {
	if amount == 0 {
		item = ""
	}
	return stackResponse{Item: item, Amount: amount}
}
