package payments

import (
	"encoding/json"
	"fmt"
)

// SnapshotItem is one cart line as carried in checkout-session metadata.
// Stripe metadata values are strings, so the whole list rides as one JSON
// blob under the "items" key.
type SnapshotItem struct {
	ProductID uint    `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

// SnapshotMetadataKey is the session metadata key the snapshot rides under.
const SnapshotMetadataKey = "items"

func EncodeCartSnapshot(items []SnapshotItem) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode cart snapshot: %w", err)
	}
	return string(data), nil
}

// DecodeCartSnapshot reverses EncodeCartSnapshot. Callers must treat an
// error as "snapshot unavailable" and fall back to provider line items,
// never as a reason to abort reconciliation.
func DecodeCartSnapshot(payload string) ([]SnapshotItem, error) {
	if payload == "" {
		return nil, fmt.Errorf("empty cart snapshot")
	}
	var items []SnapshotItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return items, nil
}
