package datastore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ---------------------------------------------------------------------------
// Delivery Types
// ---------------------------------------------------------------------------

// DeliveryType represents how an inventory item is delivered
type DeliveryType string

const (
	// DeliveryTypeShip indicates a physical item that is shipped
	DeliveryTypeShip DeliveryType = "ship"
	// DeliveryTypeNoShip indicates a physical item with no shipment
	DeliveryTypeNoShip DeliveryType = "noship"
	// DeliveryTypeDownload indicates a digital download
	DeliveryTypeDownload DeliveryType = "download"
	// DeliveryTypeFuture indicates a pre-order/future item
	DeliveryTypeFuture DeliveryType = "future"
)

// IsValid returns true if the delivery type is valid
func (d DeliveryType) IsValid() bool {
	switch d {
	case DeliveryTypeShip, DeliveryTypeNoShip, DeliveryTypeDownload, DeliveryTypeFuture:
		return true
	default:
		return false
	}
}

// String returns the string representation of DeliveryType
func (d DeliveryType) String() string {
	return string(d)
}

// ---------------------------------------------------------------------------
// FieldList: order-preserving JSON object
// ---------------------------------------------------------------------------

// Field is a single key/value pair in a FieldList.
type Field struct {
	Key   string
	Value any
}

// FieldList is an ordered sequence of key/value pairs. The vendor represents
// variation lists and metadata as JSON objects whose key order is meaningful,
// so a plain map cannot carry them faithfully. A FieldList marshals as a JSON
// object with keys emitted in sequence order and unmarshals preserving the
// order in which keys appear on the wire.
type FieldList []Field

// Get returns the value for key and whether it was present.
func (l FieldList) Get(key string) (any, bool) {
	for _, f := range l {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler.
func (l FieldList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *FieldList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("datastore: field list must be a JSON object, got %v", tok)
	}

	fields := make(FieldList, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("datastore: field list key must be a string, got %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		fields = append(fields, Field{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = fields
	return nil
}

// ---------------------------------------------------------------------------
// Inventory Items
// ---------------------------------------------------------------------------

// InventoryItem represents one inventory record in the vendor's catalog.
// Price, Stock and Weight are pointers so that an explicit zero survives the
// round trip: a present-but-zero value is valid, an absent one is not.
type InventoryItem struct {
	// ID is the vendor-assigned record identifier (read-only on the vendor side)
	ID json.Number `json:"id,omitempty"`
	// Name is the item's display name
	Name string `json:"name,omitempty"`
	// Code is the SKU, unique per catalog
	Code string `json:"code,omitempty"`
	// Price is the unit price (vendor default 0.00)
	Price *float64 `json:"price,omitempty"`
	// Stock is the on-hand stock level
	Stock *int64 `json:"stock,omitempty"`
	// Quantity is the per-order quantity (vendor default 1)
	Quantity int `json:"quantity,omitempty"`
	// Weight is the item weight
	Weight *float64 `json:"weight,omitempty"`
	// DeliveryType is how the item is delivered (vendor default ship)
	DeliveryType DeliveryType `json:"delivery_type,omitempty"`
	// CategoryCode is a freeform category tag
	CategoryCode string `json:"category_code,omitempty"`
	// VariationList holds ordered variation key/value pairs (e.g. Size, Color)
	VariationList FieldList `json:"variation_list,omitempty"`
	// Metadata holds ordered vendor metadata key/value pairs
	Metadata FieldList `json:"metadata,omitempty"`
	// DateAdded is the vendor-managed creation timestamp
	DateAdded string `json:"date_added,omitempty"`
	// DateUpdated is the vendor-managed last-update timestamp
	DateUpdated string `json:"date_updated,omitempty"`
}

// ValidateForUpdate reports whether the item may be part of a batch update.
// ID, name and code must be non-empty; price and stock must be present,
// where an explicit zero counts as present.
func (i *InventoryItem) ValidateForUpdate() error {
	if i.ID.String() == "" {
		return ErrItemMissingID
	}
	if i.Name == "" {
		return ErrItemMissingName
	}
	if i.Code == "" {
		return ErrItemMissingCode
	}
	if i.Price == nil {
		return ErrItemMissingPrice
	}
	if i.Stock == nil {
		return ErrItemMissingStock
	}
	return nil
}

// ---------------------------------------------------------------------------
// Canonical Items
// ---------------------------------------------------------------------------

// CanonicalItem is the item shape the cart validator consumes. It carries
// every vendor field unchanged plus two derived fields: the tag of the
// adapter that produced it and the stock level under the canonical
// "inventory" name.
type CanonicalItem struct {
	InventoryItem

	// UpdateSource identifies the adapter that produced this item
	UpdateSource string `json:"update_source"`
	// Inventory is the vendor's stock value under its canonical name
	Inventory *int64 `json:"inventory"`
}
