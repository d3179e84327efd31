package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Option is the uniform entry produced by every dropdown regardless of the
// entity behind it. Value is unique within one result set.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Display returns the label, falling back to the value for unnamed entries.
func (o Option) Display() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Value
}

// ItemOption extends Option with the detail needed to populate the derived
// pricing fields once an item is chosen.
type ItemOption struct {
	Option
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`
	Price       float64 `json:"price"`
}

// FlexID decodes identifiers that the backend emits either as JSON numbers or
// strings. The zero value is the empty identifier.
type FlexID string

// UnmarshalJSON accepts numbers, strings, and null.
func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("model: decode id: %w", err)
		}
		*id = FlexID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("model: decode id: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*id = FlexID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = FlexID(n.String())
	return nil
}

// MarshalJSON emits numeric identifiers as numbers and everything else as a
// string.
func (id FlexID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the identifier as text.
func (id FlexID) String() string { return string(id) }

// Country is the backend record served by the countries endpoint.
type Country struct {
	ID   FlexID `json:"id_negara"`
	Code string `json:"kode_negara"`
	Name string `json:"nama_negara"`
}

// Harbor is the backend record served by the harbors endpoint.
type Harbor struct {
	ID        FlexID `json:"id_pelabuhan"`
	Name      string `json:"nama_pelabuhan"`
	CountryID FlexID `json:"id_negara"`
}

// Item is the backend record served by the items endpoint. Discount and price
// are optional on the wire and default to zero.
type Item struct {
	ID          FlexID   `json:"id_barang"`
	Name        string   `json:"nama_barang"`
	HarborID    FlexID   `json:"id_pelabuhan"`
	Description string   `json:"description"`
	Discount    *float64 `json:"diskon"`
	Price       *float64 `json:"harga"`
}

// Detail converts the record into an ItemOption.
func (it Item) Detail() ItemOption {
	out := ItemOption{
		Option:      Option{Value: it.ID.String(), Label: it.Name},
		Description: it.Description,
	}
	if it.Discount != nil {
		out.Discount = *it.Discount
	}
	if it.Price != nil {
		out.Price = *it.Price
	}
	return out
}

// FormFields is the purchase-order form state. Total is always derived from
// Price and Discount.
type FormFields struct {
	Country     *Option `json:"country,omitempty"`
	Harbor      *Option `json:"harbor,omitempty"`
	Item        *Option `json:"item,omitempty"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Values flattens the form into a map keyed by field name. Selections are
// reduced to their identifiers.
func (f FormFields) Values() map[string]any {
	out := map[string]any{
		"description": f.Description,
		"discount":    f.Discount,
		"price":       f.Price,
		"total":       f.Total,
	}
	for key, opt := range map[string]*Option{"country": f.Country, "harbor": f.Harbor, "item": f.Item} {
		if opt == nil {
			out[key] = nil
			continue
		}
		out[key] = opt.Value
	}
	return out
}

// CloneOption returns a copy of opt, or nil.
func CloneOption(opt *Option) *Option {
	if opt == nil {
		return nil
	}
	clone := *opt
	return &clone
}
