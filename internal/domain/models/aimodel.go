package models

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// NotAvailable is the sentinel the backend sends for fields it could not
// resolve (downloads, likes, model_size, last_updated).
const NotAvailable = "N/A"

// Model is one AI model record as delivered by GET {api_base}/models.
type Model struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Company     string   `json:"company"`
	Description string   `json:"description,omitempty"`
	Downloads   Count    `json:"downloads"`
	Likes       Count    `json:"likes"`
	Tags        []string `json:"tags"`
	ModelSize   string   `json:"model_size"`
	HFID        string   `json:"hf_id"`
	LastUpdated string   `json:"last_updated,omitempty"`
}

// HasModelSize reports whether the card shows a size tag. Only the "N/A"
// sentinel hides it; an empty or missing size still gets a (blank) tag.
func (m Model) HasModelSize() bool {
	return m.ModelSize != NotAvailable
}

// Payload maps a category key to its records in backend order.
type Payload map[string][]Model

// Count is a numeric statistic that may be unavailable.
//
// The zero value is unavailable. Decoding never fails on a well-formed JSON
// value: "N/A", null, booleans, objects, arrays and non-numeric strings all
// decode to unavailable, and numeric strings decode to their number.
type Count struct {
	value float64
	valid bool
}

// CountOf returns an available Count holding n.
func CountOf(n float64) Count {
	return Count{value: n, valid: true}
}

// Unavailable returns the "N/A" Count.
func Unavailable() Count {
	return Count{}
}

// Value returns the number and whether it is available.
func (c Count) Value() (float64, bool) {
	return c.value, c.valid
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
		if raw == NotAvailable {
			return nil
		}
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	*c = CountOf(n)
	return nil
}

// MarshalJSON writes the number, or "N/A" when unavailable.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte(`"` + NotAvailable + `"`), nil
	}
	return []byte(strconv.FormatFloat(c.value, 'f', -1, 64)), nil
}
