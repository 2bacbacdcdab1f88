package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/YashDwivedi1205/AIFSA-Project/pkg/common"
)

// Metric is a numeric value that may be unavailable. It encodes as a JSON
// number when present and as "N/A" otherwise.
type Metric struct {
	Value float64
	Valid bool
}

// NewMetric returns a present metric.
func NewMetric(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// Unavailable returns the "N/A" metric.
func Unavailable() Metric {
	return Metric{}
}

// LessThan reports whether the metric is present and below limit.
func (m Metric) LessThan(limit float64) bool {
	return m.Valid && m.Value < limit
}

// GreaterThan reports whether the metric is present and above limit.
func (m Metric) GreaterThan(limit float64) bool {
	return m.Valid && m.Value > limit
}

func (m Metric) String() string {
	if !m.Valid {
		return common.NotAvailable
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return json.Marshal(common.NotAvailable)
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = Metric{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == common.NotAvailable || s == "" {
			*m = Metric{}
			return nil
		}
		return fmt.Errorf("metric: unexpected string %q", s)
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = NewMetric(v)
	return nil
}
