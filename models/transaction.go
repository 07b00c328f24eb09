package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Transaction is one swap as returned by the Jupiter stats API. Only the fields
// the checker aggregates are decoded.
type Transaction struct {
	Timestamp     string    `json:"timestamp"`
	InAmountInUSD USDAmount `json:"inAmountInUSD"`
}

// USDAmount keeps the raw textual value of an amount field. The API sends it
// either as a JSON number or as a numeric string.
type USDAmount string

func (a *USDAmount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*a = ""

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string

		err := json.Unmarshal(data, &s)
		if err != nil {
			return fmt.Errorf("json.Unmarshal: %w", err)
		}

		*a = USDAmount(s)

		return nil
	}

	*a = USDAmount(data)

	return nil
}

func (a USDAmount) MarshalJSON() ([]byte, error) {
	if a == "" {
		return []byte("null"), nil
	}

	_, err := strconv.ParseFloat(string(a), 64)
	if err == nil && json.Valid([]byte(a)) {
		return []byte(a), nil
	}

	return json.Marshal(string(a))
}
