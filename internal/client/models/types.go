package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Ref is a foreign key that the backend renders either as a bare id or, on
// detail endpoints, as a nested object with at least id and name.
type Ref struct {
	ID   int64
	Name string
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*r = Ref{ID: obj.ID, Name: obj.Name}
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	*r = Ref{ID: id}
	return nil
}

// MarshalJSON writes the bare id, or null for the zero Ref.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.ID == 0 {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, r.ID, 10), nil
}

// Decimal is a money or rate value. The backend sends decimals as strings
// ("12.50") and floats as numbers; both decode here.
type Decimal string

func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*d = Decimal(n.String())
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// Float parses the value, returning 0 when it is empty or malformed.
func (d Decimal) Float() float64 {
	f, err := strconv.ParseFloat(string(d), 64)
	if err != nil {
		return 0
	}
	return f
}

func (d Decimal) String() string {
	if d == "" {
		return "0"
	}
	return string(d)
}
