package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BillStatus is the terminal status shared by an order and its bill.
// The two columns always carry the same value.
type BillStatus string

const (
	BillStatusPaid BillStatus = "paid"
	BillStatusDue  BillStatus = "due"
)

func (s BillStatus) String() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s BillStatus) Valid() bool {
	return s == BillStatusPaid || s == BillStatusDue
}

func (s BillStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	status := BillStatus(str)
	if !status.Valid() {
		return fmt.Errorf("unknown bill status %q", str)
	}
	*s = status
	return nil
}

func (s BillStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *BillStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*s = BillStatus(v)
	case []byte:
		*s = BillStatus(v)
	case nil:
		*s = ""
	default:
		return fmt.Errorf("cannot scan %T into BillStatus", value)
	}
	return nil
}
