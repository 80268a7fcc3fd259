package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/agency/backend/internal/domain/finance"
	"github.com/google/uuid"
)

// UUIDList stores a list of UUIDs as a JSONB array. Used for the legacy
// service bundle column that pre-dates the allocation tables.
type UUIDList []uuid.UUID

// Value implements driver.Valuer so GORM stores the list as JSONB.
func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for reading the JSONB column.
func (l *UUIDList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// ReceiptLegList stores receipt payment legs as a JSONB array. Legs have no
// identity of their own, so a child table would only add join cost.
type ReceiptLegList []finance.ReceiptLeg

// Value implements driver.Valuer so GORM stores the legs as JSONB.
func (l ReceiptLegList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for reading the JSONB column.
func (l *ReceiptLegList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONB column", value)
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}
