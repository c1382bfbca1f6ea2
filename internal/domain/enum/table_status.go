package enum

import "database/sql/driver"

// TableStatus represents the occupancy state of a table
type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
	TableStatusReserved  TableStatus = "reserved"
)

// IsValid reports whether the status is one of the known values
func (s TableStatus) IsValid() bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved:
		return true
	}
	return false
}

func (s TableStatus) String() string {
	return string(s)
}

func (s TableStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *TableStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TableStatusAvailable
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = TableStatus(v)
	case []byte:
		*s = TableStatus(v)
	}
	return nil
}
