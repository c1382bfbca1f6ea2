package enum

import "database/sql/driver"

// ReceiptFormat selects which receipt template a bill renders with.
// The simple format is the kitchen order ticket (KOT): it omits price columns.
type ReceiptFormat string

const (
	ReceiptFormatDetailed ReceiptFormat = "detailed"
	ReceiptFormatSimple   ReceiptFormat = "simple"
)

// IsValid reports whether the format is one of the known values
func (f ReceiptFormat) IsValid() bool {
	return f == ReceiptFormatDetailed || f == ReceiptFormatSimple
}

func (f ReceiptFormat) String() string {
	return string(f)
}

func (f ReceiptFormat) Value() (driver.Value, error) {
	return string(f), nil
}

func (f *ReceiptFormat) Scan(value interface{}) error {
	if value == nil {
		*f = ReceiptFormatDetailed
		return nil
	}
	switch v := value.(type) {
	case string:
		*f = ReceiptFormat(v)
	case []byte:
		*f = ReceiptFormat(v)
	}
	return nil
}
