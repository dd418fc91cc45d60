package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Date is a plain calendar date. It carries no zone: the value is kept at
// midnight UTC so two dates compare equal whenever their Y-M-D match.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

func Today() Date {
	return DateOf(time.Now())
}

func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	// tolerate full timestamps coming from spreadsheets or ISO strings
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return Date{t: t}, nil
}

// ParseOptionalDate returns nil for blank input.
func ParseOptionalDate(raw string) (*Date, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }
func (d Date) Time() time.Time { return d.t }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }
func (d Date) Compare(other Date) int { return d.t.Compare(other.t) }
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) YearMonth() YearMonth { return YearMonth{Year: d.t.Year(), Month: d.t.Month()} }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) GormDataType() string {
	return "date"
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot convert %v to Date", value)
	}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	if strings.TrimSpace(str) == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// YearMonth is a calendar month, used by the month filters.
type YearMonth struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func ParseYearMonth(raw string) (YearMonth, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(raw))
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q, expected YYYY-MM", raw)
	}
	return MonthOf(t), nil
}

// ParseOptionalYearMonth returns nil for blank input.
func ParseOptionalYearMonth(raw string) (*YearMonth, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	ym, err := ParseYearMonth(raw)
	if err != nil {
		return nil, err
	}
	return &ym, nil
}

func (m YearMonth) Compare(other YearMonth) int {
	switch {
	case m.Year != other.Year:
		if m.Year < other.Year {
			return -1
		}
		return 1
	case m.Month != other.Month:
		if m.Month < other.Month {
			return -1
		}
		return 1
	}
	return 0
}

func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
