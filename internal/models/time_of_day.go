package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time stored as minutes since midnight.
type TimeOfDay int

const MinutesPerDay = 24 * 60

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "15:04" or "15:04:05". Seconds must be zero.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec != 0 {
			return 0, fmt.Errorf("invalid seconds in %q", s)
		}
	}

	return NewTimeOfDay(hour, minute), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time of day must be a string: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (TimeOfDay) GormDataType() string {
	return "int"
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*t = TimeOfDay(v)
	case int32:
		*t = TimeOfDay(v)
	case []byte:
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return err
		}
		*t = TimeOfDay(n)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*t = TimeOfDay(n)
	case nil:
		*t = 0
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
	return nil
}
