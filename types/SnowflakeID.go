package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// SnowflakeID disimpan sebagai BIGINT, dikirim ke client sebagai string
// supaya tidak terpotong di JavaScript.
type SnowflakeID int64

func (s SnowflakeID) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SnowflakeID) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = 0
		return nil
	case int64:
		*s = SnowflakeID(v)
		return nil
	case []byte:
		i, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return err
		}
		*s = SnowflakeID(i)
		return nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		*s = SnowflakeID(i)
		return nil
	default:
		return fmt.Errorf("cannot convert %v to SnowflakeID", value)
	}
}

func (s SnowflakeID) String() string {
	return strconv.FormatInt(int64(s), 10)
}

// Marshal: int64 → string
func (s SnowflakeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SnowflakeID) UnmarshalJSON(data []byte) error {
	// Coba sebagai string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str == "" {
			*s = 0
			return nil
		}
		val, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid snowflake ID string: %w", err)
		}
		*s = SnowflakeID(val)
		return nil
	}

	// Kalau gagal, coba langsung sebagai number
	var num int64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = SnowflakeID(num)
		return nil
	}

	return fmt.Errorf("invalid snowflake ID format")
}

// ParseSnowflakeID membaca id dari path param / query string.
func ParseSnowflakeID(raw string) (SnowflakeID, error) {
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || i <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return SnowflakeID(i), nil
}
