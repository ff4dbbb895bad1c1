package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON type for flexible storage
type JSON map[string]interface{}

// Value implements the driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(map[string]interface{}(j))
}

// Scan implements the sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*map[string]interface{})(j))
	case string:
		return json.Unmarshal([]byte(v), (*map[string]interface{})(j))
	default:
		return nil
	}
}
