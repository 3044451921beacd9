package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSON is a custom type for JSON fields
type JSON map[string]interface{}

// Implement the driver.Valuer interface for JSON type
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Implement the sql.Scanner interface for JSON type
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	if len(bytes) == 0 {
		*j = nil
		return nil
	}

	return json.Unmarshal(bytes, j)
}

type CreationKind string

const (
	CreationKindBlink CreationKind = "blink"
	CreationKindToken CreationKind = "token"
	CreationKindNft   CreationKind = "nft"
)

// CreationRecord is the receipt of a mock token or NFT creation.
// Blink creations are echoed but never recorded: action configurations are not persisted.
type CreationRecord struct {
	ID        string       `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Kind      CreationKind `gorm:"not null;index" json:"kind"`
	Name      string       `json:"name"`
	Address   string       `gorm:"index" json:"address"`
	Payload   JSON         `gorm:"type:text" json:"payload"`
	CreatedAt time.Time    `json:"created_at"`
}
