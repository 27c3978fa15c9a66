package schema

import "time"

// KeyValue is a small general-purpose table for operational state such as
// per-OG sync cursors ("sync_cursor:<og_name>").
type KeyValue struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (KeyValue) TableName() string {
	return "key_value_store"
}
