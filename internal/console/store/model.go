package store

import "time"

// Preference is one stored (username, key, value) row. The column names
// avoid SQL keywords so the schema works unquoted on all three drivers.
type Preference struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"column:username; type:varchar(190); uniqueIndex:idx_username_key,priority:1"`
	Key       string    `gorm:"column:pref_key; type:varchar(190); uniqueIndex:idx_username_key,priority:2"`
	Value     string    `gorm:"column:pref_value; type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName keeps the table name stable across gorm naming strategies.
func (Preference) TableName() string {
	return "preferences"
}
