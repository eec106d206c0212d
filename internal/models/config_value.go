package models

import "time"

// ConfigValue is one scoped configuration entry, addressed by path.
type ConfigValue struct {
	Scope     string    `json:"scope" gorm:"type:varchar(8);primaryKey;default:default"`
	ScopeID   int       `json:"scope_id" gorm:"primaryKey;autoIncrement:false"`
	Path      string    `json:"path" gorm:"primaryKey"`
	Value     *string   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ConfigValue) TableName() string {
	return "core_config_data"
}
