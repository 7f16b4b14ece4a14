package models

import "time"

type Counter struct {
	Name      string    `gorm:"column:name;primaryKey;size:64" json:"name"`
	Count     int64     `gorm:"column:count" json:"counter"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`
}

func (c *Counter) TableName() string {
	return "counters"
}
