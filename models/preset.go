package models

type CanvasPreset struct {
	Name        string `gorm:"column:name;primaryKey;size:100" json:"name"`
	Width       int    `gorm:"column:width" json:"width"`
	Height      int    `gorm:"column:height" json:"height"`
	Description string `gorm:"column:description" json:"description"`
	SortOrder   int    `gorm:"column:sort_order" json:"sort_order"`
}

func (p *CanvasPreset) TableName() string {
	return "canvas_presets"
}
