package models

type Category struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CategoryName string `gorm:"uniqueIndex;not null" json:"category_name"`
}
