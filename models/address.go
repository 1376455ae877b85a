package models

import "strings"

type Address struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"index" json:"user_id"`
	Street       string `gorm:"not null" json:"street"`
	BuildingName string `json:"building_name"`
	City         string `gorm:"not null" json:"city"`
	State        string `json:"state"`
	Country      string `gorm:"not null" json:"country"`
	Pincode      string `json:"pincode"`
}

// FullAddress renders the address as a single shipping line.
func (a Address) FullAddress() string {
	parts := []string{a.BuildingName, a.Street, a.City, a.State, a.Country, a.Pincode}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
