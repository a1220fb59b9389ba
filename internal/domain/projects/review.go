package projects

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProjectID uint     `gorm:"not null;index" json:"projectId"`
	Project   *Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CustomerName    string  `gorm:"not null" json:"customerName"`
	CustomerCompany *string `json:"customerCompany"`
	CustomerAvatar  *string `json:"customerAvatar"`
	Rating          int     `gorm:"not null" json:"rating"`
	Review          string  `gorm:"type:text;not null" json:"review"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Review) TableName() string { return "project_reviews" }
