package media

import (
	"strings"
	"time"

	"agency-site/internal/domain/projects"
	"agency-site/internal/domain/validation"
)

const (
	TypeImage = "image"
	TypeVideo = "video"
	TypeLogo  = "logo"

	CategoryProject = "project"
	CategoryHome    = "home"
	CategoryBrand   = "brand"

	// CategoryAll is the listing shortcut for "no filter"; it is never stored.
	CategoryAll = "all"
)

var (
	Types      = []string{TypeImage, TypeVideo, TypeLogo}
	Categories = []string{CategoryProject, CategoryHome, CategoryBrand}
)

type Asset struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"not null" json:"name"`
	Type     string `gorm:"type:text;not null" json:"type"`
	URL      string `gorm:"not null" json:"url"`
	Category string `gorm:"type:text;not null;index" json:"category"`

	ProjectID *uint             `gorm:"index" json:"projectId"`
	Project   *projects.Project `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Asset) TableName() string { return "media_assets" }

// AssetInput is the insertable projection of Asset. URL is always produced
// by the upload handler, never taken from a client.
type AssetInput struct {
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=image video logo"`
	URL       string `json:"url" validate:"required"`
	Category  string `json:"category" validate:"required,oneof=project home brand"`
	ProjectID *uint  `json:"projectId" validate:"omitempty,gt=0"`
}

func (in *AssetInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.Category = strings.TrimSpace(in.Category)
	return validation.Struct(in)
}

func (in AssetInput) ToModel() Asset {
	return Asset{
		Name:      in.Name,
		Type:      in.Type,
		URL:       in.URL,
		Category:  in.Category,
		ProjectID: in.ProjectID,
	}
}
