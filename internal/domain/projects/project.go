package projects

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CategoryWeb     = "web"
	CategoryMobile  = "mobile"
	CategoryDesktop = "desktop"
)

// Categories is the closed set a project may be filed under.
var Categories = []string{CategoryWeb, CategoryMobile, CategoryDesktop}

type Project struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title           string  `gorm:"not null" json:"title"`
	Description     string  `gorm:"not null" json:"description"`
	LongDescription *string `json:"longDescription"`
	Category        string  `gorm:"type:text;not null;index" json:"category"`

	TechStack   datatypes.JSONSlice[string] `gorm:"column:tech_stack;not null" json:"techStack"`
	ImageURLs   datatypes.JSONSlice[string] `gorm:"column:image_urls;not null" json:"imageUrls"`
	VideoURLs   datatypes.JSONSlice[string] `gorm:"column:video_urls;not null" json:"videoUrls"`
	Screenshots datatypes.JSONSlice[string] `gorm:"column:screenshots;not null" json:"screenshots"`

	DemoURL   *string `gorm:"column:demo_url" json:"demoUrl"`
	GithubURL *string `gorm:"column:github_url" json:"githubUrl"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// BeforeSave keeps the sequence columns as JSON arrays; a nil slice would be
// encoded as null.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.normalizeSequences()
	return nil
}

// AfterFind covers rows written before the sequence columns existed.
func (p *Project) AfterFind(tx *gorm.DB) error {
	p.normalizeSequences()
	return nil
}

func (p *Project) normalizeSequences() {
	if p.TechStack == nil {
		p.TechStack = datatypes.JSONSlice[string]{}
	}
	if p.ImageURLs == nil {
		p.ImageURLs = datatypes.JSONSlice[string]{}
	}
	if p.VideoURLs == nil {
		p.VideoURLs = datatypes.JSONSlice[string]{}
	}
	if p.Screenshots == nil {
		p.Screenshots = datatypes.JSONSlice[string]{}
	}
}

// Apply overwrites every client-owned field with the input. ID and CreatedAt
// are left alone.
func (p *Project) Apply(in ProjectInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.LongDescription = in.LongDescription
	p.Category = in.Category
	p.TechStack = datatypes.JSONSlice[string](in.TechStack)
	p.ImageURLs = datatypes.JSONSlice[string](in.ImageURLs)
	p.VideoURLs = datatypes.JSONSlice[string](in.VideoURLs)
	p.Screenshots = datatypes.JSONSlice[string](in.Screenshots)
	p.DemoURL = in.DemoURL
	p.GithubURL = in.GithubURL
	p.normalizeSequences()
}
