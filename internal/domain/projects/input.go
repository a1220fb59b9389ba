package projects

import "agency-site/internal/domain/validation"

// ProjectInput is the insertable projection of Project: everything except
// the id and creation timestamp. Values are stored exactly as sent.
type ProjectInput struct {
	Title           string   `json:"title" validate:"required,notblank"`
	Description     string   `json:"description" validate:"required,notblank"`
	LongDescription *string  `json:"longDescription"`
	Category        string   `json:"category" validate:"required,oneof=web mobile desktop"`
	TechStack       []string `json:"techStack"`
	ImageURLs       []string `json:"imageUrls"`
	VideoURLs       []string `json:"videoUrls"`
	Screenshots     []string `json:"screenshots"`
	DemoURL         *string  `json:"demoUrl"`
	GithubURL       *string  `json:"githubUrl"`
}

// Normalize turns absent sequences into empty ones. Nothing else is touched.
func (in *ProjectInput) Normalize() {
	in.TechStack = emptyIfNil(in.TechStack)
	in.ImageURLs = emptyIfNil(in.ImageURLs)
	in.VideoURLs = emptyIfNil(in.VideoURLs)
	in.Screenshots = emptyIfNil(in.Screenshots)
}

func (in *ProjectInput) Validate() error {
	in.Normalize()
	return validation.Struct(in)
}

func (in ProjectInput) ToModel() Project {
	var p Project
	p.Apply(in)
	return p
}

// ReviewInput is the insertable projection of Review. ProjectID never comes
// from the body; the route sets it from the path.
type ReviewInput struct {
	ProjectID       uint    `json:"-" validate:"required"`
	CustomerName    string  `json:"customerName" validate:"required,notblank"`
	CustomerCompany *string `json:"customerCompany"`
	CustomerAvatar  *string `json:"customerAvatar"`
	Rating          int     `json:"rating" validate:"required,min=1,max=5"`
	Review          string  `json:"review" validate:"required,notblank"`
}

func (in *ReviewInput) Validate() error {
	return validation.Struct(in)
}

func (in ReviewInput) ToModel() Review {
	return Review{
		ProjectID:       in.ProjectID,
		CustomerName:    in.CustomerName,
		CustomerCompany: in.CustomerCompany,
		CustomerAvatar:  in.CustomerAvatar,
		Rating:          in.Rating,
		Review:          in.Review,
	}
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
