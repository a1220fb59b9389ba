// Package store is the only code that reads or writes the relational
// database. Handlers and the upload handler depend on the Store interface.
package store

import (
	"context"

	"agency-site/internal/domain/contact"
	"agency-site/internal/domain/media"
	"agency-site/internal/domain/projects"
)

type Store interface {
	ProjectStore
	MediaStore
	ContactStore
}

type ProjectStore interface {
	ListProjects(ctx context.Context) ([]projects.Project, error)
	// ListProjectsByCategory does not check the category against the enum;
	// an unknown category simply matches nothing.
	ListProjectsByCategory(ctx context.Context, category string) ([]projects.Project, error)
	GetProject(ctx context.Context, id uint) (*projects.Project, error)
	GetProjectReviews(ctx context.Context, projectID uint) ([]projects.Review, error)
	CreateProject(ctx context.Context, in projects.ProjectInput) (*projects.Project, error)
	// UpdateProject replaces every client-owned field. Concurrent updates are
	// last-writer-wins.
	UpdateProject(ctx context.Context, id uint, in projects.ProjectInput) (*projects.Project, error)
	DeleteProject(ctx context.Context, id uint) error
	CreateProjectReview(ctx context.Context, in projects.ReviewInput) (*projects.Review, error)
}

type MediaStore interface {
	ListMediaAssets(ctx context.Context) ([]media.Asset, error)
	ListMediaAssetsByCategory(ctx context.Context, category string) ([]media.Asset, error)
	GetMediaAsset(ctx context.Context, id uint) (*media.Asset, error)
	CreateMediaAsset(ctx context.Context, in media.AssetInput) (*media.Asset, error)
	DeleteMediaAsset(ctx context.Context, id uint) error
}

type ContactStore interface {
	CreateContactMessage(ctx context.Context, in contact.MessageInput) (*contact.Message, error)
}
