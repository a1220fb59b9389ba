package store

import (
	"context"
	"errors"

	"agency-site/internal/domain/contact"
	"agency-site/internal/domain/media"
	"agency-site/internal/domain/projects"
	"agency-site/internal/errs"

	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ---------- projects

func (s *GormStore) ListProjects(ctx context.Context) ([]projects.Project, error) {
	out := make([]projects.Project, 0)
	if err := projectsQuery(s.db.WithContext(ctx)).Find(&out).Error; err != nil {
		return nil, errs.Persistence("list projects", err)
	}
	return out, nil
}

func (s *GormStore) ListProjectsByCategory(ctx context.Context, category string) ([]projects.Project, error) {
	out := make([]projects.Project, 0)
	err := projectsQuery(s.db.WithContext(ctx)).
		Where("category = ?", category).
		Find(&out).Error
	if err != nil {
		return nil, errs.Persistence("list projects by category", err)
	}
	return out, nil
}

func (s *GormStore) GetProject(ctx context.Context, id uint) (*projects.Project, error) {
	return findProject(s.db.WithContext(ctx), id)
}

func (s *GormStore) GetProjectReviews(ctx context.Context, projectID uint) ([]projects.Review, error) {
	out := make([]projects.Review, 0)
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, errs.Persistence("list project reviews", err)
	}
	return out, nil
}

func (s *GormStore) CreateProject(ctx context.Context, in projects.ProjectInput) (*projects.Project, error) {
	p := in.ToModel()
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, errs.Persistence("create project", err)
	}
	return &p, nil
}

func (s *GormStore) UpdateProject(ctx context.Context, id uint, in projects.ProjectInput) (*projects.Project, error) {
	var updated *projects.Project

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := findProject(tx, id)
		if err != nil {
			return err
		}

		p.Apply(in)
		// Save writes every column, zero values included.
		if err := tx.Save(p).Error; err != nil {
			return errs.Persistence("update project", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProject removes the project together with its reviews and detaches
// any media that pointed at it.
func (s *GormStore) DeleteProject(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findProject(tx, id); err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&projects.Review{}).Error; err != nil {
			return errs.Persistence("delete project reviews", err)
		}
		if err := tx.Model(&media.Asset{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return errs.Persistence("detach project media", err)
		}
		if err := tx.Delete(&projects.Project{}, id).Error; err != nil {
			return errs.Persistence("delete project", err)
		}
		return nil
	})
}

func (s *GormStore) CreateProjectReview(ctx context.Context, in projects.ReviewInput) (*projects.Review, error) {
	r := in.ToModel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findProject(tx, in.ProjectID); err != nil {
			return err
		}
		if err := tx.Create(&r).Error; err != nil {
			return errs.Persistence("create project review", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ---------- media

func (s *GormStore) ListMediaAssets(ctx context.Context) ([]media.Asset, error) {
	out := make([]media.Asset, 0)
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, errs.Persistence("list media assets", err)
	}
	return out, nil
}

func (s *GormStore) ListMediaAssetsByCategory(ctx context.Context, category string) ([]media.Asset, error) {
	out := make([]media.Asset, 0)
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, errs.Persistence("list media assets by category", err)
	}
	return out, nil
}

func (s *GormStore) GetMediaAsset(ctx context.Context, id uint) (*media.Asset, error) {
	var a media.Asset
	if err := s.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("media asset", id)
		}
		return nil, errs.Persistence("get media asset", err)
	}
	return &a, nil
}

func (s *GormStore) CreateMediaAsset(ctx context.Context, in media.AssetInput) (*media.Asset, error) {
	a := in.ToModel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.ProjectID != nil {
			if _, err := findProject(tx, *in.ProjectID); err != nil {
				return err
			}
		}
		if err := tx.Create(&a).Error; err != nil {
			return errs.Persistence("create media asset", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *GormStore) DeleteMediaAsset(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&media.Asset{}, id)
	if res.Error != nil {
		return errs.Persistence("delete media asset", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("media asset", id)
	}
	return nil
}

// ---------- contact

func (s *GormStore) CreateContactMessage(ctx context.Context, in contact.MessageInput) (*contact.Message, error) {
	m := in.ToModel()
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, errs.Persistence("create contact message", err)
	}
	return &m, nil
}
