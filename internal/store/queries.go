package store

import (
	"errors"

	"agency-site/internal/domain/projects"
	"agency-site/internal/errs"

	"gorm.io/gorm"
)

func projectsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&projects.Project{}).Order("id ASC")
}

func findProject(db *gorm.DB, id uint) (*projects.Project, error) {
	var p projects.Project
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("project", id)
		}
		return nil, errs.Persistence("get project", err)
	}
	return &p, nil
}
