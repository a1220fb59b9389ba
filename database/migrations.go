package database

import (
	"agency-site/internal/domain/contact"
	"agency-site/internal/domain/media"
	"agency-site/internal/domain/projects"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "20250110_create_projects_and_contact_messages",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&projects.Project{}, &contact.Message{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("contact_messages", "projects")
			},
		},
		{
			ID: "20250124_create_media_assets",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&media.Asset{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("media_assets")
			},
		},
		{
			ID: "20250207_create_project_reviews",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&projects.Review{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("project_reviews")
			},
		},
	}
}
