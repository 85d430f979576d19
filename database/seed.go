package database

import (
	"fmt"
	"log"
	"os"

	"github.com/hweilin/admin-console/model"
	"github.com/hweilin/admin-console/utils/auth"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds runs all seed functions
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)

	if err := seeder.SeedRootAdmin(); err != nil {
		return fmt.Errorf("failed to seed root admin: %w", err)
	}

	return nil
}

// SeedRootAdmin creates the level-1 super admin from the
// ROOT_ADMIN_USERNAME and ROOT_ADMIN_PASSWORD environment variables.
// Every other account descends from this one; it has no creator and no
// manager. Skipped when a super admin already exists.
func (s *Seeder) SeedRootAdmin() error {
	var count int64
	if err := s.db.Model(&model.Admin{}).
		Where("role_level = ?", model.RoleSuperAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Super admin already exists, skipping seed")
		return nil
	}

	username := os.Getenv("ROOT_ADMIN_USERNAME")
	password := os.Getenv("ROOT_ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("ROOT_ADMIN_USERNAME or ROOT_ADMIN_PASSWORD not set, skipping super admin seed")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	root := model.Admin{
		Username:     username,
		PasswordHash: hash,
		RealName:     "Super Administrator",
		RoleLevel:    model.RoleSuperAdmin,
		Status:       model.StatusActive,
	}
	if err := s.db.Create(&root).Error; err != nil {
		return err
	}

	log.Printf("Seeded super admin %q (id=%d)", root.Username, root.ID)
	return nil
}
