package sweets

import (
	"testing"

	"gorm.io/gorm"

	"github.com/angelmondragon/sweetshop-backend/internal/catalog"
	"github.com/angelmondragon/sweetshop-backend/pkg/db"
	"github.com/angelmondragon/sweetshop-backend/pkg/db/models"
)

func openSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn := db.OpenTestSQLite(t, &models.Category{}, &models.Sweet{})

	for _, c := range catalog.FixtureCategories() {
		row := models.Category{Slug: c.ID, Name: c.Name}
		if err := conn.Create(&row).Error; err != nil {
			t.Fatalf("seed category %s: %v", c.Name, err)
		}
	}
	for _, p := range catalog.FixtureProducts() {
		row := catalog.ToModel(p)
		if err := conn.Create(&row).Error; err != nil {
			t.Fatalf("seed sweet %s: %v", p.Name, err)
		}
	}
	return conn
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := openSeededDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo, db.NewFromGorm(conn))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func ptr[T any](v T) *T { return &v }
