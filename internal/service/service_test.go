package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"shopapi/internal/models"
	"shopapi/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Purchase{}))

	return &repo.GormRepo{DB: db}
}

func newTestUserService(t *testing.T) *UserService {
	t.Helper()
	return &UserService{Repo: newTestRepo(t)}
}

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: newTestRepo(t), Index: "products"}
}
