package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserRepositoryTest(t *testing.T) (*GormUserRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewUserRepository(db), db
}

func createRepoTestUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("user_repo_%d@example.com", id),
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func TestBatchUpdateStatusReturnsAffectedCount(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	createRepoTestUser(t, db, 1)
	createRepoTestUser(t, db, 2)
	createRepoTestUser(t, db, 3)

	affected, err := repo.BatchUpdateStatus([]uint{1, 2, 99}, constants.UserStatusDisabled)
	if err != nil {
		t.Fatalf("batch update failed: %v", err)
	}
	if affected != 2 {
		t.Fatalf("affected want 2 got %d", affected)
	}

	affected, err = repo.BatchUpdateStatus(nil, constants.UserStatusDisabled)
	if err != nil {
		t.Fatalf("empty batch failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("empty batch affected want 0 got %d", affected)
	}

	var untouched models.User
	if err := db.First(&untouched, 3).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if untouched.Status != constants.UserStatusActive {
		t.Fatalf("user 3 status want active got %s", untouched.Status)
	}
}

func TestBatchUpdateStatusDisableRevokesTokens(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	createRepoTestUser(t, db, 1)

	if _, err := repo.BatchUpdateStatus([]uint{1}, constants.UserStatusDisabled); err != nil {
		t.Fatalf("batch disable failed: %v", err)
	}

	var disabled models.User
	if err := db.First(&disabled, 1).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if disabled.Status != constants.UserStatusDisabled {
		t.Fatalf("status want disabled got %s", disabled.Status)
	}
	if disabled.TokenVersion != 1 {
		t.Fatalf("token version want 1 got %d", disabled.TokenVersion)
	}
	if disabled.TokenInvalidBefore == nil {
		t.Fatalf("token_invalid_before should be set on disable")
	}

	// Re-enabling does not touch token fields.
	if _, err := repo.BatchUpdateStatus([]uint{1}, constants.UserStatusActive); err != nil {
		t.Fatalf("batch enable failed: %v", err)
	}
	var enabled models.User
	if err := db.First(&enabled, 1).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}
	if enabled.TokenVersion != 1 {
		t.Fatalf("token version want 1 after re-enable got %d", enabled.TokenVersion)
	}
}
