package service

import (
	"context"
	"strings"
	"time"

	"github.com/e11even-central/api/internal/cache"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AdminAccountService manages console administrator accounts.
type AdminAccountService struct {
	adminRepo repository.AdminRepository
}

// NewAdminAccountService creates the admin account service.
func NewAdminAccountService(adminRepo repository.AdminRepository) *AdminAccountService {
	return &AdminAccountService{adminRepo: adminRepo}
}

// List returns administrator accounts without password hashes.
func (s *AdminAccountService) List(page, pageSize int) ([]models.Admin, int64, error) {
	return s.adminRepo.List(page, pageSize)
}

// Get returns one administrator account.
func (s *AdminAccountService) Get(adminID uint) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

// Create provisions a new administrator.
func (s *AdminAccountService) Create(username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 6 {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.adminRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}

	logger.Infow("admin_account_created", "admin_id", admin.ID, "username", admin.Username)
	return admin, nil
}

// Delete removes an administrator. Super admins cannot be deleted.
func (s *AdminAccountService) Delete(adminID uint) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}
	if admin.IsSuper {
		return ErrAdminForbidden
	}
	if err := s.adminRepo.Delete(adminID); err != nil {
		return err
	}
	_ = cache.DelAdminAuthState(context.Background(), adminID)
	return nil
}

// RevokeTokens bumps the token version so existing tokens stop working.
func (s *AdminAccountService) RevokeTokens(adminID uint) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}

	now := time.Now()
	admin.TokenVersion++
	admin.TokenInvalidBefore = &now
	if err := s.adminRepo.Update(admin); err != nil {
		return err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(admin))

	logger.Infow("admin_tokens_revoked", "admin_id", adminID)
	return nil
}
