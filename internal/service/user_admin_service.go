package service

import (
	"context"
	"strings"
	"time"

	"github.com/e11even-central/api/internal/cache"
	"github.com/e11even-central/api/internal/config"
	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserAdminService manages staff accounts from the console.
type UserAdminService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	loginLogRepo repository.UserLoginLogRepository
}

// NewUserAdminService creates the staff admin service.
func NewUserAdminService(cfg *config.Config, userRepo repository.UserRepository, loginLogRepo repository.UserLoginLogRepository) *UserAdminService {
	return &UserAdminService{
		cfg:          cfg,
		userRepo:     userRepo,
		loginLogRepo: loginLogRepo,
	}
}

// ListLoginLogs returns login attempts across all staff for the console.
func (s *UserAdminService) ListLoginLogs(filter repository.UserLoginLogListFilter) ([]models.UserLoginLog, int64, error) {
	return s.loginLogRepo.List(filter)
}

// AdminUpdateUserInput is the console staff update; nil fields are unchanged.
type AdminUpdateUserInput struct {
	DisplayName *string
	Role        *string
	Department  *string
	Status      *string
}

// AdminCreateUserInput is the console staff create request.
type AdminCreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
	Department  string
}

// List returns staff accounts matching the filter.
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get returns one staff account.
func (s *UserAdminService) Get(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create provisions a staff account from the console.
func (s *UserAdminService) Create(input AdminCreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         strings.TrimSpace(input.Role),
		Department:   strings.TrimSpace(input.Department),
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Infow("admin_user_created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Update edits a staff account. Disabling an account revokes its tokens.
func (s *UserAdminService) Update(userID uint, input AdminUpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Role != nil {
		user.Role = strings.TrimSpace(*input.Role)
	}
	if input.Department != nil {
		user.Department = strings.TrimSpace(*input.Department)
	}
	if input.Status != nil {
		status := strings.TrimSpace(*input.Status)
		if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
			return nil, ErrUserInvalid
		}
		if status == constants.UserStatusDisabled && user.Status != constants.UserStatusDisabled {
			now := time.Now()
			user.TokenVersion++
			user.TokenInvalidBefore = &now
		}
		user.Status = status
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	logger.Infow("admin_user_updated", "user_id", user.ID, "status", user.Status)
	return user, nil
}

// BatchSetStatus enables or disables a set of staff accounts at once.
// Disabling revokes tokens for every affected account.
func (s *UserAdminService) BatchSetStatus(userIDs []uint, status string) (int64, error) {
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		return 0, ErrUserInvalid
	}
	if len(userIDs) == 0 {
		return 0, nil
	}

	affected, err := s.userRepo.BatchUpdateStatus(userIDs, status)
	if err != nil {
		return 0, err
	}

	// Drop cached auth snapshots so middleware re-reads the database.
	ctx := context.Background()
	for _, id := range userIDs {
		_ = cache.DelUserAuthState(ctx, id)
	}

	logger.Infow("admin_user_batch_status", "status", status, "affected", affected)
	return affected, nil
}

// ResetPassword sets a new password for a staff account and revokes
// existing tokens.
func (s *UserAdminService) ResetPassword(userID uint, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	now := time.Now()
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	logger.Infow("admin_user_password_reset", "user_id", user.ID)
	return nil
}
