package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/e11even-central/api/internal/config"
	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserLoginLog{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "user-auth-test-secret"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy.MinLength = 8

	userRepo := repository.NewUserRepository(db)
	loginLogRepo := repository.NewUserLoginLogRepository(db)
	return NewUserAuthService(cfg, userRepo, loginLogRepo), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:       "Server.One@E11even.com",
		Password:    "longenough",
		DisplayName: "Server One",
		Department:  "dining",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "server.one@e11even.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("status want active got %s", user.Status)
	}

	// Duplicate emails are rejected regardless of case.
	if _, err := svc.Register(RegisterInput{
		Email:    "SERVER.ONE@e11even.com",
		Password: "longenough",
	}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken got %v", err)
	}

	logged, token, _, err := svc.Login("server.one@e11even.com", "longenough", LoginMeta{IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("expected last_login_at to be set")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("claims user want %d got %d", user.ID, claims.UserID)
	}

	var logs []models.UserLoginLog
	if err := db.Order("id asc").Find(&logs).Error; err != nil {
		t.Fatalf("load login logs failed: %v", err)
	}
	if len(logs) != 1 || logs[0].Status != constants.LoginLogStatusSuccess {
		t.Fatalf("login logs unexpected: %+v", logs)
	}
	if logs[0].IP != "10.0.0.1" {
		t.Fatalf("login log ip want 10.0.0.1 got %s", logs[0].IP)
	}
}

func TestLoginFailuresAreLogged(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	if _, err := svc.Register(RegisterInput{
		Email:    "bartender@e11even.com",
		Password: "longenough",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("bartender@e11even.com", "wrongpass", LoginMeta{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@e11even.com", "whatever", LoginMeta{}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}

	var logs []models.UserLoginLog
	if err := db.Order("id asc").Find(&logs).Error; err != nil {
		t.Fatalf("load login logs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("login logs want 2 got %d", len(logs))
	}
	for _, entry := range logs {
		if entry.Status != constants.LoginLogStatusFailed {
			t.Fatalf("log status want failed got %s", entry.Status)
		}
		if entry.FailReason != constants.LoginLogFailReasonInvalidCredentials {
			t.Fatalf("fail reason unexpected: %s", entry.FailReason)
		}
	}
}

func TestDisabledUserCannotLogin(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:    "former@e11even.com",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := svc.Login("former@e11even.com", "longenough", LoginMeta{}); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("want ErrUserDisabled got %v", err)
	}
}

func TestChangePasswordRevokesOldTokens(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:    "host@e11even.com",
		Password: "longenough",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrongpass", "anotherlong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "longenough", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "longenough", "anotherlong"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	updated, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if updated.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version want %d got %d", user.TokenVersion+1, updated.TokenVersion)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("expected token_invalid_before to be set")
	}

	if _, _, _, err := svc.Login("host@e11even.com", "anotherlong", LoginMeta{}); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestRegisterValidatesEmailAndPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, err := svc.Register(RegisterInput{Email: "not-an-email", Password: "longenough"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials got %v", err)
	}
	if _, err := svc.Register(RegisterInput{Email: "ok@e11even.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
}
