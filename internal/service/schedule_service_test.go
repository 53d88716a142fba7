package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupScheduleServiceTest(t *testing.T) (*ScheduleService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:schedule_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Shift{},
		&models.ShiftAssignment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	shiftRepo := repository.NewShiftRepository(db)
	userRepo := repository.NewUserRepository(db)
	return NewScheduleService(shiftRepo, userRepo), db
}

func createScheduleTestUser(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        fmt.Sprintf("schedule_user_%d@example.com", id),
		PasswordHash: "hash",
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func createFutureShift(t *testing.T, svc *ScheduleService, capacity int) *models.Shift {
	t.Helper()
	starts := time.Now().Add(24 * time.Hour)
	shift, err := svc.CreateShift(ShiftInput{
		Department:  "dining",
		RoleTitle:   "server",
		StartsAt:    starts,
		EndsAt:      starts.Add(8 * time.Hour),
		Capacity:    capacity,
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create shift failed: %v", err)
	}
	return shift
}

func TestAssignEnforcesCapacity(t *testing.T) {
	svc, db := setupScheduleServiceTest(t)
	createScheduleTestUser(t, db, 1)
	createScheduleTestUser(t, db, 2)
	createScheduleTestUser(t, db, 3)
	shift := createFutureShift(t, svc, 2)

	if _, err := svc.Assign(shift.ID, 1); err != nil {
		t.Fatalf("assign user 1 failed: %v", err)
	}
	if _, err := svc.Assign(shift.ID, 2); err != nil {
		t.Fatalf("assign user 2 failed: %v", err)
	}
	if _, err := svc.Assign(shift.ID, 3); !errors.Is(err, ErrShiftFull) {
		t.Fatalf("want ErrShiftFull got %v", err)
	}
}

func TestDeclineFreesCapacity(t *testing.T) {
	svc, db := setupScheduleServiceTest(t)
	createScheduleTestUser(t, db, 1)
	createScheduleTestUser(t, db, 2)
	shift := createFutureShift(t, svc, 1)

	assignment, err := svc.Assign(shift.ID, 1)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.Assign(shift.ID, 2); !errors.Is(err, ErrShiftFull) {
		t.Fatalf("want ErrShiftFull got %v", err)
	}

	declined, err := svc.Respond(1, assignment.ID, false)
	if err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if declined.Status != constants.AssignmentStatusDeclined {
		t.Fatalf("status want declined got %s", declined.Status)
	}
	if declined.RespondedAt == nil {
		t.Fatalf("expected responded_at to be set")
	}

	if _, err := svc.Assign(shift.ID, 2); err != nil {
		t.Fatalf("assign after decline failed: %v", err)
	}
}

func TestAssignTwiceReturnsAlreadyAssigned(t *testing.T) {
	svc, db := setupScheduleServiceTest(t)
	createScheduleTestUser(t, db, 1)
	shift := createFutureShift(t, svc, 3)

	if _, err := svc.Assign(shift.ID, 1); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.Assign(shift.ID, 1); !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("want ErrAlreadyAssigned got %v", err)
	}
}

func TestRespondAfterShiftStartIsRejected(t *testing.T) {
	svc, db := setupScheduleServiceTest(t)
	createScheduleTestUser(t, db, 1)
	shift := createFutureShift(t, svc, 1)

	assignment, err := svc.Assign(shift.ID, 1)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	if err := db.Model(&models.Shift{}).
		Where("id = ?", shift.ID).
		Updates(map[string]interface{}{
			"starts_at": time.Now().Add(-2 * time.Hour),
			"ends_at":   time.Now().Add(6 * time.Hour),
		}).Error; err != nil {
		t.Fatalf("backdate shift failed: %v", err)
	}

	if _, err := svc.Respond(1, assignment.ID, true); !errors.Is(err, ErrShiftStarted) {
		t.Fatalf("want ErrShiftStarted got %v", err)
	}
}

func TestRespondForbiddenForOtherUser(t *testing.T) {
	svc, db := setupScheduleServiceTest(t)
	createScheduleTestUser(t, db, 1)
	createScheduleTestUser(t, db, 2)
	shift := createFutureShift(t, svc, 2)

	assignment, err := svc.Assign(shift.ID, 1)
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if _, err := svc.Respond(2, assignment.ID, true); !errors.Is(err, ErrAssignmentForbidden) {
		t.Fatalf("want ErrAssignmentForbidden got %v", err)
	}
}

func TestCreateShiftValidatesWindow(t *testing.T) {
	svc, _ := setupScheduleServiceTest(t)
	starts := time.Now().Add(24 * time.Hour)

	_, err := svc.CreateShift(ShiftInput{
		Department: "dining",
		StartsAt:   starts,
		EndsAt:     starts.Add(-time.Hour),
	})
	if !errors.Is(err, ErrShiftInvalid) {
		t.Fatalf("want ErrShiftInvalid got %v", err)
	}

	_, err = svc.CreateShift(ShiftInput{
		StartsAt: starts,
		EndsAt:   starts.Add(time.Hour),
	})
	if !errors.Is(err, ErrShiftInvalid) {
		t.Fatalf("want ErrShiftInvalid for empty department got %v", err)
	}
}

func TestUpdateShiftCannotDropCapacityBelowTaken(t *testing.T) {
	svc, db := setupScheduleServiceTest(t)
	createScheduleTestUser(t, db, 1)
	createScheduleTestUser(t, db, 2)
	shift := createFutureShift(t, svc, 2)

	if _, err := svc.Assign(shift.ID, 1); err != nil {
		t.Fatalf("assign user 1 failed: %v", err)
	}
	if _, err := svc.Assign(shift.ID, 2); err != nil {
		t.Fatalf("assign user 2 failed: %v", err)
	}

	_, err := svc.UpdateShift(shift.ID, ShiftInput{
		Department: shift.Department,
		RoleTitle:  shift.RoleTitle,
		StartsAt:   shift.StartsAt,
		EndsAt:     shift.EndsAt,
		Capacity:   1,
	})
	if !errors.Is(err, ErrShiftInvalid) {
		t.Fatalf("want ErrShiftInvalid got %v", err)
	}
}

func TestListPublishedFiltersDrafts(t *testing.T) {
	svc, _ := setupScheduleServiceTest(t)
	createFutureShift(t, svc, 1)

	starts := time.Now().Add(48 * time.Hour)
	if _, err := svc.CreateShift(ShiftInput{
		Department: "bar",
		StartsAt:   starts,
		EndsAt:     starts.Add(6 * time.Hour),
	}); err != nil {
		t.Fatalf("create draft shift failed: %v", err)
	}

	shifts, total, err := svc.ListPublished(repository.ShiftListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list published failed: %v", err)
	}
	if total != 1 || len(shifts) != 1 {
		t.Fatalf("published shifts want 1 got total=%d len=%d", total, len(shifts))
	}
}
