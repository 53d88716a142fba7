package service

import (
	"strings"
	"time"

	"github.com/e11even-central/api/internal/constants"
	"github.com/e11even-central/api/internal/logger"
	"github.com/e11even-central/api/internal/models"
	"github.com/e11even-central/api/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleService manages shifts and shift assignments.
type ScheduleService struct {
	shiftRepo *repository.GormShiftRepository
	userRepo  repository.UserRepository
}

// NewScheduleService creates the schedule service.
func NewScheduleService(shiftRepo *repository.GormShiftRepository, userRepo repository.UserRepository) *ScheduleService {
	return &ScheduleService{
		shiftRepo: shiftRepo,
		userRepo:  userRepo,
	}
}

// ShiftInput is the admin create/update request.
type ShiftInput struct {
	Department  string
	RoleTitle   string
	StartsAt    time.Time
	EndsAt      time.Time
	Capacity    int
	Notes       string
	IsPublished bool
}

// ListPublished lists published shifts for staff, filtered by window.
func (s *ScheduleService) ListPublished(filter repository.ShiftListFilter) ([]models.Shift, int64, error) {
	filter.OnlyPublished = true
	return s.shiftRepo.List(filter)
}

// ListAdmin lists all shifts for the console.
func (s *ScheduleService) ListAdmin(filter repository.ShiftListFilter) ([]models.Shift, int64, error) {
	return s.shiftRepo.List(filter)
}

// GetShift returns a shift with its assignments.
func (s *ScheduleService) GetShift(shiftID uint) (*models.Shift, []models.ShiftAssignment, error) {
	shift, err := s.shiftRepo.GetByID(shiftID)
	if err != nil {
		return nil, nil, err
	}
	if shift == nil {
		return nil, nil, ErrShiftNotFound
	}
	assignments, err := s.shiftRepo.ListAssignmentsByShift(shiftID)
	if err != nil {
		return nil, nil, err
	}
	return shift, assignments, nil
}

// ListMyAssignments lists the caller's assignments, soonest shift first.
func (s *ScheduleService) ListMyAssignments(userID uint) ([]models.ShiftAssignment, error) {
	return s.shiftRepo.ListAssignmentsByUser(userID)
}

// Respond records the caller's confirm or decline on their assignment.
// Responses close once the shift has started.
func (s *ScheduleService) Respond(userID, assignmentID uint, confirm bool) (*models.ShiftAssignment, error) {
	assignment, err := s.shiftRepo.GetAssignmentByID(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}
	if assignment.UserID != userID {
		return nil, ErrAssignmentForbidden
	}

	shift, err := s.shiftRepo.GetByID(assignment.ShiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	if !time.Now().Before(shift.StartsAt) {
		return nil, ErrShiftStarted
	}

	status := constants.AssignmentStatusDeclined
	if confirm {
		status = constants.AssignmentStatusConfirmed
	}
	now := time.Now()
	assignment.Status = status
	assignment.RespondedAt = &now
	if err := s.shiftRepo.UpdateAssignment(assignment); err != nil {
		return nil, err
	}

	logger.Infow("shift_assignment_responded",
		"assignment_id", assignment.ID,
		"shift_id", assignment.ShiftID,
		"user_id", userID,
		"status", status,
	)
	return assignment, nil
}

// CreateShift creates a shift from the console.
func (s *ScheduleService) CreateShift(input ShiftInput) (*models.Shift, error) {
	if err := validateShiftInput(&input); err != nil {
		return nil, err
	}

	shift := &models.Shift{
		Department:  strings.TrimSpace(input.Department),
		RoleTitle:   strings.TrimSpace(input.RoleTitle),
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Capacity:    input.Capacity,
		Notes:       strings.TrimSpace(input.Notes),
		IsPublished: input.IsPublished,
	}
	if err := s.shiftRepo.Create(shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// UpdateShift edits a shift from the console.
func (s *ScheduleService) UpdateShift(shiftID uint, input ShiftInput) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetByID(shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	if err := validateShiftInput(&input); err != nil {
		return nil, err
	}

	// Capacity cannot drop below the slots already taken.
	active, err := s.shiftRepo.CountActiveAssignments(shiftID)
	if err != nil {
		return nil, err
	}
	if int64(input.Capacity) < active {
		return nil, ErrShiftInvalid
	}

	shift.Department = strings.TrimSpace(input.Department)
	shift.RoleTitle = strings.TrimSpace(input.RoleTitle)
	shift.StartsAt = input.StartsAt
	shift.EndsAt = input.EndsAt
	shift.Capacity = input.Capacity
	shift.Notes = strings.TrimSpace(input.Notes)
	shift.IsPublished = input.IsPublished

	if err := s.shiftRepo.Update(shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// DeleteShift soft-deletes a shift and removes its assignments.
func (s *ScheduleService) DeleteShift(shiftID uint) error {
	shift, err := s.shiftRepo.GetByID(shiftID)
	if err != nil {
		return err
	}
	if shift == nil {
		return ErrShiftNotFound
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shift_id = ?", shiftID).Delete(&models.ShiftAssignment{}).Error; err != nil {
			return err
		}
		return s.shiftRepo.WithTx(tx).Delete(shiftID)
	})
}

// PublishShift makes a shift visible to staff.
func (s *ScheduleService) PublishShift(shiftID uint, published bool) (*models.Shift, error) {
	shift, err := s.shiftRepo.GetByID(shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, ErrShiftNotFound
	}
	if shift.IsPublished == published {
		return shift, nil
	}
	shift.IsPublished = published
	if err := s.shiftRepo.Update(shift); err != nil {
		return nil, err
	}
	logger.Infow("shift_publish_changed", "shift_id", shift.ID, "published", published)
	return shift, nil
}

// Assign puts a staff member on a shift. The shift row is locked so
// concurrent assigns cannot overshoot capacity.
func (s *ScheduleService) Assign(shiftID, userID uint) (*models.ShiftAssignment, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Status != constants.UserStatusActive {
		return nil, ErrUserDisabled
	}

	var assignment *models.ShiftAssignment
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		var shift models.Shift
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", shiftID).
			Limit(1).
			Find(&shift)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrShiftNotFound
		}

		shiftRepo := s.shiftRepo.WithTx(tx)

		existing, err := shiftRepo.GetAssignment(shiftID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Status != constants.AssignmentStatusDeclined {
				return ErrAlreadyAssigned
			}
			// Re-assigning after a decline reopens the slot request.
			active, err := shiftRepo.CountActiveAssignments(shiftID)
			if err != nil {
				return err
			}
			if active >= int64(shift.Capacity) {
				return ErrShiftFull
			}
			existing.Status = constants.AssignmentStatusAssigned
			existing.RespondedAt = nil
			if err := shiftRepo.UpdateAssignment(existing); err != nil {
				return err
			}
			assignment = existing
			return nil
		}

		active, err := shiftRepo.CountActiveAssignments(shiftID)
		if err != nil {
			return err
		}
		if active >= int64(shift.Capacity) {
			return ErrShiftFull
		}

		assignment = &models.ShiftAssignment{
			ShiftID: shiftID,
			UserID:  userID,
			Status:  constants.AssignmentStatusAssigned,
		}
		return shiftRepo.CreateAssignment(assignment)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("shift_assigned", "shift_id", shiftID, "user_id", userID)
	return assignment, nil
}

// Unassign removes a staff member from a shift.
func (s *ScheduleService) Unassign(shiftID, userID uint) error {
	existing, err := s.shiftRepo.GetAssignment(shiftID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAssignmentNotFound
	}
	if err := s.shiftRepo.DeleteAssignment(shiftID, userID); err != nil {
		return err
	}
	logger.Infow("shift_unassigned", "shift_id", shiftID, "user_id", userID)
	return nil
}

func validateShiftInput(input *ShiftInput) error {
	if input.Capacity <= 0 {
		input.Capacity = 1
	}
	if input.StartsAt.IsZero() || input.EndsAt.IsZero() {
		return ErrShiftInvalid
	}
	if !input.EndsAt.After(input.StartsAt) {
		return ErrShiftInvalid
	}
	if strings.TrimSpace(input.Department) == "" {
		return ErrShiftInvalid
	}
	return nil
}
