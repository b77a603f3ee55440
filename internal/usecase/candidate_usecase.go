package usecase

import (
	"context"
	"errors"
	"strings"

	"candidate-tracker-backend/internal/domain"
	"candidate-tracker-backend/pkg/apperror"
	"candidate-tracker-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const maxPageSize = 100

type candidateUsecase struct {
	candidateRepo   domain.CandidateRepository
	validate        *validator.Validate
	defaultPageSize int
}

func NewCandidateUsecase(candidateRepo domain.CandidateRepository, validate *validator.Validate, defaultPageSize int) domain.CandidateUsecase {
	if defaultPageSize < 1 {
		defaultPageSize = 10
	}
	return &candidateUsecase{
		candidateRepo:   candidateRepo,
		validate:        validate,
		defaultPageSize: defaultPageSize,
	}
}

// normalize trims name and position and lowercases the email before any
// validation runs, so stored values are always in canonical form.
func normalize(in *domain.CandidateInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.PositionApplied = strings.TrimSpace(in.PositionApplied)
}

// validateInput collects every field failure, including email uniqueness,
// into one details map. excludeID skips the record being updated in the
// duplicate check.
func (u *candidateUsecase) validateInput(ctx context.Context, in domain.CandidateInput, excludeID int64) error {
	details := validation.Details(u.validate.Struct(in))
	if details == nil {
		details = map[string][]string{}
	}

	// Uniqueness is only worth checking once the format is acceptable.
	if len(details["email"]) == 0 {
		exists, err := u.candidateRepo.EmailExists(ctx, in.Email, excludeID)
		if err != nil {
			return apperror.Internal(err)
		}
		if exists {
			details["email"] = append(details["email"], validation.DuplicateEmailMessage)
		}
	}

	if len(details) > 0 {
		return apperror.Validation(details)
	}
	return nil
}

// mapRepoErr translates store sentinels into API errors. A duplicate email
// at insert time (lost uniqueness race) surfaces as the same field error the
// pre-check would have produced.
func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Candidate not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		return apperror.Validation(map[string][]string{
			"email": {validation.DuplicateEmailMessage},
		})
	}
	return err
}

func (u *candidateUsecase) Create(ctx context.Context, in domain.CandidateInput) (*domain.Candidate, error) {
	normalize(&in)
	if err := u.validateInput(ctx, in, 0); err != nil {
		return nil, err
	}

	status := domain.Status(in.Status)
	if in.Status == "" {
		status = domain.StatusApplied
	}

	c := &domain.Candidate{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		PositionApplied: in.PositionApplied,
		Status:          status,
	}
	if err := u.candidateRepo.Create(ctx, c); err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

func (u *candidateUsecase) Get(ctx context.Context, id int64) (*domain.Candidate, error) {
	c, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

func (u *candidateUsecase) Update(ctx context.Context, id int64, in domain.CandidateInput) (*domain.Candidate, error) {
	existing, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	normalize(&in)
	if err := u.validateInput(ctx, in, id); err != nil {
		return nil, err
	}

	existing.Name = in.Name
	existing.Email = in.Email
	existing.Phone = in.Phone
	existing.PositionApplied = in.PositionApplied
	if in.Status != "" {
		existing.Status = domain.Status(in.Status)
	}

	if err := u.candidateRepo.Update(ctx, existing); err != nil {
		return nil, mapRepoErr(err)
	}
	return existing, nil
}

func (u *candidateUsecase) Patch(ctx context.Context, id int64, in domain.CandidatePatch) (*domain.Candidate, error) {
	existing, err := u.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	// Normalize provided fields only.
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if in.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*in.Email))
		in.Email = &lowered
	}
	if in.Phone != nil {
		trimmed := strings.TrimSpace(*in.Phone)
		in.Phone = &trimmed
	}
	if in.PositionApplied != nil {
		trimmed := strings.TrimSpace(*in.PositionApplied)
		in.PositionApplied = &trimmed
	}

	details := validation.Details(u.validate.Struct(in))
	if details == nil {
		details = map[string][]string{}
	}
	// omitempty skips provided-but-empty values, so explicit empties are
	// rejected here.
	if in.Name != nil && *in.Name == "" {
		details["name"] = append(details["name"], "Name cannot be empty.")
	}
	if in.Email != nil && *in.Email == "" {
		details["email"] = append(details["email"], "Email cannot be empty.")
	}
	if in.Phone != nil && *in.Phone == "" {
		details["phone"] = append(details["phone"], "Phone number cannot be empty.")
	}
	if in.PositionApplied != nil && *in.PositionApplied == "" {
		details["position_applied"] = append(details["position_applied"], "Position applied cannot be empty.")
	}
	if in.Email != nil && *in.Email != "" && len(details["email"]) == 0 {
		exists, err := u.candidateRepo.EmailExists(ctx, *in.Email, id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if exists {
			details["email"] = append(details["email"], validation.DuplicateEmailMessage)
		}
	}
	if len(details) > 0 {
		return nil, apperror.Validation(details)
	}

	if in.Name != nil {
		existing.Name = *in.Name
	}
	if in.Email != nil {
		existing.Email = *in.Email
	}
	if in.Phone != nil {
		existing.Phone = *in.Phone
	}
	if in.PositionApplied != nil {
		existing.PositionApplied = *in.PositionApplied
	}
	if in.Status != nil {
		existing.Status = domain.Status(*in.Status)
	}

	if err := u.candidateRepo.Update(ctx, existing); err != nil {
		return nil, mapRepoErr(err)
	}
	return existing, nil
}

// UpdateStatus moves a candidate to a new status. Any status may move to
// any other, including itself.
func (u *candidateUsecase) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Candidate, error) {
	s := domain.Status(status)
	if !s.Valid() {
		return nil, apperror.Validation(map[string][]string{
			"status": {"Status must be one of: Applied, Interview, Selected, Rejected."},
		})
	}

	c, err := u.candidateRepo.UpdateStatus(ctx, id, s)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

func (u *candidateUsecase) Delete(ctx context.Context, id int64) (string, error) {
	name, err := u.candidateRepo.Delete(ctx, id)
	if err != nil {
		return "", mapRepoErr(err)
	}
	return name, nil
}

func (u *candidateUsecase) List(ctx context.Context, f domain.CandidateFilter) (*domain.CandidatePage, error) {
	if f.Status != "" && !domain.Status(f.Status).Valid() {
		return nil, apperror.Validation(map[string][]string{
			"status": {"Status must be one of: Applied, Interview, Selected, Rejected."},
		})
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = u.defaultPageSize
	}
	if f.PageSize > maxPageSize {
		f.PageSize = maxPageSize
	}
	if f.OrderBy == "" {
		f.OrderBy = "created_at"
		f.Descending = true
	}

	candidates, total, err := u.candidateRepo.Fetch(ctx, f)
	if err != nil {
		return nil, err
	}

	results := make([]domain.CandidateListItem, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, domain.CandidateListItem{
			ID:              c.ID,
			Name:            c.Name,
			Email:           c.Email,
			Phone:           c.Phone,
			PositionApplied: c.PositionApplied,
			Status:          c.Status,
		})
	}

	page := &domain.CandidatePage{
		Count:   total,
		Results: results,
	}
	if int64(f.Page)*int64(f.PageSize) < total {
		next := f.Page + 1
		page.Next = &next
	}
	if f.Page > 1 {
		prev := f.Page - 1
		page.Previous = &prev
	}
	return page, nil
}
