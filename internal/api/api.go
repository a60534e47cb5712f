package api

import (
	"context"

	"work-timer/internal/domain"
	apperrors "work-timer/internal/errors"
	"work-timer/internal/repository/sqlite"
)

// DayStore loads and saves whole work days through the repository.
type DayStore interface {
	// Find returns the stored day and whether it exists.
	Find(ctx context.Context, date domain.WorkDayDate) (domain.WorkDay, bool, error)
	// Load returns the stored day or a new empty one.
	Load(ctx context.Context, date domain.WorkDayDate) (domain.WorkDay, error)
	Save(ctx context.Context, day domain.WorkDay) error
	Delete(ctx context.Context, date domain.WorkDayDate) error
	Exists(ctx context.Context, date domain.WorkDayDate) (bool, error)
}

type dayStoreImpl struct {
	repo   sqlite.Repository
	mapper *domain.WorkDayMapper
	clock  domain.Clock
}

// NewDayStore creates a DayStore. clock stamps updated_at on save.
func NewDayStore(repo sqlite.Repository, clock domain.Clock) DayStore {
	return &dayStoreImpl{
		repo:   repo,
		mapper: domain.NewWorkDayMapper(),
		clock:  clock,
	}
}

func (s *dayStoreImpl) Find(ctx context.Context, date domain.WorkDayDate) (domain.WorkDay, bool, error) {
	row, err := s.repo.GetWorkDay(ctx, date.ToISOString())
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return domain.WorkDay{}, false, nil
		}
		return domain.WorkDay{}, false, err
	}

	sessions, err := s.repo.ListWorkSessionsByDate(ctx, row.Date)
	if err != nil {
		return domain.WorkDay{}, false, err
	}

	day, err := s.mapper.FromDatabase(row, sessions)
	if err != nil {
		return domain.WorkDay{}, false, err
	}
	return day, true, nil
}

func (s *dayStoreImpl) Load(ctx context.Context, date domain.WorkDayDate) (domain.WorkDay, error) {
	day, found, err := s.Find(ctx, date)
	if err != nil {
		return domain.WorkDay{}, err
	}
	if !found {
		return domain.NewWorkDay(date), nil
	}
	return day, nil
}

func (s *dayStoreImpl) Save(ctx context.Context, day domain.WorkDay) error {
	row, sessions := s.mapper.ToDatabase(day, s.clock.Now())
	return s.repo.SaveWorkDay(ctx, row, sessions)
}

func (s *dayStoreImpl) Delete(ctx context.Context, date domain.WorkDayDate) error {
	return s.repo.DeleteWorkDay(ctx, date.ToISOString())
}

func (s *dayStoreImpl) Exists(ctx context.Context, date domain.WorkDayDate) (bool, error) {
	return s.repo.WorkDayExists(ctx, date.ToISOString())
}
