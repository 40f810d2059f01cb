package user

import (
	"context"

	"tradejournal/pkg/errors"
	"tradejournal/pkg/logger"
)

// Service provides business logic for user profile operations.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService constructs a user service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, log: logger.Get()}
}

// GetByID fetches a user by id.
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	if id == 0 {
		return nil, errors.ErrInvalidInput
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	return u, nil
}

// GetByEmail fetches a user by email address.
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, errors.ErrInvalidInput
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "get user by email")
	}
	return u, nil
}

// ProfileUpdate carries the mutable profile fields. Nil pointers leave
// the stored value untouched.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Mobile         *string
	DateOfBirth    *string
	AddressLine1   *string
	AddressLine2   *string
	City           *string
	PostalCode     *string
	Country        *string
	Gender         *Gender
	InitialCapital *float64
}

// UpdateProfile applies a partial profile update and persists the result.
func (s *Service) UpdateProfile(ctx context.Context, id int64, upd ProfileUpdate) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "update profile")
	}

	applyString(&u.FirstName, upd.FirstName)
	applyString(&u.LastName, upd.LastName)
	applyString(&u.Mobile, upd.Mobile)
	applyString(&u.AddressLine1, upd.AddressLine1)
	applyString(&u.AddressLine2, upd.AddressLine2)
	applyString(&u.City, upd.City)
	applyString(&u.PostalCode, upd.PostalCode)
	applyString(&u.Country, upd.Country)
	if upd.Gender != nil {
		u.Gender = *upd.Gender
	}
	if upd.InitialCapital != nil {
		u.InitialCapital = *upd.InitialCapital
	}
	if upd.DateOfBirth != nil {
		dob, err := parseDate(*upd.DateOfBirth)
		if err != nil {
			return nil, errors.NewValidationError("dateOfBirth", "invalid date", *upd.DateOfBirth)
		}
		u.DateOfBirth = &dob
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, errors.Wrap(err, "update profile")
	}

	s.log.Debugw("Profile updated", "user_id", id)
	return u, nil
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
