package service

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/internal/models"
	"github.com/juvenstu/real-estate-marketplace/internal/repository"
	"github.com/juvenstu/real-estate-marketplace/internal/utils"
	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

var ErrUserNotFound = apperr.NotFound("The requested user could not be found.")

// UpdateUserInput carries the optional profile fields; empty strings leave
// the stored value untouched.
type UpdateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type UserService struct {
	userRepo    *repository.UserRepository
	listingRepo *repository.ListingRepository
}

func NewUserService(userRepo *repository.UserRepository, listingRepo *repository.ListingRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		listingRepo: listingRepo,
	}
}

func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		logger.Log.Error("Failed to fetch user",
			zap.String("user_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateUser merges the supplied fields into the caller's own profile.
// A supplied password is re-hashed before it is stored.
func (s *UserService) UpdateUser(callerID, id uuid.UUID, in UpdateUserInput) (*models.User, error) {
	if callerID != id {
		return nil, apperr.Forbidden("You can only update your own account.")
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		existing, err := s.userRepo.GetUserByUsername(in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUsernameAlreadyExists
		}
		user.Username = in.Username
	}

	if in.Email != "" && in.Email != user.Email {
		if !emailRegex.MatchString(in.Email) {
			return nil, apperr.BadRequest("invalid email format")
		}
		existing, err := s.userRepo.GetUserByEmail(in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = in.Email
	}

	if in.Password != "" {
		if len(in.Password) < 8 {
			return nil, apperr.BadRequest("password must be at least 8 characters")
		}
		hashedPassword, err := utils.HashPassword(in.Password)
		if err != nil {
			logger.Log.Error("Failed to hash password", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = hashedPassword
	}

	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.UpdateUser(user); err != nil {
		logger.Log.Error("Failed to update user",
			zap.String("user_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User updated", zap.String("user_id", id.String()))
	return user, nil
}

// DeleteUser removes the caller's own account. Listings owned by the
// account are deliberately left in place.
func (s *UserService) DeleteUser(callerID, id uuid.UUID) error {
	if callerID != id {
		return apperr.Forbidden("You can only delete your own account.")
	}

	user, err := s.userRepo.GetUserByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.DeleteUser(id); err != nil {
		logger.Log.Error("Failed to delete user",
			zap.String("user_id", id.String()),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("User deleted", zap.String("user_id", id.String()))
	return nil
}

// OwnedListings returns the caller's own listings, newest first.
func (s *UserService) OwnedListings(callerID, id uuid.UUID) ([]models.Listing, error) {
	if callerID != id {
		return nil, apperr.Forbidden("You can only access your own listings.")
	}

	listings, err := s.listingRepo.GetListingsByUserRef(id)
	if err != nil {
		logger.Log.Error("Failed to fetch owned listings",
			zap.String("user_id", id.String()),
			zap.Error(err),
		)
		return nil, err
	}
	return listings, nil
}
