package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/juvenstu/real-estate-marketplace/internal/apperr"
	"github.com/juvenstu/real-estate-marketplace/internal/models"
	"github.com/juvenstu/real-estate-marketplace/internal/repository"
	"github.com/juvenstu/real-estate-marketplace/internal/utils"
	"github.com/juvenstu/real-estate-marketplace/pkg/logger"
)

var (
	ErrEmailAlreadyExists    = apperr.Conflict("An account with this email already exists.")
	ErrUsernameAlreadyExists = apperr.Conflict("This username is already taken.")
	ErrInvalidCredentials    = apperr.Unauthenticated("Invalid email or password.")

	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// TokenMaxAge returns the session lifetime in seconds, for the cookie MaxAge.
func (s *AuthService) TokenMaxAge() int {
	return int(s.jwtExpiration.Seconds())
}

// Signup creates a new account and issues a session token for it.
func (s *AuthService) Signup(username, email, password string) (*models.User, string, error) {
	if err := s.validateSignupInput(username, email, password); err != nil {
		logger.Log.Warn("Signup validation failed",
			zap.String("username", username),
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if existingUser != nil {
		return nil, "", ErrEmailAlreadyExists
	}

	existingUser, err = s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if existingUser != nil {
		return nil, "", ErrUsernameAlreadyExists
	}

	hashStart := time.Now()
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Avatar:       models.DefaultAvatarURL,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("username", username),
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate session token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", username),
		zap.Duration("hash_duration", time.Since(hashStart)),
	)

	return user, token, nil
}

// Signin authenticates by email and password and issues a session token.
// A missing account and a wrong password report the same failure.
func (s *AuthService) Signin(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Signin failed: user not found", zap.String("email", email))
		return nil, "", ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Log.Warn("Signin failed: invalid password",
			zap.String("user_id", user.ID.String()),
		)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate session token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return user, token, nil
}

// FederatedSignin signs a federated identity in, creating the account on
// first login. The generated account gets a derived username and a random
// password the user never sees.
func (s *AuthService) FederatedSignin(name, email, avatar string) (*models.User, string, error) {
	if !emailRegex.MatchString(email) {
		return nil, "", apperr.BadRequest("invalid email format")
	}

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", err
	}

	if user == nil {
		hashedPassword, err := utils.HashPassword(uuid.NewString())
		if err != nil {
			logger.Log.Error("Failed to hash generated password", zap.Error(err))
			return nil, "", err
		}

		if avatar == "" {
			avatar = models.DefaultAvatarURL
		}

		user = &models.User{
			ID:           uuid.New(),
			Username:     generateUsername(name),
			Email:        email,
			PasswordHash: hashedPassword,
			Avatar:       avatar,
		}

		if err := s.userRepo.CreateUser(user); err != nil {
			logger.Log.Error("Failed to create federated user",
				zap.String("email", email),
				zap.Error(err),
			)
			return nil, "", err
		}

		logger.Log.Info("Federated user created",
			zap.String("user_id", user.ID.String()),
			zap.String("username", user.Username),
		)
	}

	token, err := utils.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate session token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", err
	}

	return user, token, nil
}

// generateUsername derives a username from a display name, with a random
// suffix to dodge collisions.
func generateUsername(name string) string {
	base := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if base == "" {
		base = "user"
	}
	if len(base) > 40 {
		base = base[:40]
	}
	return base + uuid.NewString()[:4]
}

func (s *AuthService) validateSignupInput(username, email, password string) error {
	if len(username) < 3 {
		return apperr.BadRequest("username must be at least 3 characters")
	}
	if len(username) > 50 {
		return apperr.BadRequest("username must be at most 50 characters")
	}

	if !emailRegex.MatchString(email) {
		return apperr.BadRequest("invalid email format")
	}
	if len(email) > 100 {
		return apperr.BadRequest("email too long")
	}

	if len(password) < 8 {
		return apperr.BadRequest("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return apperr.BadRequest("password too long")
	}

	return nil
}
