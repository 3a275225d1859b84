package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// UserService handles account creation, login, and profile access.
type UserService struct {
	repo        repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewUserService(repo repository.UserRepository, profileRepo repository.ProfileRepository) *UserService {
	return &UserService{
		repo:        repo,
		profileRepo: profileRepo,
	}
}

// validateSignup applies the shared bounds for both registration paths.
func validateSignup(name, email, password string) error {
	if len(strings.TrimSpace(name)) < model.MinNameLength {
		return fmt.Errorf("name must be at least %d characters", model.MinNameLength)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address")
	}
	if len(password) < model.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", model.MinPasswordLength)
	}
	return nil
}

// Register creates an account directly, without code verification. This is
// the legacy path kept alongside the OTP flow.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := validateSignup(req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hash := string(hashed)

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		PasswordHash: &hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user with email and password.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Don't reveal whether the email is registered.
		return nil, model.ErrInvalidCredentials
	}

	// Federated accounts have no password to compare.
	if user.PasswordHash == nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProfile returns the account with its profile fields. A missing
// profile row comes back as empty defaults, never an error.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &model.Profile{UserID: userID}
	}

	return &model.ProfileResponse{User: user, Profile: profile}, nil
}

// UpdateProfile upserts the caller's profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.Profile, error) {
	// The user row must exist; the profile row may not.
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	profile := &model.Profile{
		UserID:    userID,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		CoverURL:  req.CoverURL,
		Website:   req.Website,
		Twitter:   req.Twitter,
		GitHub:    req.GitHub,
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}
