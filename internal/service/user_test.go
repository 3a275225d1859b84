package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/model"
)

// =============================================================================
// REGISTER TESTS
// =============================================================================

func TestUserService_Register_Success(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, user *model.User) error {
			user.ID = 1
			user.CreatedAt = time.Now()
			return nil
		},
	}
	svc := NewUserService(mockRepo, &mockProfileRepository{})

	req := &model.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "securepassword123",
	}

	user, err := svc.Register(context.Background(), req)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Email != req.Email {
		t.Errorf("email = %q, want %q", user.Email, req.Email)
	}

	// Password must be stored hashed, never plain.
	if user.PasswordHash == nil {
		t.Fatal("expected password hash, got nil")
	}
	if *user.PasswordHash == req.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		t.Error("password hash should be valid bcrypt hash")
	}

	if len(mockRepo.createCalls) != 1 {
		t.Errorf("Create called %d times, want 1", len(mockRepo.createCalls))
	}
}

func TestUserService_Register_EmailExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo, &mockProfileRepository{})

	req := &model.RegisterRequest{
		Name:     "Existing User",
		Email:    "existing@example.com",
		Password: "password123",
	}

	user, err := svc.Register(context.Background(), req)

	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("error = %v, want %v", err, model.ErrEmailExists)
	}
	if user != nil {
		t.Error("user should be nil when registration fails")
	}
	if len(mockRepo.createCalls) != 0 {
		t.Error("Create should not be called when email exists")
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.RegisterRequest
		wantWord string
	}{
		{
			name:     "name too short",
			req:      &model.RegisterRequest{Name: "ab", Email: "a@b.com", Password: "password123"},
			wantWord: "name",
		},
		{
			name:     "whitespace-only name",
			req:      &model.RegisterRequest{Name: "   ", Email: "a@b.com", Password: "password123"},
			wantWord: "name",
		},
		{
			name:     "invalid email",
			req:      &model.RegisterRequest{Name: "Test User", Email: "not-an-email", Password: "password123"},
			wantWord: "email",
		},
		{
			name:     "password too short",
			req:      &model.RegisterRequest{Name: "Test User", Email: "a@b.com", Password: "short"},
			wantWord: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{}
			svc := NewUserService(mockRepo, &mockProfileRepository{})

			_, err := svc.Register(context.Background(), tt.req)

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantWord) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantWord)
			}
			if len(mockRepo.createCalls) != 0 {
				t.Error("Create should not be called for invalid input")
			}
		})
	}
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestUserService_Login(t *testing.T) {
	validPassword := "correctpassword"
	validHash, _ := bcrypt.GenerateFromPassword([]byte(validPassword), bcrypt.MinCost)
	hash := string(validHash)

	testUser := &model.User{
		ID:           1,
		Email:        "test@example.com",
		PasswordHash: &hash,
	}

	tests := []struct {
		name          string
		email         string
		password      string
		mockGetByMail func(ctx context.Context, email string) (*model.User, error)
		wantErr       error
		wantUser      bool
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: validPassword,
			mockGetByMail: func(ctx context.Context, email string) (*model.User, error) {
				return testUser, nil
			},
			wantErr:  nil,
			wantUser: true,
		},
		{
			name:     "email not registered",
			email:    "nobody@example.com",
			password: "anypassword",
			mockGetByMail: func(ctx context.Context, email string) (*model.User, error) {
				return nil, model.ErrUserNotFound
			},
			// Don't reveal whether the email exists.
			wantErr:  model.ErrInvalidCredentials,
			wantUser: false,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrongpassword",
			mockGetByMail: func(ctx context.Context, email string) (*model.User, error) {
				return testUser, nil
			},
			wantErr:  model.ErrInvalidCredentials,
			wantUser: false,
		},
		{
			name:     "account without password",
			email:    "federated@example.com",
			password: validPassword,
			mockGetByMail: func(ctx context.Context, email string) (*model.User, error) {
				return &model.User{ID: 2, Email: email, PasswordHash: nil}, nil
			},
			wantErr:  model.ErrInvalidCredentials,
			wantUser: false,
		},
		{
			name:     "database error",
			email:    "test@example.com",
			password: validPassword,
			mockGetByMail: func(ctx context.Context, email string) (*model.User, error) {
				return nil, errors.New("database error")
			},
			wantErr:  model.ErrInvalidCredentials,
			wantUser: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{
				getByEmailFn: tt.mockGetByMail,
			}
			svc := NewUserService(mockRepo, &mockProfileRepository{})

			user, err := svc.Login(context.Background(), &model.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.wantUser && user == nil {
				t.Error("expected user, got nil")
			}
			if !tt.wantUser && user != nil {
				t.Error("expected nil user")
			}
		})
	}
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestUserService_GetProfile_MissingRowDefaults(t *testing.T) {
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "Test User", Email: "test@example.com"}, nil
		},
	}
	// GetByUserID returning (nil, nil) means no profile row yet.
	svc := NewUserService(mockRepo, &mockProfileRepository{})

	resp, err := svc.GetProfile(context.Background(), 7)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Profile == nil {
		t.Fatal("expected empty profile defaults, got nil")
	}
	if resp.Profile.UserID != 7 {
		t.Errorf("profile user_id = %d, want 7", resp.Profile.UserID)
	}
	if resp.Profile.Bio != nil {
		t.Errorf("bio should default to nil, got %v", resp.Profile.Bio)
	}
}

func TestUserService_GetProfile_UserNotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, &mockProfileRepository{})

	_, err := svc.GetProfile(context.Background(), 404)

	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	var upserted *model.Profile
	mockRepo := &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	profileRepo := &mockProfileRepository{
		upsertFn: func(ctx context.Context, profile *model.Profile) error {
			upserted = profile
			return nil
		},
	}
	svc := NewUserService(mockRepo, profileRepo)

	bio := "writes about databases"
	profile, err := svc.UpdateProfile(context.Background(), 3, &model.UpdateProfileRequest{Bio: &bio})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upserted == nil {
		t.Fatal("expected Upsert to be called")
	}
	if profile.UserID != 3 {
		t.Errorf("profile user_id = %d, want 3", profile.UserID)
	}
	if profile.Bio == nil || *profile.Bio != bio {
		t.Errorf("bio = %v, want %q", profile.Bio, bio)
	}
}

func TestUserService_UpdateProfile_UserNotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepository{}, &mockProfileRepository{})

	_, err := svc.UpdateProfile(context.Background(), 404, &model.UpdateProfileRequest{})

	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrUserNotFound)
	}
}
