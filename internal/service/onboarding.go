package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// OnboardingService runs the code-verified registration flow:
// request a code, optionally resend it, verify it, and promote the
// pending record into a real account.
type OnboardingService struct {
	registrationRepo repository.RegistrationRepository
	userRepo         repository.UserRepository
	mailer           Mailer
	now              func() time.Time
}

func NewOnboardingService(registrationRepo repository.RegistrationRepository, userRepo repository.UserRepository, mailer Mailer) *OnboardingService {
	return &OnboardingService{
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		mailer:           mailer,
		now:              time.Now,
	}
}

// RequestCode validates the signup, stores a pending registration with a
// fresh code, and dispatches the code by mail. The returned pending id is
// a correlation handle for verify/resend, not a credential.
func (s *OnboardingService) RequestCode(ctx context.Context, req *model.SendOTPRequest) (*model.SendOTPResponse, error) {
	if err := validateSignup(req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	// Opportunistic cleanup; there is no background sweeper.
	if n, err := s.registrationRepo.DeleteExpired(ctx, s.now()); err == nil && n > 0 {
		log.Printf("[Onboarding] Purged %d expired pending registrations", n)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	pending := &model.PendingRegistration{
		Name:          strings.TrimSpace(req.Name),
		Email:         req.Email,
		PasswordHash:  string(hashed),
		Code:          code,
		CodeExpiresAt: s.now().Add(model.OTPCodeTTL),
	}

	if err := s.registrationRepo.Upsert(ctx, pending); err != nil {
		return nil, fmt.Errorf("store pending registration: %w", err)
	}

	if err := s.mailer.SendOTP(pending.Email, pending.Name, code); err != nil {
		// The row stays; the client can resend once the relay recovers.
		return nil, err
	}

	log.Printf("[Onboarding] Issued code for pending registration %d", pending.ID)
	return &model.SendOTPResponse{PendingID: pending.ID}, nil
}

// ResendCode regenerates the code and expiry in place on the same pending
// row and re-dispatches it.
func (s *OnboardingService) ResendCode(ctx context.Context, pendingID int64) error {
	pending, err := s.registrationRepo.GetByID(ctx, pendingID)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	if err := s.registrationRepo.RefreshCode(ctx, pendingID, code, s.now().Add(model.OTPCodeTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(pending.Email, pending.Name, code); err != nil {
		return err
	}

	log.Printf("[Onboarding] Reissued code for pending registration %d", pendingID)
	return nil
}

// VerifyCode checks the submitted code and, on success, promotes the
// pending registration into a user in one transaction. A consumed pending
// id can never be verified again: the row is gone.
func (s *OnboardingService) VerifyCode(ctx context.Context, pendingID int64, code string) (*model.User, error) {
	pending, err := s.registrationRepo.GetByID(ctx, pendingID)
	if err != nil {
		return nil, err
	}

	if pending.Expired(s.now()) {
		return nil, model.ErrCodeExpired
	}

	// Exact, case-sensitive compare; no normalization.
	if pending.Code != code {
		return nil, model.ErrInvalidCode
	}

	user, err := s.registrationRepo.Promote(ctx, pending)
	if err != nil {
		return nil, err
	}

	log.Printf("[Onboarding] Promoted pending registration %d to user %d", pendingID, user.ID)
	return user, nil
}

// generateCode produces a 6-digit numeric code from crypto/rand,
// zero-padded so every code has the same length.
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < model.OTPCodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", model.OTPCodeLength, n), nil
}
