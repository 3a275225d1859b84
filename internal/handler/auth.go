package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/model"
	"inkwell/internal/ratelimit"
	"inkwell/internal/service"
	"inkwell/internal/transport/http/middleware"
)

// AuthHandler groups the account endpoints: legacy direct registration,
// login, logout, and the code-verified onboarding flow.
type AuthHandler struct {
	userService       *service.UserService
	authService       *service.AuthService
	onboardingService *service.OnboardingService
	limiter           *ratelimit.Limiter
}

// NewAuthHandler wires dependencies for authentication endpoints.
func NewAuthHandler(userService *service.UserService, authService *service.AuthService, onboardingService *service.OnboardingService, limiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{
		userService:       userService,
		authService:       authService,
		onboardingService: onboardingService,
		limiter:           limiter,
	}
}

// Register handles direct sign-up, bypassing code verification.
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			httputil.WriteConflict(w, "Email already registered")
			return
		}
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, user)
}

// Login authenticates and issues the access token to both transports:
// response body for API clients, httpOnly cookie for the web.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.Email == "" {
		httputil.WriteBadRequest(w, "Email is required")
		return
	}
	if req.Password == "" {
		httputil.WriteBadRequest(w, "Password is required")
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Invalid email or password")
			return
		}
		httputil.WriteInternalError(w, "Failed to login")
		return
	}

	h.issueSession(w, r, user, http.StatusOK)
}

// Logout clears the session cookie.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// SendOTP starts the code-verified onboarding flow.
// POST /auth/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	if !h.allowMail(w, r, "otp") {
		return
	}

	var req model.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.onboardingService.RequestCode(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteConflict(w, "Email already registered")
		case errors.Is(err, model.ErrUpstream):
			httputil.WriteBadGateway(w, "Failed to send verification mail")
		default:
			httputil.WriteBadRequest(w, err.Error())
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}

// VerifyOTP completes onboarding: on a correct code the pending record
// becomes an account and a session is issued immediately.
// POST /auth/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.PendingID <= 0 || req.Code == "" {
		httputil.WriteBadRequest(w, "pending_id and code are required")
		return
	}

	user, err := h.onboardingService.VerifyCode(r.Context(), req.PendingID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRegistrationNotFound):
			httputil.WriteNotFound(w, "Pending registration not found")
		case errors.Is(err, model.ErrCodeExpired):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeCodeExpired, "Verification code expired")
		case errors.Is(err, model.ErrInvalidCode):
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeCodeInvalid, "Invalid verification code")
		default:
			httputil.WriteInternalError(w, "Failed to verify code")
		}
		return
	}

	h.issueSession(w, r, user, http.StatusCreated)
}

// ResendOTP regenerates the code for an existing pending registration.
// POST /auth/resend-otp
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	if !h.allowMail(w, r, "otp") {
		return
	}

	var req model.ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if req.PendingID <= 0 {
		httputil.WriteBadRequest(w, "pending_id is required")
		return
	}

	if err := h.onboardingService.ResendCode(r.Context(), req.PendingID); err != nil {
		switch {
		case errors.Is(err, model.ErrRegistrationNotFound):
			httputil.WriteNotFound(w, "Pending registration not found")
		case errors.Is(err, model.ErrUpstream):
			httputil.WriteBadGateway(w, "Failed to send verification mail")
		default:
			httputil.WriteInternalError(w, "Failed to resend code")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Verification code sent",
	})
}

// Me returns the currently authenticated user.
// GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		httputil.WriteInternalError(w, "Failed to get user")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// issueSession signs a token for the user and delivers it on both
// transports.
func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, user *model.User, status int) {
	token, err := h.authService.IssueAccessToken(user.ID)
	if err != nil {
		httputil.WriteInternalError(w, "Failed to issue token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.authService.TokenMaxAge(),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.WriteJSON(w, status, model.LoginResponse{
		User:        user,
		AccessToken: token,
		ExpiresIn:   h.authService.TokenMaxAge(),
	})
}

// allowMail applies the per-client rate limit for mail-sending routes.
func (h *AuthHandler) allowMail(w http.ResponseWriter, r *http.Request, scope string) bool {
	ok, err := h.limiter.Allow(r.Context(), scope, clientIP(r))
	if err != nil {
		httputil.WriteInternalError(w, "Rate limit check failed")
		return false
	}
	if !ok {
		httputil.WriteTooManyRequests(w, "Too many requests, try again later")
		return false
	}
	return true
}
