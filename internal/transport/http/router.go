package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"inkwell/internal/handler"
	"inkwell/internal/httputil"
	"inkwell/internal/repository"
	authmw "inkwell/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler       *handler.AuthHandler
	PostHandler       *handler.PostHandler
	EngagementHandler *handler.EngagementHandler
	ProfileHandler    *handler.ProfileHandler
	AdminHandler      *handler.AdminHandler
	MediaHandler      *handler.MediaHandler
	ContactHandler    *handler.ContactHandler
	UserRepo          repository.UserRepository
	JWTSecret         string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	// Account routes - public
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.AuthHandler.Register)
		r.Post("/login", cfg.AuthHandler.Login)
		r.Post("/send-otp", cfg.AuthHandler.SendOTP)
		r.Post("/verify-otp", cfg.AuthHandler.VerifyOTP)
		r.Post("/resend-otp", cfg.AuthHandler.ResendOTP)

		r.With(authmw.RequireAuth(cfg.JWTSecret)).Post("/logout", cfg.AuthHandler.Logout)
	})

	r.Route("/blog", func(r chi.Router) {
		// Public reads and the soft-fail like toggle.
		r.With(authmw.OptionalAuth(cfg.JWTSecret)).Get("/", cfg.PostHandler.List)
		r.With(authmw.OptionalAuth(cfg.JWTSecret)).Post("/{id}/like", cfg.EngagementHandler.Like)

		// Owner-scoped content management.
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(cfg.JWTSecret))

			r.Post("/create", cfg.PostHandler.Create)
			r.Put("/edit/{id}", cfg.PostHandler.Update)
			r.Delete("/delete/{id}", cfg.PostHandler.Delete)
			r.Get("/myblog", cfg.PostHandler.Mine)
			r.Get("/draft", cfg.PostHandler.Drafts)
			r.Post("/{id}/save", cfg.EngagementHandler.Save)
		})

		// Mounted last so the static segments above win the match.
		r.With(authmw.OptionalAuth(cfg.JWTSecret)).Get("/{id}", cfg.PostHandler.Get)
	})

	// Self profile
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth(cfg.JWTSecret))

		r.Get("/me", cfg.AuthHandler.Me)
		r.Get("/profile", cfg.ProfileHandler.Get)
		r.Put("/profile/update", cfg.ProfileHandler.Update)
	})

	// Moderation - admin flag is re-read from the store on every call
	r.Route("/admin", func(r chi.Router) {
		r.Use(authmw.RequireAuth(cfg.JWTSecret))
		r.Use(authmw.RequireAdmin(cfg.UserRepo))

		r.Get("/stats", cfg.AdminHandler.Stats)
		r.Get("/users", cfg.AdminHandler.ListUsers)
		r.Get("/posts", cfg.AdminHandler.ListPosts)
		r.Delete("/posts/{id}", cfg.AdminHandler.DeletePost)
		r.Delete("/users/{id}", cfg.AdminHandler.DeleteUser)
	})

	// External collaborator passthroughs
	r.Post("/upload", cfg.MediaHandler.Upload)
	r.Post("/contact", cfg.ContactHandler.Submit)

	return r
}
