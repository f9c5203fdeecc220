// Package rest wires the HTTP surface: chi router, middleware stack, and
// route registration. Handlers stay thin and delegate to the application
// services.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"memehub-backend/application/services"
	"memehub-backend/infrastructure/config"
	"memehub-backend/interfaces/http/rest/handlers"
	"memehub-backend/interfaces/http/rest/middleware"
	"memehub-backend/pkg/auth"
	"memehub-backend/pkg/common"
	"memehub-backend/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg          *config.Config
	listing      *services.ListingService
	interactions *services.InteractionService
	lastSeen     *services.LastSeenService
	recommend    *services.RecommendService
	users        *services.UserService
	keywords     *services.KeywordService
	memes        *services.MemeService
	validator    *auth.JWTValidator
	tracer       *observability.Tracer
	logger       *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	listing *services.ListingService,
	interactions *services.InteractionService,
	lastSeen *services.LastSeenService,
	recommend *services.RecommendService,
	users *services.UserService,
	keywords *services.KeywordService,
	memes *services.MemeService,
	validator *auth.JWTValidator,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:          cfg,
		listing:      listing,
		interactions: interactions,
		lastSeen:     lastSeen,
		recommend:    recommend,
		users:        users,
		keywords:     keywords,
		memes:        memes,
		validator:    validator,
		tracer:       tracer,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Tracing(rt.tracer, rt.cfg.EnableTracing))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.DeviceHeader},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	memeHandler := handlers.NewMemeHandler(rt.listing, rt.interactions, rt.lastSeen, rt.recommend, rt.logger)
	userHandler := handlers.NewUserHandler(rt.users, rt.lastSeen, rt.interactions, rt.logger)
	keywordHandler := handlers.NewKeywordHandler(rt.keywords, rt.logger)
	adminMemeHandler := handlers.NewAdminMemeHandler(rt.memes, rt.logger)

	ipLimiter := auth.NewIPRateLimiter(300)
	deviceLimiter := auth.NewDeviceRateLimiter(120)
	requireDevice := middleware.RequireDevice(ipLimiter, deviceLimiter, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// device routes
		r.Group(func(r chi.Router) {
			r.Use(requireDevice)

			r.Route("/users", func(r chi.Router) {
				r.Post("/", userHandler.Register)
				r.Get("/me", userHandler.Me)
				r.Get("/me/last-seen", userHandler.LastSeen)
				r.Get("/me/saves", userHandler.SavedMemes)
			})

			r.Route("/memes", func(r chi.Router) {
				r.Get("/", memeHandler.List)
				r.Get("/today", memeHandler.ListToday)
				r.Get("/search", memeHandler.Search)
				r.Get("/{memeID}", memeHandler.Get)
				r.Post("/{memeID}/watch", memeHandler.Watch)
				r.Post("/{memeID}/reaction", memeHandler.React)
				r.Post("/{memeID}/share", memeHandler.Share)
				r.Post("/{memeID}/save", memeHandler.Save)
				r.Delete("/{memeID}/save", memeHandler.Unsave)
			})

			r.Get("/keywords/recommended", keywordHandler.Recommended)
		})

		// admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(rt.validator, rt.logger))

			r.Post("/memes", adminMemeHandler.Create)
			r.Put("/memes/{memeID}", adminMemeHandler.Update)
			r.Delete("/memes/{memeID}", adminMemeHandler.Delete)
			r.Put("/memes/{memeID}/today", adminMemeHandler.SetToday)

			r.Post("/keywords", keywordHandler.Create)
			r.Delete("/keywords/{keywordID}", keywordHandler.Delete)

			r.Get("/categories", keywordHandler.ListCategories)
			r.Post("/categories", keywordHandler.CreateCategory)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
