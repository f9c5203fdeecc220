// Package di assembles the application with google/wire. The generated
// injector lives in wire_gen.go; run `wire ./infrastructure/di` after
// changing providers.
package di

import (
	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/application/services"
	"memehub-backend/infrastructure/config"
	"memehub-backend/interfaces/http/rest"
	"memehub-backend/pkg/auth"
	"memehub-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *zap.Logger
	MemeRepo           ports.MemeRepository
	KeywordRepo        ports.KeywordRepository
	CategoryRepo       ports.CategoryRepository
	UserRepo           ports.UserRepository
	InteractionRepo    ports.InteractionRepository
	RecommendWatchRepo ports.RecommendWatchRepository
	EventBus           ports.EventBus
	Metrics            *observability.Metrics
	Tracer             *observability.Tracer
	JWTValidator       *auth.JWTValidator
	InteractionService *services.InteractionService
	LastSeenService    *services.LastSeenService
	RecommendService   *services.RecommendService
	ListingService     *services.ListingService
	UserService        *services.UserService
	KeywordService     *services.KeywordService
	MemeService        *services.MemeService
	Router             *rest.Router
}
