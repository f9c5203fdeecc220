//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"memehub-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideDomainConfig,
	ProvideMemeRepository,
	ProvideKeywordRepository,
	ProvideCategoryRepository,
	ProvideUserRepository,
	ProvideInteractionRepository,
	ProvideRecommendWatchRepository,
	ProvideEventBus,
	ProvideMetrics,
	ProvideTracer,
	ProvideJWTValidator,
	ProvideInteractionService,
	ProvideLastSeenService,
	ProvideRecommendService,
	ProvideListingService,
	ProvideUserService,
	ProvideKeywordService,
	ProvideMemeService,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
