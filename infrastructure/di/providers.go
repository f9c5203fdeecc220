package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/application/services"
	domainconfig "memehub-backend/domain/config"
	"memehub-backend/infrastructure/config"
	"memehub-backend/infrastructure/messaging/eventbridge"
	"memehub-backend/infrastructure/persistence/dynamodb"
	"memehub-backend/interfaces/http/rest"
	"memehub-backend/pkg/auth"
	"memehub-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client when metrics are
// enabled; a nil client disables publishing
func ProvideCloudWatchClient(awsCfg aws.Config, cfg *config.Config) *awscloudwatch.Client {
	if !cfg.EnableMetrics {
		return nil
	}
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideDomainConfig provides the domain tunables
func ProvideDomainConfig() *domainconfig.DomainConfig {
	return domainconfig.DefaultDomainConfig()
}

// ProvideMemeRepository creates the meme repository
func ProvideMemeRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.MemeRepository {
	return dynamodb.NewMemeRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideKeywordRepository creates the keyword repository
func ProvideKeywordRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.KeywordRepository {
	return dynamodb.NewKeywordRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideCategoryRepository creates the category repository
func ProvideCategoryRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.CategoryRepository {
	return dynamodb.NewCategoryRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideUserRepository creates the user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideInteractionRepository creates the interaction repository
func ProvideInteractionRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.InteractionRepository {
	return dynamodb.NewInteractionRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideRecommendWatchRepository creates the recommend-watch repository
func ProvideRecommendWatchRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.RecommendWatchRepository {
	return dynamodb.NewRecommendWatchRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventBus creates the analytics event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates the metrics publisher
func ProvideMetrics(client *awscloudwatch.Client, logger *zap.Logger) *observability.Metrics {
	return observability.NewMetrics("MemeHub", client, logger)
}

// ProvideTracer creates the tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("memehub-backend")
}

// ProvideJWTValidator creates the admin-surface token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		// development fallback; Validate() rejects this in production
		secret = "development-secret-change-in-production"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
		Audience:  "memehub-admin",
	})
}

// ProvideInteractionService creates the interaction service
func ProvideInteractionService(
	interactions ports.InteractionRepository,
	memes ports.MemeRepository,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.InteractionService {
	return services.NewInteractionService(interactions, memes, eventBus, metrics, logger)
}

// ProvideLastSeenService creates the last-seen service
func ProvideLastSeenService(
	users ports.UserRepository,
	memes ports.MemeRepository,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.LastSeenService {
	return services.NewLastSeenService(users, memes, domainCfg, logger)
}

// ProvideRecommendService creates the recommend service
func ProvideRecommendService(
	watches ports.RecommendWatchRepository,
	memes ports.MemeRepository,
	logger *zap.Logger,
) *services.RecommendService {
	return services.NewRecommendService(watches, memes, logger)
}

// ProvideListingService creates the listing service
func ProvideListingService(
	memes ports.MemeRepository,
	keywords ports.KeywordRepository,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.ListingService {
	return services.NewListingService(memes, keywords, domainCfg, logger)
}

// ProvideUserService creates the user service
func ProvideUserService(
	users ports.UserRepository,
	interactions ports.InteractionRepository,
	logger *zap.Logger,
) *services.UserService {
	return services.NewUserService(users, interactions, logger)
}

// ProvideKeywordService creates the keyword service
func ProvideKeywordService(
	keywords ports.KeywordRepository,
	categories ports.CategoryRepository,
	logger *zap.Logger,
) *services.KeywordService {
	return services.NewKeywordService(keywords, categories, logger)
}

// ProvideMemeService creates the meme service
func ProvideMemeService(
	memes ports.MemeRepository,
	keywords ports.KeywordRepository,
	eventBus ports.EventBus,
	domainCfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *services.MemeService {
	return services.NewMemeService(memes, keywords, eventBus, domainCfg, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
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
) *rest.Router {
	return rest.NewRouter(cfg, listing, interactions, lastSeen, recommend, users, keywords, memes, validator, tracer, logger)
}
