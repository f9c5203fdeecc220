package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	"memehub-backend/domain/events"
	"memehub-backend/infrastructure/persistence/memory"
	"memehub-backend/pkg/observability"
)

// captureBus records published events for assertions
type captureBus struct {
	mu     sync.Mutex
	events []events.DomainEvent
}

func (b *captureBus) Publish(ctx context.Context, event events.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *captureBus) PublishBatch(ctx context.Context, evts []events.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evts...)
	return nil
}

func (b *captureBus) byType(eventType string) []events.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []events.DomainEvent
	for _, e := range b.events {
		if e.GetEventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	memes        *memory.MemeRepository
	keywords     *memory.KeywordRepository
	categories   *memory.CategoryRepository
	users        *memory.UserRepository
	interactions *memory.InteractionRepository
	watches      *memory.RecommendWatchRepository
	bus          *captureBus
	logger       *zap.Logger
	metrics      *observability.Metrics
}

func newFixture() *fixture {
	logger := zap.NewNop()
	return &fixture{
		memes:        memory.NewMemeRepository(),
		keywords:     memory.NewKeywordRepository(),
		categories:   memory.NewCategoryRepository(),
		users:        memory.NewUserRepository(),
		interactions: memory.NewInteractionRepository(),
		watches:      memory.NewRecommendWatchRepository(),
		bus:          &captureBus{},
		logger:       logger,
		metrics:      observability.NewMetrics("test", nil, logger),
	}
}

func (f *fixture) seedMeme(t *testing.T, title string, keywordIDs ...valueobjects.KeywordID) *entities.Meme {
	t.Helper()
	meme, err := entities.NewMeme(title, "images/"+title+".webp", "upload", keywordIDs)
	require.NoError(t, err)
	require.NoError(t, f.memes.Save(context.Background(), meme))
	return meme
}

// seedMemeAt seeds a meme with an explicit creation time so ordering
// assertions do not depend on wall-clock resolution
func (f *fixture) seedMemeAt(t *testing.T, title string, createdAt time.Time, reaction int, isToday bool, keywordIDs ...valueobjects.KeywordID) *entities.Meme {
	t.Helper()
	meme := entities.ReconstructMeme(
		valueobjects.NewMemeID(),
		title, "images/"+title+".webp", "upload",
		reaction,
		isToday,
		keywordIDs,
		false,
		createdAt, createdAt,
	)
	require.NoError(t, f.memes.Save(context.Background(), meme))
	return meme
}

func (f *fixture) seedKeyword(t *testing.T, name, category string) *entities.Keyword {
	t.Helper()
	keyword, err := entities.NewKeyword(name, category)
	require.NoError(t, err)
	require.NoError(t, f.keywords.Save(context.Background(), keyword))
	return keyword
}

func mustDeviceID(t *testing.T, s string) valueobjects.DeviceID {
	t.Helper()
	id, err := valueobjects.ParseDeviceID(s)
	require.NoError(t, err)
	return id
}
