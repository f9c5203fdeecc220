package config

// DomainConfig holds the business rule tunables for the meme domain
type DomainConfig struct {
	// LastSeenLimit bounds the per-user last-seen meme list
	LastSeenLimit int

	// TodayMemeLimit caps how many featured memes a client may request
	TodayMemeLimit int

	// MaxKeywordsPerMeme bounds keyword assignments on a single meme
	MaxKeywordsPerMeme int
}

// DefaultDomainConfig returns the production defaults
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		LastSeenLimit:      10,
		TodayMemeLimit:     5,
		MaxKeywordsPerMeme: 20,
	}
}
