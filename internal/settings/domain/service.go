package domain

import "context"

// Service reads configuration values with caller-supplied fallbacks. A read
// failure or missing key resolves to the fallback; readers never fail.
type Service interface {
	Get(ctx context.Context, key, fallback string) string
	GetInt(ctx context.Context, key string, fallback int) int
	GetFloat(ctx context.Context, key string, fallback float64) float64
}
