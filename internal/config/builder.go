package config

import (
	"go.uber.org/zap"

	"github.com/lgbarn/chessrules-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithWorkers sets the number of goroutines used by the legality filter.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithPromotionChoices sets the pieces a pawn may promote to.
func (b *ConfigBuilder) WithPromotionChoices(kinds ...chess.PieceKind) *ConfigBuilder {
	b.cfg.PromotionChoices = append([]chess.PieceKind(nil), kinds...)
	return b
}

// WithChess960Policy sets how Chess960 back ranks are assigned.
func (b *ConfigBuilder) WithChess960Policy(p Chess960Policy) *ConfigBuilder {
	b.cfg.Chess960 = p
	return b
}

// WithAutomaticDraws enables Draw results from GetStatus.
func (b *ConfigBuilder) WithAutomaticDraws(enabled bool) *ConfigBuilder {
	b.cfg.AutomaticDraws = enabled
	return b
}

// WithSeed sets the Chess960 generator seed.
func (b *ConfigBuilder) WithSeed(seed uint64) *ConfigBuilder {
	b.cfg.Seed = seed
	return b
}

// WithLogger sets the logger.
func (b *ConfigBuilder) WithLogger(l *zap.Logger) *ConfigBuilder {
	b.cfg.Logger = l
	return b
}
