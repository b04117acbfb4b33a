package config

import (
	"testing"

	"go.uber.org/zap"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/errors"
	"github.com/lgbarn/chessrules-go/internal/testutil"
)

// TestNewConfig_Defaults verifies Config has sensible defaults
func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}
	testutil.AssertEqual(t, cfg.PromotionChoices, DefaultPromotionChoices, "PromotionChoices")
	if cfg.Chess960 != MirroredBackRank {
		t.Errorf("Chess960 = %v, want %v", cfg.Chess960, MirroredBackRank)
	}
	if cfg.AutomaticDraws {
		t.Error("AutomaticDraws should be false by default")
	}
	if cfg.Logger == nil {
		t.Error("Logger should default to a no-op logger")
	}
	testutil.AssertNoError(t, cfg.Validate(), "default config")
}

// TestNewConfig_ChoicesNotShared verifies defaults are copied per config
func TestNewConfig_ChoicesNotShared(t *testing.T) {
	cfg := NewConfig()
	cfg.PromotionChoices[0] = chess.Knight

	if DefaultPromotionChoices[0] != chess.Queen {
		t.Errorf("DefaultPromotionChoices[0] = %v after mutating a config, want Queen", DefaultPromotionChoices[0])
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		build   func(*ConfigBuilder) *ConfigBuilder
		wantErr bool
	}{
		{"defaults", func(b *ConfigBuilder) *ConfigBuilder { return b }, false},
		{"eight workers", func(b *ConfigBuilder) *ConfigBuilder { return b.WithWorkers(8) }, false},
		{"zero workers", func(b *ConfigBuilder) *ConfigBuilder { return b.WithWorkers(0) }, true},
		{"queen only", func(b *ConfigBuilder) *ConfigBuilder { return b.WithPromotionChoices(chess.Queen) }, false},
		{"no choices", func(b *ConfigBuilder) *ConfigBuilder { return b.WithPromotionChoices() }, true},
		{"promote to king", func(b *ConfigBuilder) *ConfigBuilder { return b.WithPromotionChoices(chess.King) }, true},
		{"promote to pawn", func(b *ConfigBuilder) *ConfigBuilder { return b.WithPromotionChoices(chess.Pawn) }, true},
		{"duplicate choice", func(b *ConfigBuilder) *ConfigBuilder {
			return b.WithPromotionChoices(chess.Queen, chess.Queen)
		}, true},
		{"independent 960", func(b *ConfigBuilder) *ConfigBuilder { return b.WithChess960Policy(IndependentBackRanks) }, false},
		{"unknown 960 policy", func(b *ConfigBuilder) *ConfigBuilder { return b.WithChess960Policy(Chess960Policy(7)) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.build(NewConfigBuilder()).Build().Validate()
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
			} else {
				testutil.AssertNoError(t, err)
			}
		})
	}
}

func TestConfigBuilder(t *testing.T) {
	logger := zap.NewExample()
	cfg := NewConfigBuilder().
		WithWorkers(4).
		WithAutomaticDraws(true).
		WithSeed(42).
		WithLogger(logger).
		WithChess960Policy(IndependentBackRanks).
		Build()

	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if !cfg.AutomaticDraws {
		t.Error("AutomaticDraws = false, want true")
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.Log() != logger {
		t.Error("Log() did not return the configured logger")
	}
	if cfg.Chess960 != IndependentBackRanks {
		t.Errorf("Chess960 = %v, want %v", cfg.Chess960, IndependentBackRanks)
	}
}

func TestConfig_LogNil(t *testing.T) {
	cfg := &Config{}
	if cfg.Log() == nil {
		t.Error("Log() = nil, want a no-op logger")
	}
}
