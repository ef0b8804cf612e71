package loyalty

import (
	"context"
	"strconv"

	"github.com/vuminhngo/techstore-backend/pkg/logger"
	"github.com/vuminhngo/techstore-backend/pkg/redis"
)

// Setting names for tier thresholds in the key-value store.
const (
	SettingSilver  = "level_silver"
	SettingGold    = "level_gold"
	SettingDiamond = "level_diamond"
)

// ThresholdSource resolves tier thresholds from the settings store. Values
// are read fresh on every call so admin changes take effect without a
// restart.
type ThresholdSource struct {
	settings redis.SettingStore
	logg     *logger.Logger
}

// NewThresholdSource wires a source over the provided settings store.
func NewThresholdSource(settings redis.SettingStore, logg *logger.Logger) *ThresholdSource {
	return &ThresholdSource{settings: settings, logg: logg}
}

// Current returns the configured thresholds, falling back per-entry to the
// defaults when a setting is absent or unparsable.
func (s *ThresholdSource) Current(ctx context.Context) Thresholds {
	t := DefaultThresholds
	t.Silver = s.lookup(ctx, SettingSilver, t.Silver)
	t.Gold = s.lookup(ctx, SettingGold, t.Gold)
	t.Diamond = s.lookup(ctx, SettingDiamond, t.Diamond)
	return t
}

func (s *ThresholdSource) lookup(ctx context.Context, name string, fallback int) int {
	if s.settings == nil {
		return fallback
	}
	raw, err := s.settings.GetSetting(ctx, name)
	if err != nil {
		if !redis.IsMissing(err) && s.logg != nil {
			s.logg.Error(s.logg.WithField(ctx, "setting", name), "reading tier threshold", err)
		}
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "setting", name), "ignoring malformed tier threshold")
		}
		return fallback
	}
	return value
}
