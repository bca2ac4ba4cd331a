package ytembed

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/tongbarn/tube/internal/app/playback"
)

// Settings is the player settings map decoded from config.
type Settings struct {
	DefaultDurationSec int  `yaml:"default_duration_sec" mapstructure:"default_duration_sec" default:"240"`
	Advance            bool `yaml:"advance" mapstructure:"advance"`
}

// NewFromSettings creates a player from a config type and settings map.
func NewFromSettings(playerType string, settings map[string]any) (playback.Player, error) {
	switch playerType {
	case "embed", "":
		var s Settings
		if err := mapstructure.Decode(settings, &s); err != nil {
			return nil, errors.Wrap(err, "failed to decode player settings")
		}
		if s.DefaultDurationSec <= 0 {
			s.DefaultDurationSec = 240
		}
		zlog.Debug().Int("default_duration_sec", s.DefaultDurationSec).Bool("advance", s.Advance).
			Msg("ytembed: creating embed player")
		return New(Config{
			DefaultDuration: time.Duration(s.DefaultDurationSec) * time.Second,
			Advance:         s.Advance,
		}), nil

	default:
		return nil, errors.Newf("unsupported player type: %s", playerType)
	}
}
