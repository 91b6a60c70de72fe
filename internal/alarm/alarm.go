// Package alarm sounds tones when gauges enter their warning or critical
// bands.
package alarm

import (
	"sync"
	"time"

	"codeberg.org/mutker/gaugectl/internal/errors"
	"codeberg.org/mutker/gaugectl/internal/logger"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	ErrSpeakerInit = errors.ErrorCode("alarm_speaker_init_failed")
	ErrTone        = errors.ErrorCode("alarm_tone_failed")
)

const sampleRate = beep.SampleRate(44100)

// Player emits a tone.
type Player interface {
	Play(frequency float64, d time.Duration) error
}

// Speaker plays sine tones on the default audio device. The device is
// opened on first use.
type Speaker struct {
	once sync.Once
	err  error
}

func (s *Speaker) Play(frequency float64, d time.Duration) error {
	s.once.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			s.err = errors.New().Wrap(ErrSpeakerInit, err)
		}
	})
	if s.err != nil {
		return s.err
	}
	sine, err := generators.SineTone(sampleRate, frequency)
	if err != nil {
		return errors.New().Wrap(ErrTone, err).WithData(frequency)
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
	return nil
}

// Config tunes the alarm.
type Config struct {
	Enabled   bool
	Frequency float64
	Duration  time.Duration
	// Cooldown is the minimum gap between tones for one gauge.
	Cooldown time.Duration
}

// Alarm rate-limits tones per gauge.
type Alarm struct {
	cfg    Config
	player Player
	log    logger.Logger
	now    func() time.Time

	mu   sync.Mutex
	last map[string]time.Time
}

func New(cfg Config, player Player, log logger.Logger) *Alarm {
	if cfg.Frequency <= 0 {
		cfg.Frequency = 880
	}
	if cfg.Duration <= 0 {
		cfg.Duration = 200 * time.Millisecond
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Alarm{
		cfg:    cfg,
		player: player,
		log:    log,
		now:    time.Now,
		last:   make(map[string]time.Time),
	}
}

// Critical sounds the full tone for gauge id.
func (a *Alarm) Critical(id string, value float64) {
	a.sound(id, value, a.cfg.Frequency, "critical")
}

// Warning sounds a tone an octave below the critical one.
func (a *Alarm) Warning(id string, value float64) {
	a.sound(id, value, a.cfg.Frequency/2, "warning")
}

func (a *Alarm) sound(id string, value, frequency float64, kind string) {
	if a == nil || !a.cfg.Enabled || a.player == nil {
		return
	}

	a.mu.Lock()
	now := a.now()
	if last, ok := a.last[id]; ok && now.Sub(last) < a.cfg.Cooldown {
		a.mu.Unlock()
		return
	}
	a.last[id] = now
	a.mu.Unlock()

	a.log.Info().Str("gauge", id).Str("kind", kind).Float64("value", value).Msg("Threshold alarm")
	if err := a.player.Play(frequency, a.cfg.Duration); err != nil {
		a.log.Warn().Err(err).Msg("Failed to play alarm tone")
	}
}
