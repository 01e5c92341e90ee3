package game

import "time"

type Sound string

const (
	SoundBlip       Sound = "blip"
	SoundPaddleBlip Sound = "paddle-blip"
	SoundBreak      Sound = "bamboo-break"
	SoundWon        Sound = "game-won"
	SoundLost       Sound = "game-over"
)

type Effect string

const EffectBrokenPlatform Effect = "broken-platform"

// BreakEffectLifetime is how long a block's destruction effect stays in the scene.
const BreakEffectLifetime = time.Second

type Transition struct {
	Name     string
	Duration time.Duration
}

var FlipVertical = Transition{Name: "flip-vertical", Duration: 500 * time.Millisecond}

// Effects receives the fire-and-forget commands a game issues to its host.
type Effects interface {
	PlaySound(s Sound)
	SpawnEffect(e Effect, at Vec, lifetime time.Duration)
	PresentScene(t Transition)
}

type NopEffects struct{}

func (NopEffects) PlaySound(Sound)                        {}
func (NopEffects) SpawnEffect(Effect, Vec, time.Duration) {}
func (NopEffects) PresentScene(Transition)                {}
