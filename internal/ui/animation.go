package ui

import (
	"strings"
	"time"
)

// AnimationType is the action an animation plays for.
type AnimationType int

const (
	AnimNone AnimationType = iota
	AnimFeed
	AnimWater
	AnimPlay
	AnimClean
	AnimSleep
	AnimTrain
	AnimBattle
)

// Animation is the animation currently on screen.
type Animation struct {
	Type      AnimationType
	Frame     int
	StartTime time.Time
}

// petMark is replaced by the species emoji when a frame is drawn.
const petMark = "@"

// AnimationFrames holds the frames of each animation.
var AnimationFrames = map[AnimationType][]string{
	AnimFeed: {
		"\n   🍖\n     \\\n      @\n",
		"\n\n   🍖→@\n\n",
		"\n\n     @\n   *nom*\n",
		"\n\n     @\n   *munch*\n",
	},
	AnimWater: {
		"\n   💧\n      @\n",
		"\n     💧\n      @\n",
		"\n      💧@\n",
		"\n       @\n    *slurp*\n",
	},
	AnimPlay: {
		"\n  🎾        @\n",
		"\n     🎾     @\n",
		"\n        🎾  @\n",
		"\n     🎾     @\n              *boing*\n",
		"\n  🎾        @\n              *catch!*\n",
	},
	AnimClean: {
		"\n  🧹   💩  @\n",
		"\n     🧹💩  @\n",
		"\n       🧹  @\n",
		"\n       ✨  @\n        *sparkly*\n",
	},
	AnimSleep: {
		"\n     @\n",
		"\n     @\n      z\n",
		"\n     😴\n     z\n      z\n",
		"\n     😴\n    z\n     z\n      z\n",
	},
	AnimTrain: {
		"\n   @  🏋️\n",
		"\n   @💪\n",
		"\n   @  🏋️\n   *hup!*\n",
		"\n   @💪\n   *hup!*\n",
	},
	AnimBattle: {
		"\n  @        ❓\n",
		"\n    @    ❗\n",
		"\n      @⚔️\n",
	},
}

// AnimationFrameDuration is how long each frame displays.
const AnimationFrameDuration = 200 * time.Millisecond

// GetAnimationFrame returns the current frame with petEmoji drawn in. Frames
// past the end hold on the last one.
func GetAnimationFrame(anim Animation, petEmoji string) string {
	frames := AnimationFrames[anim.Type]
	if len(frames) == 0 {
		return ""
	}
	frame := frames[min(anim.Frame, len(frames)-1)]
	return strings.ReplaceAll(frame, petMark, petEmoji)
}

// IsAnimationComplete returns true if the animation has finished
func IsAnimationComplete(anim Animation) bool {
	return anim.Frame >= len(AnimationFrames[anim.Type])
}

// AnimationTotalFrames returns the number of frames for an animation type
func AnimationTotalFrames(animType AnimationType) int {
	return len(AnimationFrames[animType])
}
