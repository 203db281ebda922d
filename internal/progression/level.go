package progression

import "github.com/striderquest/StriderQuest_Go/internal/config"

// Threshold returns the cumulative XP required to reach a level from zero,
// using the curve threshold(L) = L*L*XPCurveBase. Level is always a pure
// function of experience through this curve.
func Threshold(level int) int {
	if level <= 0 {
		return 0
	}
	return level * level * config.XPCurveBase
}

// LevelForExperience computes the level a given cumulative XP amount sits at
func LevelForExperience(xp int) int {
	level := 1
	for xp >= Threshold(level+1) {
		level++
	}
	return level
}
