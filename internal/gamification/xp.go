package gamification

import "math"

// XPPerLevel is the fixed level bucket size. Level boundaries sit at
// multiples of 500 points.
const XPPerLevel = 500

// Fixed XP rewards per engagement trigger. Quiz XP scales between the
// base and the perfect-score cap, see QuizXP.
const (
	XPRewardDailyLogin    = 10
	XPRewardUpload        = 50
	XPRewardQuizBase      = 50
	XPRewardQuizPerfect   = 150
	XPRewardStoryChapter  = 40
	XPRewardAudioComplete = 30
)

// CalculateLevel returns the level for a cumulative point total.
// Level 1 covers 0-499, level 2 covers 500-999, and so on.
func CalculateLevel(points int64) int {
	return int(points/XPPerLevel) + 1
}

// CalculateLevelProgress returns progress through the current level as a
// percentage in [0, 100).
func CalculateLevelProgress(points int64) float64 {
	return float64(points%XPPerLevel) / XPPerLevel * 100
}

// CalculateXPToNextLevel returns the points remaining until the next
// level boundary. Never negative.
func CalculateXPToNextLevel(points int64) int64 {
	next := int64(CalculateLevel(points)) * XPPerLevel
	if next < points {
		return 0
	}
	return next - points
}

// QuizXP returns the reward for a quiz completed with the given score
// percentage, scaled linearly from the base at 0 to the perfect cap at
// 100. Scores outside [0, 100] are clamped.
func QuizXP(score int) int {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(XPRewardQuizBase + float64(score)/100*(XPRewardQuizPerfect-XPRewardQuizBase)))
}
