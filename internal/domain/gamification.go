package domain

import "time"

// PointsPerLevel is the width of each level band: level L covers
// [L*PointsPerLevel, (L+1)*PointsPerLevel).
const PointsPerLevel = 100

// Streak thresholds for achievements.
const (
	StreakThreeDays  = 3
	StreakFireMaster = 30
)

// LevelProgress describes where a point total sits inside its level band.
type LevelProgress struct {
	Level              int     `json:"level"`
	CurrentLevelPoints int     `json:"currentLevelPoints"`
	NextLevelPoints    int     `json:"nextLevelPoints"`
	PointsToNextLevel  int     `json:"pointsToNextLevel"`
	Percent            float64 `json:"percent"`
}

// ComputeLevel maps a point total onto its level band.
func ComputeLevel(totalPoints int) LevelProgress {
	if totalPoints < 0 {
		totalPoints = 0
	}
	level := totalPoints / PointsPerLevel
	current := level * PointsPerLevel
	next := (level + 1) * PointsPerLevel
	return LevelProgress{
		Level:              level,
		CurrentLevelPoints: current,
		NextLevelPoints:    next,
		PointsToNextLevel:  next - totalPoints,
		Percent:            float64(totalPoints-current) / float64(next-current) * 100,
	}
}

// Achievement is a cosmetic badge.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"` // trophy, flame, award
	Unlocked    bool   `json:"unlocked"`
}

// PlayerStats backs the student's gamification card.
type PlayerStats struct {
	TotalPoints       int           `json:"totalPoints"`
	WorkoutsCompleted int           `json:"workoutsCompleted"`
	Streak            int           `json:"streak"`
	Level             LevelProgress `json:"level"`
	Achievements      []Achievement `json:"achievements"`
}

// FireMaster reports the 30-day streak badge. It has no behavioral effect.
func (s PlayerStats) FireMaster() bool {
	return s.Streak >= StreakFireMaster
}

// BuildStats folds a student's completions into the gamification card.
func BuildStats(completions []Completion, now time.Time) PlayerStats {
	total := 0
	days := make([]time.Time, 0, len(completions))
	for _, c := range completions {
		total += c.Points
		days = append(days, c.CompletedAt)
	}
	streak := Streak(days, now)

	return PlayerStats{
		TotalPoints:       total,
		WorkoutsCompleted: len(completions),
		Streak:            streak,
		Level:             ComputeLevel(total),
		Achievements: []Achievement{
			{ID: "first-workout", Title: "First Workout", Description: "Completed your first workout!", Icon: "trophy", Unlocked: len(completions) > 0},
			{ID: "three-day-streak", Title: "3-Day Streak", Description: "Trained on 3 consecutive days", Icon: "flame", Unlocked: streak >= StreakThreeDays},
			{ID: "fire-master", Title: "Fire Master", Description: "Trained on 30 consecutive days", Icon: "flame", Unlocked: streak >= StreakFireMaster},
		},
	}
}

// Streak counts consecutive UTC days with activity, ending today or, when
// nothing happened yet today, yesterday.
func Streak(activity []time.Time, now time.Time) int {
	seen := make(map[time.Time]bool, len(activity))
	for _, t := range activity {
		seen[dayOf(t)] = true
	}
	day := dayOf(now)
	if !seen[day] {
		day = day.AddDate(0, 0, -1)
	}
	n := 0
	for seen[day] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
