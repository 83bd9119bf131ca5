package models

import "time"

type AchievementCode string

const (
	AchFirstCheckin AchievementCode = "first_checkin"
	AchCheckins10   AchievementCode = "checkins_10"
	AchCheckins50   AchievementCode = "checkins_50"
	AchCheckins100  AchievementCode = "checkins_100"
	AchFirstPost    AchievementCode = "first_post"
	AchStreak7      AchievementCode = "streak_7"
)

type AchievementProgress struct {
	ID         int64           `db:"id"`
	StudentID  int64           `db:"student_id"`
	Code       AchievementCode `db:"code"`
	Progress   int             `db:"progress"`
	Target     int             `db:"target"`
	UnlockedAt *time.Time      `db:"unlocked_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
