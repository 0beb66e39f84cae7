package schema

import "time"

// UserChallenge tracks one user's progress through one challenge cycle. The
// (challenge_id, user_id, specifier) triple is unique: specifiers partition a
// user's progress into cycles, so endless challenges accumulate one row per
// completed or in-flight cycle.
type UserChallenge struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	ChallengeID string `gorm:"column:challenge_id;not null;type:text;uniqueIndex:idx_user_challenges_key,priority:1"`
	UserID      int32  `gorm:"column:user_id;not null;uniqueIndex:idx_user_challenges_key,priority:2;index"`
	Specifier   string `gorm:"column:specifier;not null;type:text;uniqueIndex:idx_user_challenges_key,priority:3"`

	CurrentStepCount int32 `gorm:"column:current_step_count;not null;default:0"`
	IsComplete       bool  `gorm:"column:is_complete;not null;default:false"`
	// Amount is the reward in whole tokens, fixed when the row is created
	Amount int32 `gorm:"column:amount;not null;default:0"`

	// LastPlayDate is the UTC day of the most recent qualifying listen, only
	// set for listen-streak rows
	LastPlayDate *time.Time `gorm:"column:last_play_date"`

	CompletedBlockNumber *int64     `gorm:"column:completed_block_number"`
	CompletedAt          *time.Time `gorm:"column:completed_at"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserChallenge) TableName() string {
	return "user_challenges"
}
