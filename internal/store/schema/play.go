package schema

import "time"

// Play records a single track listen. Plays are written by a separate
// ingestion path; the challenge pipeline only consumes the timestamps carried
// on listen events, so this table exists for reporting and backfill.
type Play struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     int32     `gorm:"column:user_id;index"`
	PlayItemID int32     `gorm:"column:play_item_id;not null;index"`
	PlayedAt   time.Time `gorm:"column:played_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Play) TableName() string {
	return "plays"
}
