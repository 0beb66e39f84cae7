package schema

import "time"

// DeveloperApp is a registered third-party application identified by its
// signing address. Events signed by an app address act on behalf of users that
// granted it access.
type DeveloperApp struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Address is the app's normalized signing address
	Address     string    `gorm:"column:address;not null;uniqueIndex;type:text"`
	UserID      int32     `gorm:"column:user_id;not null"`
	Name        string    `gorm:"column:name;type:text"`
	Description string    `gorm:"column:description;type:text"`
	IsDelete    bool      `gorm:"column:is_delete;not null;default:false"`
	BlockNumber int64     `gorm:"column:block_number;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (DeveloperApp) TableName() string {
	return "developer_apps"
}

// Grant authorizes a grantee address to sign entity events on behalf of a
// user. Only approved, unrevoked grants satisfy the signer check.
type Grant struct {
	ID     int64 `gorm:"column:id;primaryKey;autoIncrement"`
	UserID int32 `gorm:"column:user_id;not null;index:idx_grants_user_grantee,priority:1"`
	// GranteeAddress is the normalized address allowed to sign for UserID
	GranteeAddress string    `gorm:"column:grantee_address;not null;type:text;index:idx_grants_user_grantee,priority:2"`
	IsApproved     bool      `gorm:"column:is_approved;not null;default:false"`
	IsRevoked      bool      `gorm:"column:is_revoked;not null;default:false"`
	BlockNumber    int64     `gorm:"column:block_number;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Grant) TableName() string {
	return "grants"
}
