package schema

import (
	"time"

	"github.com/openaudio/discovery-indexer/internal/domain"
)

// User represents one version of a user profile. The table is append-only:
// every mutation inserts a fresh row and flips is_current on the previous one,
// so at most a single row per user_id carries is_current = true.
type User struct {
	// RowID is the internal database primary key, unique per version
	RowID int64 `gorm:"column:row_id;primaryKey;autoIncrement"`
	// UserID is the application-level user identifier, shared by all versions
	UserID int32 `gorm:"column:user_id;not null;index:idx_users_user_id_current,priority:1"`
	// IsCurrent marks the version visible to readers
	IsCurrent bool `gorm:"column:is_current;not null;index:idx_users_user_id_current,priority:2"`

	Handle   string `gorm:"column:handle;type:text"`
	HandleLC string `gorm:"column:handle_lc;type:text;index"`
	// Wallet is the normalized owner address; immutable after create
	Wallet              string `gorm:"column:wallet;type:text;index"`
	Name                string `gorm:"column:name;type:text"`
	Bio                 string `gorm:"column:bio;type:text"`
	Location            string `gorm:"column:location;type:text"`
	ProfilePictureSizes string `gorm:"column:profile_picture_sizes;type:text"`
	CoverPhotoSizes     string `gorm:"column:cover_photo_sizes;type:text"`
	ArtistPickTrackID   *int32 `gorm:"column:artist_pick_track_id"`
	IsDeactivated       bool   `gorm:"column:is_deactivated;not null;default:false"`
	MetadataCID         string `gorm:"column:metadata_cid;type:text"`

	// IsVerified is sticky: once set through any platform it never reverts
	IsVerified            bool   `gorm:"column:is_verified;not null;default:false"`
	TwitterHandle         string `gorm:"column:twitter_handle;type:text"`
	InstagramHandle       string `gorm:"column:instagram_handle;type:text"`
	TikTokHandle          string `gorm:"column:tiktok_handle;type:text"`
	VerifiedWithTwitter   bool   `gorm:"column:verified_with_twitter;not null;default:false"`
	VerifiedWithInstagram bool   `gorm:"column:verified_with_instagram;not null;default:false"`
	VerifiedWithTikTok    bool   `gorm:"column:verified_with_tiktok;not null;default:false"`

	BlockNumber int64     `gorm:"column:block_number;not null"`
	BlockHash   string    `gorm:"column:block_hash;not null;type:text"`
	TxHash      string    `gorm:"column:tx_hash;not null;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u User) RevisionEntityID() int32 {
	return u.UserID
}

func (User) RevisionKind() domain.EntityType {
	return domain.EntityTypeUser
}

// CloneAsNewVersion copies the row into a fresh current version stamped with
// the given block provenance. The copy has a zero RowID so the insert assigns
// a new key.
func (u User) CloneAsNewVersion(blockNumber int64, blockHash, txHash string) User {
	next := u
	next.RowID = 0
	next.IsCurrent = true
	next.BlockNumber = blockNumber
	next.BlockHash = blockHash
	next.TxHash = txHash
	next.CreatedAt = time.Time{}
	next.UpdatedAt = time.Time{}
	return next
}
