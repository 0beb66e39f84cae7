package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/openaudio/discovery-indexer/internal/domain"
)

// Track represents one version of a track. Versioning works the same way as
// users: append-only rows with a single is_current = true version per
// track_id. Deletes keep the row and set is_delete instead of removing it.
type Track struct {
	RowID     int64 `gorm:"column:row_id;primaryKey;autoIncrement"`
	TrackID   int32 `gorm:"column:track_id;not null;index:idx_tracks_track_id_current,priority:1"`
	IsCurrent bool  `gorm:"column:is_current;not null;index:idx_tracks_track_id_current,priority:2"`
	IsDelete  bool  `gorm:"column:is_delete;not null;default:false"`

	// OwnerID is the user that owns the track; immutable after create
	OwnerID     int32  `gorm:"column:owner_id;not null;index"`
	Title       string `gorm:"column:title;type:text"`
	Genre       string `gorm:"column:genre;type:text"`
	Mood        string `gorm:"column:mood;type:text"`
	Tags        string `gorm:"column:tags;type:text"`
	Description string `gorm:"column:description;type:text"`
	Duration    int32  `gorm:"column:duration;not null;default:0"`
	// IsUnlisted can only move from false to true at create time; a listed
	// track never becomes unlisted through an update
	IsUnlisted    bool   `gorm:"column:is_unlisted;not null;default:false"`
	TrackCID      string `gorm:"column:track_cid;type:text"`
	CoverArtSizes string `gorm:"column:cover_art_sizes;type:text"`
	ReleaseDate   string `gorm:"column:release_date;type:text"`

	// RemixOf and StemOf hold the parent-track linkage documents; cleared on
	// delete so a deleted track stops appearing in remix and stem lineages
	RemixOf          datatypes.JSON `gorm:"column:remix_of;type:text"`
	StemOf           datatypes.JSON `gorm:"column:stem_of;type:text"`
	StreamConditions datatypes.JSON `gorm:"column:stream_conditions;type:text"`

	MetadataCID string `gorm:"column:metadata_cid;type:text"`

	BlockNumber int64     `gorm:"column:block_number;not null"`
	BlockHash   string    `gorm:"column:block_hash;not null;type:text"`
	TxHash      string    `gorm:"column:tx_hash;not null;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Track) TableName() string {
	return "tracks"
}

func (t Track) RevisionEntityID() int32 {
	return t.TrackID
}

func (Track) RevisionKind() domain.EntityType {
	return domain.EntityTypeTrack
}

func (t Track) CloneAsNewVersion(blockNumber int64, blockHash, txHash string) Track {
	next := t
	next.RowID = 0
	next.IsCurrent = true
	next.BlockNumber = blockNumber
	next.BlockHash = blockHash
	next.TxHash = txHash
	next.CreatedAt = time.Time{}
	next.UpdatedAt = time.Time{}
	return next
}
