package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/openaudio/discovery-indexer/internal/domain"
)

// Playlist represents one version of a playlist or album, versioned the same
// way as tracks.
type Playlist struct {
	RowID      int64 `gorm:"column:row_id;primaryKey;autoIncrement"`
	PlaylistID int32 `gorm:"column:playlist_id;not null;index:idx_playlists_playlist_id_current,priority:1"`
	IsCurrent  bool  `gorm:"column:is_current;not null;index:idx_playlists_playlist_id_current,priority:2"`
	IsDelete   bool  `gorm:"column:is_delete;not null;default:false"`

	OwnerID     int32  `gorm:"column:playlist_owner_id;not null;index"`
	Name        string `gorm:"column:playlist_name;type:text"`
	Description string `gorm:"column:description;type:text"`
	IsAlbum     bool   `gorm:"column:is_album;not null;default:false"`
	IsPrivate   bool   `gorm:"column:is_private;not null;default:false"`
	// Contents is the ordered track listing document
	Contents      datatypes.JSON `gorm:"column:playlist_contents;type:text"`
	CoverArtSizes string         `gorm:"column:cover_art_sizes;type:text"`
	MetadataCID   string         `gorm:"column:metadata_cid;type:text"`

	BlockNumber int64     `gorm:"column:block_number;not null"`
	BlockHash   string    `gorm:"column:block_hash;not null;type:text"`
	TxHash      string    `gorm:"column:tx_hash;not null;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (p Playlist) RevisionEntityID() int32 {
	return p.PlaylistID
}

func (Playlist) RevisionKind() domain.EntityType {
	return domain.EntityTypePlaylist
}

func (p Playlist) CloneAsNewVersion(blockNumber int64, blockHash, txHash string) Playlist {
	next := p
	next.RowID = 0
	next.IsCurrent = true
	next.BlockNumber = blockNumber
	next.BlockHash = blockHash
	next.TxHash = txHash
	next.CreatedAt = time.Time{}
	next.UpdatedAt = time.Time{}
	return next
}
