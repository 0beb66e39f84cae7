package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Action is the entity-manager operation carried by a decoded transaction event.
type Action string

const (
	ActionCreate Action = "Create"
	ActionUpdate Action = "Update"
	ActionDelete Action = "Delete"
	ActionVerify Action = "Verify"
)

// EntityType identifies the kind of versioned entity an event targets.
type EntityType string

const (
	EntityTypeUser     EntityType = "User"
	EntityTypeTrack    EntityType = "Track"
	EntityTypePlaylist EntityType = "Playlist"
)

// Entity identifiers below these offsets belong to the legacy contract range
// and can never be created through the entity manager.
const (
	UserIDOffset     int32 = 3_000_000
	TrackIDOffset    int32 = 2_000_000
	PlaylistIDOffset int32 = 400_000
)

// Field length ceilings enforced by the entity validators.
const (
	UserBioCharLimit             = 256
	TrackDescriptionCharLimit    = 1000
	PlaylistDescriptionCharLimit = 1000
	HandleCharLimit              = 30
)

// DecodedEvent is one decoded on-chain entity-manager log entry. The upstream
// chain client produces these in receipt order; they are never persisted as-is.
type DecodedEvent struct {
	Action      Action          `json:"action"`
	EntityType  EntityType      `json:"entity_type"`
	EntityID    int32           `json:"entity_id"`
	UserID      int32           `json:"user_id"` // acting user
	Signer      string          `json:"signer"`  // recovered wallet address of the tx signer
	MetadataCID string          `json:"metadata_cid,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	TxHash      string          `json:"tx_hash"`
}

// Block is an ordered batch of decoded events processed atomically.
type Block struct {
	Number    int64          `json:"number"`
	Hash      string         `json:"hash"`
	Timestamp time.Time      `json:"timestamp"`
	Events    []DecodedEvent `json:"events"`
}

// NormalizeWallet canonicalizes a wallet address for comparison and storage.
// Hex addresses are checksummed-then-lowercased so that differently cased
// inputs compare equal; anything else is lowercased as-is.
func NormalizeWallet(address string) string {
	if common.IsHexAddress(address) {
		return strings.ToLower(common.HexToAddress(address).Hex())
	}
	return strings.ToLower(address)
}
