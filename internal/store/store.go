package store

import (
	"context"

	"github.com/openaudio/discovery-indexer/internal/domain"
	"github.com/openaudio/discovery-indexer/internal/store/schema"
)

// Store defines the interface for database operations
type Store interface {
	// CurrentUsers retrieves the current version of each requested user, keyed by user ID
	CurrentUsers(ctx context.Context, userIDs []int32) (map[int32]*schema.User, error)
	// CurrentTracks retrieves the current version of each requested track, keyed by track ID
	CurrentTracks(ctx context.Context, trackIDs []int32) (map[int32]*schema.Track, error)
	// CurrentPlaylists retrieves the current version of each requested playlist, keyed by playlist ID
	CurrentPlaylists(ctx context.Context, playlistIDs []int32) (map[int32]*schema.Playlist, error)
	// UserByWallet retrieves the current user owning the given normalized wallet, nil if none
	UserByWallet(ctx context.Context, wallet string) (*schema.User, error)
	// HandleTaken checks whether any current user already holds the lowercased handle
	HandleTaken(ctx context.Context, handleLC string) (bool, error)
	// DeveloperAppByAddress retrieves an undeleted developer app by its signing address, nil if none
	DeveloperAppByAddress(ctx context.Context, address string) (*schema.DeveloperApp, error)
	// ActiveGrant retrieves an approved, unrevoked grant from userID to granteeAddress, nil if none
	ActiveGrant(ctx context.Context, userID int32, granteeAddress string) (*schema.Grant, error)
	// CommitBlock persists a block's folded revisions and advances the block
	// cursor in a single transaction
	CommitBlock(ctx context.Context, block *domain.Block, revisions []schema.Revision) error

	// GetBlockCursor retrieves the last committed block number, -1 if none
	GetBlockCursor(ctx context.Context) (int64, error)
	// SetBlockCursor stores the last committed block number
	SetBlockCursor(ctx context.Context, blockNumber int64) error

	// TryAdvisoryLock attempts to take the session-scoped writer lock without blocking
	TryAdvisoryLock(ctx context.Context, key int64) (bool, error)
	// ReleaseAdvisoryLock releases the writer lock taken by TryAdvisoryLock
	ReleaseAdvisoryLock(ctx context.Context, key int64) error

	// UserChallenges retrieves all of a user's rows for a challenge, oldest first
	UserChallenges(ctx context.Context, challengeID string, userID int32) ([]schema.UserChallenge, error)
	// LatestUserChallenge retrieves the most recently created row for a challenge and user, nil if none
	LatestUserChallenge(ctx context.Context, challengeID string, userID int32) (*schema.UserChallenge, error)
	// UserChallengeBySpecifier retrieves a row by its full key, nil if none
	UserChallengeBySpecifier(ctx context.Context, challengeID string, userID int32, specifier string) (*schema.UserChallenge, error)
	// SaveUserChallenge inserts or updates a challenge row keyed by
	// (challenge_id, user_id, specifier)
	SaveUserChallenge(ctx context.Context, uc *schema.UserChallenge) error
}
