package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openaudio/discovery-indexer/internal/domain"
	"github.com/openaudio/discovery-indexer/internal/store/schema"
)

const blockCursorKey = "block_cursor"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// AutoMigrate creates or updates all indexer tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.User{},
		&schema.Track{},
		&schema.Playlist{},
		&schema.DeveloperApp{},
		&schema.Grant{},
		&schema.Play{},
		&schema.UserChallenge{},
		&schema.KeyValueStore{},
	)
}

// CurrentUsers retrieves the current version of each requested user, keyed by user ID
func (s *pgStore) CurrentUsers(ctx context.Context, userIDs []int32) (map[int32]*schema.User, error) {
	result := make(map[int32]*schema.User)
	if len(userIDs) == 0 {
		return result, nil
	}

	var users []schema.User
	err := s.db.WithContext(ctx).
		Where("user_id IN ? AND is_current = ?", userIDs, true).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get current users: %w", err)
	}

	for i := range users {
		result[users[i].UserID] = &users[i]
	}
	return result, nil
}

// CurrentTracks retrieves the current version of each requested track, keyed by track ID
func (s *pgStore) CurrentTracks(ctx context.Context, trackIDs []int32) (map[int32]*schema.Track, error) {
	result := make(map[int32]*schema.Track)
	if len(trackIDs) == 0 {
		return result, nil
	}

	var tracks []schema.Track
	err := s.db.WithContext(ctx).
		Where("track_id IN ? AND is_current = ?", trackIDs, true).
		Find(&tracks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get current tracks: %w", err)
	}

	for i := range tracks {
		result[tracks[i].TrackID] = &tracks[i]
	}
	return result, nil
}

// CurrentPlaylists retrieves the current version of each requested playlist, keyed by playlist ID
func (s *pgStore) CurrentPlaylists(ctx context.Context, playlistIDs []int32) (map[int32]*schema.Playlist, error) {
	result := make(map[int32]*schema.Playlist)
	if len(playlistIDs) == 0 {
		return result, nil
	}

	var playlists []schema.Playlist
	err := s.db.WithContext(ctx).
		Where("playlist_id IN ? AND is_current = ?", playlistIDs, true).
		Find(&playlists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get current playlists: %w", err)
	}

	for i := range playlists {
		result[playlists[i].PlaylistID] = &playlists[i]
	}
	return result, nil
}

// UserByWallet retrieves the current user owning the given normalized wallet
func (s *pgStore) UserByWallet(ctx context.Context, wallet string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).
		Where("wallet = ? AND is_current = ?", wallet, true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by wallet: %w", err)
	}
	return &user, nil
}

// HandleTaken checks whether any current user already holds the lowercased handle
func (s *pgStore) HandleTaken(ctx context.Context, handleLC string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("handle_lc = ? AND is_current = ?", handleLC, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check handle: %w", err)
	}
	return count > 0, nil
}

// DeveloperAppByAddress retrieves an undeleted developer app by its signing address
func (s *pgStore) DeveloperAppByAddress(ctx context.Context, address string) (*schema.DeveloperApp, error) {
	var app schema.DeveloperApp
	err := s.db.WithContext(ctx).
		Where("address = ? AND is_delete = ?", address, false).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get developer app: %w", err)
	}
	return &app, nil
}

// ActiveGrant retrieves an approved, unrevoked grant from userID to granteeAddress
func (s *pgStore) ActiveGrant(ctx context.Context, userID int32, granteeAddress string) (*schema.Grant, error) {
	var grant schema.Grant
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND grantee_address = ? AND is_approved = ? AND is_revoked = ?",
			userID, granteeAddress, true, false).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}
	return &grant, nil
}

// CommitBlock persists a block's folded revisions and advances the block
// cursor in a single transaction. For each revision the previous current row
// of the same entity is demoted before the new version is inserted, so the
// single-current invariant holds at commit.
func (s *pgStore) CommitBlock(ctx context.Context, block *domain.Block, revisions []schema.Revision) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rev := range revisions {
			switch row := rev.(type) {
			case schema.User:
				err := tx.Model(&schema.User{}).
					Where("user_id = ? AND is_current = ?", row.UserID, true).
					Update("is_current", false).Error
				if err != nil {
					return fmt.Errorf("failed to demote user %d: %w", row.UserID, err)
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to insert user %d: %w", row.UserID, err)
				}
			case schema.Track:
				err := tx.Model(&schema.Track{}).
					Where("track_id = ? AND is_current = ?", row.TrackID, true).
					Update("is_current", false).Error
				if err != nil {
					return fmt.Errorf("failed to demote track %d: %w", row.TrackID, err)
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to insert track %d: %w", row.TrackID, err)
				}
			case schema.Playlist:
				err := tx.Model(&schema.Playlist{}).
					Where("playlist_id = ? AND is_current = ?", row.PlaylistID, true).
					Update("is_current", false).Error
				if err != nil {
					return fmt.Errorf("failed to demote playlist %d: %w", row.PlaylistID, err)
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to insert playlist %d: %w", row.PlaylistID, err)
				}
			default:
				return fmt.Errorf("unsupported revision kind %q", rev.RevisionKind())
			}
		}

		kv := schema.KeyValueStore{
			Key:   blockCursorKey,
			Value: strconv.FormatInt(block.Number, 10),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&kv).Error
		if err != nil {
			return fmt.Errorf("failed to advance block cursor: %w", err)
		}

		return nil
	})
}

// GetBlockCursor retrieves the last committed block number, -1 if none
func (s *pgStore) GetBlockCursor(ctx context.Context) (int64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", blockCursorKey).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return -1, nil
		}
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}

	blockNumber, err := strconv.ParseInt(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}
	return blockNumber, nil
}

// SetBlockCursor stores the last committed block number
func (s *pgStore) SetBlockCursor(ctx context.Context, blockNumber int64) error {
	kv := schema.KeyValueStore{
		Key:   blockCursorKey,
		Value: strconv.FormatInt(blockNumber, 10),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set block cursor: %w", err)
	}
	return nil
}

// TryAdvisoryLock attempts to take the session-scoped writer lock without
// blocking. Requires PostgreSQL.
func (s *pgStore) TryAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	var acquired bool
	err := s.db.WithContext(ctx).Raw("SELECT pg_try_advisory_lock(?)", key).Scan(&acquired).Error
	if err != nil {
		return false, fmt.Errorf("failed to acquire advisory lock: %w", err)
	}
	return acquired, nil
}

// ReleaseAdvisoryLock releases the writer lock taken by TryAdvisoryLock
func (s *pgStore) ReleaseAdvisoryLock(ctx context.Context, key int64) error {
	err := s.db.WithContext(ctx).Exec("SELECT pg_advisory_unlock(?)", key).Error
	if err != nil {
		return fmt.Errorf("failed to release advisory lock: %w", err)
	}
	return nil
}

// UserChallenges retrieves all of a user's rows for a challenge, oldest first
func (s *pgStore) UserChallenges(ctx context.Context, challengeID string, userID int32) ([]schema.UserChallenge, error) {
	var rows []schema.UserChallenge
	err := s.db.WithContext(ctx).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user challenges: %w", err)
	}
	return rows, nil
}

// LatestUserChallenge retrieves the most recently created row for a challenge and user
func (s *pgStore) LatestUserChallenge(ctx context.Context, challengeID string, userID int32) (*schema.UserChallenge, error) {
	var row schema.UserChallenge
	err := s.db.WithContext(ctx).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest user challenge: %w", err)
	}
	return &row, nil
}

// UserChallengeBySpecifier retrieves a row by its full key
func (s *pgStore) UserChallengeBySpecifier(ctx context.Context, challengeID string, userID int32, specifier string) (*schema.UserChallenge, error) {
	var row schema.UserChallenge
	err := s.db.WithContext(ctx).
		Where("challenge_id = ? AND user_id = ? AND specifier = ?", challengeID, userID, specifier).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user challenge: %w", err)
	}
	return &row, nil
}

// SaveUserChallenge inserts or updates a challenge row keyed by
// (challenge_id, user_id, specifier)
func (s *pgStore) SaveUserChallenge(ctx context.Context, uc *schema.UserChallenge) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "challenge_id"}, {Name: "user_id"}, {Name: "specifier"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"current_step_count", "is_complete", "last_play_date",
			"completed_block_number", "completed_at", "updated_at",
		}),
	}).Create(uc).Error
	if err != nil {
		return fmt.Errorf("failed to save user challenge: %w", err)
	}
	return nil
}
