package indexer

import (
	"encoding/json"

	"github.com/openaudio/discovery-indexer/internal/challenges"
	"github.com/openaudio/discovery-indexer/internal/domain"
	"github.com/openaudio/discovery-indexer/internal/store"
	"github.com/openaudio/discovery-indexer/internal/store/schema"
)

// Snapshot is the block-scoped view of current rows, loaded once before the
// first event is applied.
type Snapshot struct {
	Users     map[int32]*schema.User
	Tracks    map[int32]*schema.Track
	Playlists map[int32]*schema.Playlist
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		Users:     make(map[int32]*schema.User),
		Tracks:    make(map[int32]*schema.Track),
		Playlists: make(map[int32]*schema.Playlist),
	}
}

type pendingKey struct {
	kind domain.EntityType
	id   int32
}

// PendingDelta accumulates the revisions produced so far within one block.
// Only the latest revision per entity is kept; it is both what later events in
// the block validate against and what ultimately gets committed.
type PendingDelta struct {
	users     map[int32]schema.User
	tracks    map[int32]schema.Track
	playlists map[int32]schema.Playlist
	order     []pendingKey
}

func newPendingDelta() *PendingDelta {
	return &PendingDelta{
		users:     make(map[int32]schema.User),
		tracks:    make(map[int32]schema.Track),
		playlists: make(map[int32]schema.Playlist),
	}
}

func (d *PendingDelta) touch(kind domain.EntityType, id int32) {
	for _, k := range d.order {
		if k.kind == kind && k.id == id {
			return
		}
	}
	d.order = append(d.order, pendingKey{kind: kind, id: id})
}

// StageUser records a user revision, replacing any earlier one this block.
func (d *PendingDelta) StageUser(u schema.User) {
	d.touch(domain.EntityTypeUser, u.UserID)
	d.users[u.UserID] = u
}

// StageTrack records a track revision, replacing any earlier one this block.
func (d *PendingDelta) StageTrack(t schema.Track) {
	d.touch(domain.EntityTypeTrack, t.TrackID)
	d.tracks[t.TrackID] = t
}

// StagePlaylist records a playlist revision, replacing any earlier one this block.
func (d *PendingDelta) StagePlaylist(p schema.Playlist) {
	d.touch(domain.EntityTypePlaylist, p.PlaylistID)
	d.playlists[p.PlaylistID] = p
}

// Revisions returns the folded revisions in first-touch order.
func (d *PendingDelta) Revisions() []schema.Revision {
	revisions := make([]schema.Revision, 0, len(d.order))
	for _, k := range d.order {
		switch k.kind {
		case domain.EntityTypeUser:
			revisions = append(revisions, d.users[k.id])
		case domain.EntityTypeTrack:
			revisions = append(revisions, d.tracks[k.id])
		case domain.EntityTypePlaylist:
			revisions = append(revisions, d.playlists[k.id])
		}
	}
	return revisions
}

// Params is the per-event processing context. It bundles the decoded event
// with the block being indexed, the storage handle, the challenge bus, and
// the block-scoped snapshot and pending delta. Owned by one block run.
type Params struct {
	Event *domain.DecodedEvent
	Block *domain.Block
	Store store.Store
	Bus   *challenges.Bus

	Existing *Snapshot
	Pending  *PendingDelta

	// Fields is the parsed metadata payload, nil when the event carried none
	Fields map[string]json.RawMessage

	// VerifierWallet may sign Verify events
	VerifierWallet string
}

// EffectiveUser resolves the current view of a user: the pending revision if
// one was produced earlier this block, else the pre-block snapshot row.
func (p *Params) EffectiveUser(userID int32) (schema.User, bool) {
	if u, ok := p.Pending.users[userID]; ok {
		return u, true
	}
	if u, ok := p.Existing.Users[userID]; ok && u != nil {
		return *u, true
	}
	return schema.User{}, false
}

// EffectiveTrack resolves the current view of a track.
func (p *Params) EffectiveTrack(trackID int32) (schema.Track, bool) {
	if t, ok := p.Pending.tracks[trackID]; ok {
		return t, true
	}
	if t, ok := p.Existing.Tracks[trackID]; ok && t != nil {
		return *t, true
	}
	return schema.Track{}, false
}

// EffectivePlaylist resolves the current view of a playlist.
func (p *Params) EffectivePlaylist(playlistID int32) (schema.Playlist, bool) {
	if pl, ok := p.Pending.playlists[playlistID]; ok {
		return pl, true
	}
	if pl, ok := p.Existing.Playlists[playlistID]; ok && pl != nil {
		return *pl, true
	}
	return schema.Playlist{}, false
}

// PendingWalletOwner returns the user ID of a pending user holding the
// wallet, if any. Needed so two creates in one block cannot share a wallet.
func (p *Params) PendingWalletOwner(wallet string) (int32, bool) {
	for id, u := range p.Pending.users {
		if u.Wallet == wallet {
			return id, true
		}
	}
	return 0, false
}

// PendingHandleTaken reports whether a pending user already claimed the
// lowercased handle this block.
func (p *Params) PendingHandleTaken(handleLC string) bool {
	for _, u := range p.Pending.users {
		if u.HandleLC == handleLC {
			return true
		}
	}
	return false
}
