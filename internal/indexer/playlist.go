package indexer

import (
	"context"

	"github.com/openaudio/discovery-indexer/internal/domain"
	"github.com/openaudio/discovery-indexer/internal/store/schema"
)

func createPlaylist(ctx context.Context, p *Params) error {
	playlistID := p.Event.EntityID
	if playlistID < domain.PlaylistIDOffset {
		return domain.Validationf("playlist id %d below reserved offset", playlistID)
	}
	if _, exists := p.EffectivePlaylist(playlistID); exists {
		return domain.Validationf("playlist %d already exists", playlistID)
	}

	ownerID := p.Event.UserID
	if _, ok := p.EffectiveUser(ownerID); !ok {
		return domain.Validationf("owner %d does not exist", ownerID)
	}
	if err := authorizeSigner(ctx, p, ownerID); err != nil {
		return err
	}
	if p.Fields == nil {
		return &domain.MalformedPayloadError{Reason: "playlist create requires metadata"}
	}

	playlist := schema.Playlist{
		PlaylistID:  playlistID,
		IsCurrent:   true,
		OwnerID:     ownerID,
		MetadataCID: p.Event.MetadataCID,
		BlockNumber: p.Block.Number,
		BlockHash:   p.Block.Hash,
		TxHash:      p.Event.TxHash,
	}
	if err := applyPlaylistFields(p, &playlist, nil); err != nil {
		return err
	}
	if playlist.Name == "" {
		return domain.Validationf("playlist create requires a name")
	}

	p.Pending.StagePlaylist(playlist)
	return nil
}

func updatePlaylist(ctx context.Context, p *Params) error {
	playlistID := p.Event.EntityID

	existing, ok := p.EffectivePlaylist(playlistID)
	if !ok || existing.IsDelete {
		return domain.Validationf("playlist %d does not exist", playlistID)
	}
	if existing.OwnerID != p.Event.UserID {
		return domain.Validationf("playlist %d not owned by user %d", playlistID, p.Event.UserID)
	}
	if err := authorizeSigner(ctx, p, existing.OwnerID); err != nil {
		return err
	}
	if p.Fields == nil {
		return &domain.MalformedPayloadError{Reason: "playlist update requires metadata"}
	}

	playlist := existing.CloneAsNewVersion(p.Block.Number, p.Block.Hash, p.Event.TxHash)
	if p.Event.MetadataCID != "" {
		playlist.MetadataCID = p.Event.MetadataCID
	}
	if err := applyPlaylistFields(p, &playlist, &existing); err != nil {
		return err
	}

	p.Pending.StagePlaylist(playlist)
	return nil
}

func deletePlaylist(ctx context.Context, p *Params) error {
	playlistID := p.Event.EntityID

	existing, ok := p.EffectivePlaylist(playlistID)
	if !ok || existing.IsDelete {
		return domain.Validationf("playlist %d does not exist", playlistID)
	}
	if existing.OwnerID != p.Event.UserID {
		return domain.Validationf("playlist %d not owned by user %d", playlistID, p.Event.UserID)
	}
	if err := authorizeSigner(ctx, p, existing.OwnerID); err != nil {
		return err
	}

	playlist := existing.CloneAsNewVersion(p.Block.Number, p.Block.Hash, p.Event.TxHash)
	playlist.IsDelete = true

	p.Pending.StagePlaylist(playlist)
	return nil
}

// applyPlaylistFields copies the mutable playlist fields present in the
// payload. The album flag is fixed at create and ignored on update; a public
// playlist can never be made private again.
func applyPlaylistFields(p *Params, playlist *schema.Playlist, existing *schema.Playlist) error {
	if name, ok, err := stringField(p.Fields, "playlist_name"); err != nil {
		return err
	} else if ok {
		playlist.Name = name
	}

	if description, ok, err := stringField(p.Fields, "description"); err != nil {
		return err
	} else if ok {
		if len(description) > domain.PlaylistDescriptionCharLimit {
			return domain.Validationf("description exceeds %d characters", domain.PlaylistDescriptionCharLimit)
		}
		playlist.Description = description
	}

	if isAlbum, ok, err := boolField(p.Fields, "is_album"); err != nil {
		return err
	} else if ok && existing == nil {
		playlist.IsAlbum = isAlbum
	}

	if isPrivate, ok, err := boolField(p.Fields, "is_private"); err != nil {
		return err
	} else if ok {
		if existing != nil && isPrivate && !existing.IsPrivate {
			return domain.Validationf("playlist %d cannot be made private after release", playlist.PlaylistID)
		}
		playlist.IsPrivate = isPrivate
	}

	if sizes, ok, err := stringField(p.Fields, "cover_art_sizes"); err != nil {
		return err
	} else if ok {
		playlist.CoverArtSizes = sizes
	}

	if doc, ok := jsonField(p.Fields, "playlist_contents"); ok {
		playlist.Contents = []byte(doc)
	}

	return nil
}
