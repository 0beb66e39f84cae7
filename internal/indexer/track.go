package indexer

import (
	"context"

	"github.com/openaudio/discovery-indexer/internal/challenges"
	"github.com/openaudio/discovery-indexer/internal/domain"
	"github.com/openaudio/discovery-indexer/internal/store/schema"
)

func createTrack(ctx context.Context, p *Params) error {
	trackID := p.Event.EntityID
	if trackID < domain.TrackIDOffset {
		return domain.Validationf("track id %d below reserved offset", trackID)
	}
	if _, exists := p.EffectiveTrack(trackID); exists {
		return domain.Validationf("track %d already exists", trackID)
	}

	ownerID := p.Event.UserID
	if _, ok := p.EffectiveUser(ownerID); !ok {
		return domain.Validationf("owner %d does not exist", ownerID)
	}
	if err := authorizeSigner(ctx, p, ownerID); err != nil {
		return err
	}
	if p.Fields == nil {
		return &domain.MalformedPayloadError{Reason: "track create requires metadata"}
	}

	track := schema.Track{
		TrackID:     trackID,
		IsCurrent:   true,
		OwnerID:     ownerID,
		MetadataCID: p.Event.MetadataCID,
		BlockNumber: p.Block.Number,
		BlockHash:   p.Block.Hash,
		TxHash:      p.Event.TxHash,
	}
	if err := applyTrackFields(p, &track, nil); err != nil {
		return err
	}
	if track.Title == "" {
		return domain.Validationf("track create requires a title")
	}
	if track.Genre == "" {
		return domain.Validationf("track create requires a genre")
	}

	p.Pending.StageTrack(track)
	return p.Bus.Dispatch(ctx, challenges.EventTypeTrackUpload, p.Block.Number, p.Block.Timestamp, ownerID, nil)
}

func updateTrack(ctx context.Context, p *Params) error {
	trackID := p.Event.EntityID

	existing, ok := p.EffectiveTrack(trackID)
	if !ok || existing.IsDelete {
		return domain.Validationf("track %d does not exist", trackID)
	}
	if existing.OwnerID != p.Event.UserID {
		return domain.Validationf("track %d not owned by user %d", trackID, p.Event.UserID)
	}
	if err := authorizeSigner(ctx, p, existing.OwnerID); err != nil {
		return err
	}
	if p.Fields == nil {
		return &domain.MalformedPayloadError{Reason: "track update requires metadata"}
	}

	// A listed track can never be pulled back to unlisted.
	if unlisted, ok, err := boolField(p.Fields, "is_unlisted"); err != nil {
		return err
	} else if ok && unlisted && !existing.IsUnlisted {
		return domain.Validationf("track %d cannot be unlisted after release", trackID)
	}

	track := existing.CloneAsNewVersion(p.Block.Number, p.Block.Hash, p.Event.TxHash)
	if p.Event.MetadataCID != "" {
		track.MetadataCID = p.Event.MetadataCID
	}
	if err := applyTrackFields(p, &track, &existing); err != nil {
		return err
	}

	p.Pending.StageTrack(track)
	return nil
}

// deleteTrack tombstones a track. The row stays, flagged deleted, with its
// lineage and gating documents cleared so the track drops out of remix trees,
// stem listings and access checks.
func deleteTrack(ctx context.Context, p *Params) error {
	trackID := p.Event.EntityID

	existing, ok := p.EffectiveTrack(trackID)
	if !ok || existing.IsDelete {
		return domain.Validationf("track %d does not exist", trackID)
	}
	if existing.OwnerID != p.Event.UserID {
		return domain.Validationf("track %d not owned by user %d", trackID, p.Event.UserID)
	}
	if err := authorizeSigner(ctx, p, existing.OwnerID); err != nil {
		return err
	}

	track := existing.CloneAsNewVersion(p.Block.Number, p.Block.Hash, p.Event.TxHash)
	track.IsDelete = true
	track.RemixOf = nil
	track.StemOf = nil
	track.StreamConditions = nil

	p.Pending.StageTrack(track)
	return nil
}

// applyTrackFields copies the mutable track fields present in the payload.
// Owner, track id, track cid and duration are fixed at create; a later payload
// carrying them is ignored on those fields rather than rejected.
func applyTrackFields(p *Params, track *schema.Track, existing *schema.Track) error {
	if title, ok, err := stringField(p.Fields, "title"); err != nil {
		return err
	} else if ok {
		track.Title = title
	}

	if genre, ok, err := stringField(p.Fields, "genre"); err != nil {
		return err
	} else if ok {
		if !domain.ValidGenre(genre) {
			return domain.Validationf("unknown genre %q", genre)
		}
		track.Genre = genre
	}

	// Unknown moods are dropped rather than rejected.
	if mood, ok, err := stringField(p.Fields, "mood"); err != nil {
		return err
	} else if ok && domain.ValidMood(mood) {
		track.Mood = mood
	}

	if tags, ok, err := stringField(p.Fields, "tags"); err != nil {
		return err
	} else if ok {
		track.Tags = tags
	}

	if description, ok, err := stringField(p.Fields, "description"); err != nil {
		return err
	} else if ok {
		if len(description) > domain.TrackDescriptionCharLimit {
			return domain.Validationf("description exceeds %d characters", domain.TrackDescriptionCharLimit)
		}
		track.Description = description
	}

	if duration, ok, err := int32Field(p.Fields, "duration"); err != nil {
		return err
	} else if ok && existing == nil {
		if duration < 0 {
			return domain.Validationf("negative duration")
		}
		track.Duration = duration
	}

	if unlisted, ok, err := boolField(p.Fields, "is_unlisted"); err != nil {
		return err
	} else if ok {
		track.IsUnlisted = unlisted
	}

	if cid, ok, err := stringField(p.Fields, "track_cid"); err != nil {
		return err
	} else if ok && existing == nil {
		track.TrackCID = cid
	}

	if sizes, ok, err := stringField(p.Fields, "cover_art_sizes"); err != nil {
		return err
	} else if ok {
		track.CoverArtSizes = sizes
	}

	if release, ok, err := stringField(p.Fields, "release_date"); err != nil {
		return err
	} else if ok {
		track.ReleaseDate = release
	}

	if doc, ok := jsonField(p.Fields, "remix_of"); ok {
		track.RemixOf = []byte(doc)
	}
	if doc, ok := jsonField(p.Fields, "stem_of"); ok {
		track.StemOf = []byte(doc)
	}
	if doc, ok := jsonField(p.Fields, "stream_conditions"); ok {
		track.StreamConditions = []byte(doc)
	}

	return nil
}
