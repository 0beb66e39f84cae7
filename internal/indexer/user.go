package indexer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/openaudio/discovery-indexer/internal/challenges"
	"github.com/openaudio/discovery-indexer/internal/domain"
	"github.com/openaudio/discovery-indexer/internal/store/schema"
)

// signupEvents is the optional "events" document carried on a user create,
// recording acquisition context used only for challenge dispatch.
type signupEvents struct {
	Referrer     *int32 `json:"referrer"`
	IsMobileUser bool   `json:"is_mobile_user"`
}

func createUser(ctx context.Context, p *Params) error {
	userID := p.Event.EntityID
	if userID < domain.UserIDOffset {
		return domain.Validationf("user id %d below reserved offset", userID)
	}
	if _, exists := p.EffectiveUser(userID); exists {
		return domain.Validationf("user %d already exists", userID)
	}

	wallet := domain.NormalizeWallet(p.Event.Signer)
	if wallet == "" {
		return domain.Validationf("user create has no wallet")
	}

	// One wallet owns at most one user.
	if owner, err := p.Store.UserByWallet(ctx, wallet); err != nil {
		return err
	} else if owner != nil && owner.UserID != userID {
		return domain.Validationf("wallet already owns user %d", owner.UserID)
	}
	if pendingID, ok := p.PendingWalletOwner(wallet); ok && pendingID != userID {
		return domain.Validationf("wallet already owns user %d", pendingID)
	}

	// An app address signs on behalf of users; it can never become one.
	if app, err := p.Store.DeveloperAppByAddress(ctx, wallet); err != nil {
		return err
	} else if app != nil {
		return domain.Validationf("developer app %s cannot create a user", wallet)
	}

	if p.Fields == nil {
		return &domain.MalformedPayloadError{Reason: "user create requires metadata"}
	}

	handle, ok, err := stringField(p.Fields, "handle")
	if err != nil {
		return err
	}
	if !ok || handle == "" {
		return domain.Validationf("user create requires a handle")
	}
	handleLC := strings.ToLower(handle)
	if !domain.ValidHandle(handleLC) {
		return domain.Validationf("invalid handle %q", handle)
	}
	if domain.ReservedHandle(handleLC) {
		return domain.Validationf("handle %q is reserved", handle)
	}
	if taken, err := p.Store.HandleTaken(ctx, handleLC); err != nil {
		return err
	} else if taken {
		return domain.Validationf("handle %q is taken", handle)
	}
	if p.PendingHandleTaken(handleLC) {
		return domain.Validationf("handle %q is taken", handle)
	}

	user := schema.User{
		UserID:      userID,
		IsCurrent:   true,
		Handle:      handle,
		HandleLC:    handleLC,
		Wallet:      wallet,
		MetadataCID: p.Event.MetadataCID,
		BlockNumber: p.Block.Number,
		BlockHash:   p.Block.Hash,
		TxHash:      p.Event.TxHash,
	}
	if err := applyUserFields(ctx, p, &user); err != nil {
		return err
	}

	p.Pending.StageUser(user)
	dispatchSignupEvents(ctx, p, userID)
	return nil
}

func updateUser(ctx context.Context, p *Params) error {
	userID := p.Event.EntityID
	if p.Event.UserID != userID {
		return domain.Validationf("user %d cannot edit user %d", p.Event.UserID, userID)
	}

	existing, ok := p.EffectiveUser(userID)
	if !ok {
		return domain.Validationf("user %d does not exist", userID)
	}
	if err := authorizeSigner(ctx, p, userID); err != nil {
		return err
	}
	if p.Fields == nil {
		return &domain.MalformedPayloadError{Reason: "user update requires metadata"}
	}

	user := existing.CloneAsNewVersion(p.Block.Number, p.Block.Hash, p.Event.TxHash)
	if p.Event.MetadataCID != "" {
		user.MetadataCID = p.Event.MetadataCID
	}
	if err := applyUserFields(ctx, p, &user); err != nil {
		return err
	}

	p.Pending.StageUser(user)
	return p.Bus.Dispatch(ctx, challenges.EventTypeProfileUpdate, p.Block.Number, p.Block.Timestamp, userID, nil)
}

// verifyUser records the outcome of an off-chain social-platform check. Only
// the configured verifier service may sign these events. The payload carries
// at most one platform handle per event plus an is_verified flag; the flag is
// merged sticky, so a later check against an unverified platform never
// un-verifies a user vetted through another one.
func verifyUser(ctx context.Context, p *Params) error {
	userID := p.Event.EntityID

	signer := domain.NormalizeWallet(p.Event.Signer)
	if signer == "" || signer != domain.NormalizeWallet(p.VerifierWallet) {
		return domain.Authorizationf("verify signed by %q, not the verifier", p.Event.Signer)
	}

	existing, ok := p.EffectiveUser(userID)
	if !ok {
		return domain.Validationf("user %d does not exist", userID)
	}

	verified, _, err := boolField(p.Fields, "is_verified")
	if err != nil {
		return err
	}
	twitter, _, err := stringField(p.Fields, "twitter_handle")
	if err != nil {
		return err
	}
	instagram, _, err := stringField(p.Fields, "instagram_handle")
	if err != nil {
		return err
	}
	tiktok, _, err := stringField(p.Fields, "tiktok_handle")
	if err != nil {
		return err
	}

	user := existing.CloneAsNewVersion(p.Block.Number, p.Block.Hash, p.Event.TxHash)
	user.IsVerified = user.IsVerified || verified
	switch {
	case twitter != "":
		user.TwitterHandle = twitter
		if verified {
			user.VerifiedWithTwitter = true
		}
	case instagram != "":
		user.InstagramHandle = instagram
		if verified {
			user.VerifiedWithInstagram = true
		}
	case tiktok != "":
		user.TikTokHandle = tiktok
		if verified {
			user.VerifiedWithTikTok = true
		}
	}

	p.Pending.StageUser(user)
	if !user.IsVerified {
		return nil
	}
	return p.Bus.Dispatch(ctx, challenges.EventTypeConnectVerified, p.Block.Number, p.Block.Timestamp, userID, nil)
}

// applyUserFields copies the mutable profile fields present in the payload
// onto the row. Identity fields (user id, wallet, handle, verified flag) are
// never writable through metadata and are ignored if present.
func applyUserFields(ctx context.Context, p *Params, user *schema.User) error {
	if name, ok, err := stringField(p.Fields, "name"); err != nil {
		return err
	} else if ok {
		user.Name = name
	}

	if bio, ok, err := stringField(p.Fields, "bio"); err != nil {
		return err
	} else if ok {
		if len(bio) > domain.UserBioCharLimit {
			return domain.Validationf("bio exceeds %d characters", domain.UserBioCharLimit)
		}
		user.Bio = bio
	}

	if location, ok, err := stringField(p.Fields, "location"); err != nil {
		return err
	} else if ok {
		user.Location = location
	}

	if sizes, ok, err := stringField(p.Fields, "profile_picture_sizes"); err != nil {
		return err
	} else if ok {
		user.ProfilePictureSizes = sizes
	}

	if sizes, ok, err := stringField(p.Fields, "cover_photo_sizes"); err != nil {
		return err
	} else if ok {
		user.CoverPhotoSizes = sizes
	}

	if deactivated, ok, err := boolField(p.Fields, "is_deactivated"); err != nil {
		return err
	} else if ok {
		user.IsDeactivated = deactivated
	}

	if pick, ok, err := nullableInt32Field(p.Fields, "artist_pick_track_id"); err != nil {
		return err
	} else if ok {
		if pick != nil {
			track, found := p.EffectiveTrack(*pick)
			if !found {
				loaded, err := p.Store.CurrentTracks(ctx, []int32{*pick})
				if err != nil {
					return err
				}
				if t, ok := loaded[*pick]; ok {
					track, found = *t, true
				}
			}
			if !found || track.IsDelete {
				return domain.Validationf("artist pick track %d does not exist", *pick)
			}
			if track.OwnerID != user.UserID {
				return domain.Validationf("artist pick track %d not owned by user %d", *pick, user.UserID)
			}
		}
		user.ArtistPickTrackID = pick
	}

	return nil
}

// dispatchSignupEvents raises the acquisition-context challenge events carried
// on a user create. Dispatch failures never fail the create.
func dispatchSignupEvents(ctx context.Context, p *Params, userID int32) {
	raw, ok := jsonField(p.Fields, "events")
	if !ok {
		return
	}
	var events signupEvents
	if err := json.Unmarshal(raw, &events); err != nil {
		return
	}

	if events.Referrer != nil && *events.Referrer > 0 && *events.Referrer != userID {
		_ = p.Bus.Dispatch(ctx, challenges.EventTypeReferralSignup, p.Block.Number, p.Block.Timestamp, *events.Referrer,
			map[string]any{"referred_user_id": userID})
		_ = p.Bus.Dispatch(ctx, challenges.EventTypeReferredSignup, p.Block.Number, p.Block.Timestamp, userID,
			map[string]any{"referrer": *events.Referrer})
	}
	if events.IsMobileUser {
		_ = p.Bus.Dispatch(ctx, challenges.EventTypeMobileInstall, p.Block.Number, p.Block.Timestamp, userID, nil)
	}
}
