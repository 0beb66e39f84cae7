package indexer

import (
	"context"

	"github.com/openaudio/discovery-indexer/internal/domain"
)

// authorizeSigner checks that the event signer may act on behalf of ownerID:
// either the signer is the owner's own wallet, or it is a registered developer
// app holding an approved, unrevoked grant from the owner. Mandatory before
// any Update or Delete.
func authorizeSigner(ctx context.Context, p *Params, ownerID int32) error {
	signer := domain.NormalizeWallet(p.Event.Signer)
	if signer == "" {
		return domain.Authorizationf("event has no signer")
	}

	owner, ok := p.EffectiveUser(ownerID)
	if ok && owner.Wallet == signer {
		return nil
	}

	grant, err := p.Store.ActiveGrant(ctx, ownerID, signer)
	if err != nil {
		return err
	}
	if grant != nil {
		app, err := p.Store.DeveloperAppByAddress(ctx, signer)
		if err != nil {
			return err
		}
		if app != nil {
			return nil
		}
	}

	return domain.Authorizationf("signer mismatch for user %d", ownerID)
}
