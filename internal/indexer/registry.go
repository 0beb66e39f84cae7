package indexer

import (
	"context"

	"github.com/openaudio/discovery-indexer/internal/domain"
)

// Handler materializes one decoded event against the processing context.
type Handler func(ctx context.Context, p *Params) error

type handlerKey struct {
	entityType domain.EntityType
	action     domain.Action
}

// Registry maps (entityType, action) pairs to their handlers. Events with no
// registered handler are skipped as malformed.
type Registry struct {
	handlers map[handlerKey]Handler
}

// NewRegistry builds the default handler set.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[handlerKey]Handler)}

	r.Register(domain.EntityTypeUser, domain.ActionCreate, createUser)
	r.Register(domain.EntityTypeUser, domain.ActionUpdate, updateUser)
	r.Register(domain.EntityTypeUser, domain.ActionVerify, verifyUser)

	r.Register(domain.EntityTypeTrack, domain.ActionCreate, createTrack)
	r.Register(domain.EntityTypeTrack, domain.ActionUpdate, updateTrack)
	r.Register(domain.EntityTypeTrack, domain.ActionDelete, deleteTrack)

	r.Register(domain.EntityTypePlaylist, domain.ActionCreate, createPlaylist)
	r.Register(domain.EntityTypePlaylist, domain.ActionUpdate, updatePlaylist)
	r.Register(domain.EntityTypePlaylist, domain.ActionDelete, deletePlaylist)

	return r
}

// Register binds a handler to an entity type and action, replacing any
// previous binding.
func (r *Registry) Register(entityType domain.EntityType, action domain.Action, h Handler) {
	r.handlers[handlerKey{entityType: entityType, action: action}] = h
}

// Lookup returns the handler for the pair, if registered.
func (r *Registry) Lookup(entityType domain.EntityType, action domain.Action) (Handler, bool) {
	h, ok := r.handlers[handlerKey{entityType: entityType, action: action}]
	return h, ok
}
