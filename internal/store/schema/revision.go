package schema

import "github.com/openaudio/discovery-indexer/internal/domain"

// Revision is a pending versioned row produced by the block processor. Each
// entity kind's model implements it so a heterogeneous batch can be committed
// in one transaction.
type Revision interface {
	// RevisionEntityID returns the application-level entity identifier.
	RevisionEntityID() int32
	// RevisionKind returns the entity kind the row belongs to.
	RevisionKind() domain.EntityType
}
