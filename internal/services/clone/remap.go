package clone

import (
	"fmt"

	"github.com/google/uuid"
)

// laneMap translates source swim-lane identities into the identities of their
// clones. It is populated as each new lane is persisted and consulted when
// each task is persisted, so a miss means the write ordering was violated.
type laneMap map[uuid.UUID]uuid.UUID

func newLaneMap() laneMap {
	return make(laneMap)
}

// record stores the mapping from a source lane to its clone.
func (m laneMap) record(sourceID, newID uuid.UUID) {
	m[sourceID] = newID
}

// lookup resolves a source lane id to its clone. A missing entry is an
// internal consistency error and must abort the surrounding transaction.
func (m laneMap) lookup(sourceID uuid.UUID) (uuid.UUID, error) {
	newID, ok := m[sourceID]
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrLaneNotMapped, sourceID)
	}
	return newID, nil
}
