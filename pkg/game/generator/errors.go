package generator

import (
	"errors"

	"floorforge/pkg/game/level"
)

var (
	// ErrPlacementInfeasible means no doorway pairing fit a candidate room.
	// Generation recovers by restarting from the first floor.
	ErrPlacementInfeasible = errors.New("no doorway pairing fits the room")

	// ErrEmptyPool means a template pool needed for placement is empty. It is
	// a configuration defect and never triggers a restart.
	ErrEmptyPool = errors.New("template pool is empty")

	// ErrInternalConsistency is a bookkeeping bug and always fatal
	ErrInternalConsistency = level.ErrInternalConsistency

	// ErrInvalidConfig reports any other configuration defect
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrRetriesExhausted means every allowed attempt hit an infeasible placement
	ErrRetriesExhausted = errors.New("generation retries exhausted")
)

// retryable reports whether err should restart generation
func retryable(err error) bool {
	return errors.Is(err, ErrPlacementInfeasible)
}
