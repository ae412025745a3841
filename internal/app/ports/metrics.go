package ports

import "nftforge/internal/domain/progression"

type TransitionMetrics interface {
	RecordSuccess(kind progression.TransitionKind)
	RecordRejected(kind progression.TransitionKind, reason string)
	RecordConflict(kind progression.TransitionKind)
	RecordFailure(kind progression.TransitionKind)
}
