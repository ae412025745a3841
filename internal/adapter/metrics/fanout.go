// Package metrics fans transition outcomes out to several recorders.
package metrics

import (
	"nftforge/internal/app/ports"
	"nftforge/internal/domain/progression"
)

type Fanout []ports.TransitionMetrics

func (f Fanout) RecordSuccess(kind progression.TransitionKind) {
	for _, m := range f {
		m.RecordSuccess(kind)
	}
}

func (f Fanout) RecordRejected(kind progression.TransitionKind, reason string) {
	for _, m := range f {
		m.RecordRejected(kind, reason)
	}
}

func (f Fanout) RecordConflict(kind progression.TransitionKind) {
	for _, m := range f {
		m.RecordConflict(kind)
	}
}

func (f Fanout) RecordFailure(kind progression.TransitionKind) {
	for _, m := range f {
		m.RecordFailure(kind)
	}
}
