package inmemory

import (
	"sync"

	"nftforge/internal/domain/progression"
)

type Snapshot struct {
	TransitionTotal    uint64            `json:"transition_total"`
	TransitionSuccess  uint64            `json:"transition_success"`
	TransitionRejected uint64            `json:"transition_rejected"`
	TransitionConflict uint64            `json:"transition_conflict"`
	TransitionFailure  uint64            `json:"transition_failure"`
	SuccessByKind      map[string]uint64 `json:"success_by_kind"`
	RejectedByReason   map[string]uint64 `json:"rejected_by_reason"`
}

type Recorder struct {
	mu         sync.Mutex
	success    uint64
	rejected   uint64
	conflict   uint64
	failure    uint64
	byKind     map[string]uint64
	byRejected map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKind:     map[string]uint64{},
		byRejected: map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(kind progression.TransitionKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byKind[string(kind)]++
}

func (r *Recorder) RecordRejected(_ progression.TransitionKind, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byRejected[reason]++
}

func (r *Recorder) RecordConflict(progression.TransitionKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure(progression.TransitionKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TransitionSuccess:  r.success,
		TransitionRejected: r.rejected,
		TransitionConflict: r.conflict,
		TransitionFailure:  r.failure,
		TransitionTotal:    r.success + r.rejected + r.conflict + r.failure,
		SuccessByKind:      make(map[string]uint64, len(r.byKind)),
		RejectedByReason:   make(map[string]uint64, len(r.byRejected)),
	}
	for k, v := range r.byKind {
		out.SuccessByKind[k] = v
	}
	for k, v := range r.byRejected {
		out.RejectedByReason[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
