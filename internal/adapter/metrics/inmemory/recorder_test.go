package inmemory

import (
	"testing"

	"nftforge/internal/domain/progression"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess(progression.TransitionMint)
	r.RecordSuccess(progression.TransitionFuse)
	r.RecordRejected(progression.TransitionUpdate, "update_too_soon")
	r.RecordConflict(progression.TransitionUpdate)
	r.RecordFailure(progression.TransitionEvolve)

	s := r.Snapshot()
	if s.TransitionTotal != 5 {
		t.Fatalf("expected total 5, got %d", s.TransitionTotal)
	}
	if s.TransitionSuccess != 2 {
		t.Fatalf("expected success 2, got %d", s.TransitionSuccess)
	}
	if s.TransitionRejected != 1 || s.RejectedByReason["update_too_soon"] != 1 {
		t.Fatalf("expected one update_too_soon rejection, got %+v", s.RejectedByReason)
	}
	if s.TransitionConflict != 1 {
		t.Fatalf("expected conflict 1, got %d", s.TransitionConflict)
	}
	if s.TransitionFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.TransitionFailure)
	}
	if s.SuccessByKind["mint"] != 1 || s.SuccessByKind["fuse"] != 1 {
		t.Fatalf("unexpected success by kind: %+v", s.SuccessByKind)
	}
}

func TestRecorderSnapshotIsACopy(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess(progression.TransitionMint)
	s := r.Snapshot()
	s.SuccessByKind["mint"] = 99

	if got := r.Snapshot().SuccessByKind["mint"]; got != 1 {
		t.Fatalf("expected recorder unaffected, got %d", got)
	}
}
