package metrics

import (
	"testing"

	"nftforge/internal/adapter/metrics/inmemory"
	"nftforge/internal/domain/progression"

	"github.com/stretchr/testify/assert"
)

func TestFanout_ForwardsToEveryRecorder(t *testing.T) {
	a, b := inmemory.NewRecorder(), inmemory.NewRecorder()
	f := Fanout{a, b}

	f.RecordSuccess(progression.TransitionMint)
	f.RecordRejected(progression.TransitionUpdate, "update_too_soon")
	f.RecordConflict(progression.TransitionEvolve)
	f.RecordFailure(progression.TransitionFuse)

	for _, r := range []*inmemory.Recorder{a, b} {
		s := r.Snapshot()
		assert.Equal(t, uint64(4), s.TransitionTotal)
		assert.Equal(t, uint64(1), s.RejectedByReason["update_too_soon"])
	}
}
