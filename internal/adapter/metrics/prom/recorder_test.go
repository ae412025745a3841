package prom

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nftforge/internal/domain/progression"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsOutcomes(t *testing.T) {
	r := NewRecorder("test")
	r.RecordSuccess(progression.TransitionMint)
	r.RecordSuccess(progression.TransitionMint)
	r.RecordRejected(progression.TransitionEvolve, "evolution_failed")
	r.RecordConflict(progression.TransitionUpdate)
	r.RecordFailure(progression.TransitionFuse)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.transitions.WithLabelValues("mint", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("evolve", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejections.WithLabelValues("evolve", "evolution_failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("update", OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("fuse", OutcomeFailure)))
}

func TestRecorder_ServerExposesRegistry(t *testing.T) {
	r := NewRecorder("test")
	r.RecordSuccess(progression.TransitionFuse)

	srv := httptest.NewServer(r.NewServer("", "").Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `test_transitions_total{kind="fuse",outcome="success"} 1`))
}
