package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Searches.WithLabelValues("nome", "ok").Inc()
	m.HistoryEntries.Set(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("nome", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.HistoryEntries))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	// a second registry must accept a fresh set without clashing
	assert.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}
