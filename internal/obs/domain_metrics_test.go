package obs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestDomainMetricsRegisterOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegisterDomainMetrics("shipledger", reg)
	MustRegisterDomainMetrics("shipledger", reg)

	require.NotNil(t, InvoicesCreatedTotal)
	InvoicesFinalizedTotal.WithLabelValues("success").Inc()
	require.Equal(t, float64(1), testutil.ToFloat64(InvoicesFinalizedTotal.WithLabelValues("success")))
}
