package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// InvoicesCreatedTotal counts draft invoices persisted with their shipment.
	InvoicesCreatedTotal prometheus.Counter
	// InvoicesFinalizedTotal counts finalize attempts by outcome.
	InvoicesFinalizedTotal *prometheus.CounterVec
	// ShipmentsCreatedTotal counts shipment submissions by shipment type and outcome.
	ShipmentsCreatedTotal *prometheus.CounterVec
	// InvoiceGrandTotalINR observes the grand total of each generated invoice in rupees.
	InvoiceGrandTotalINR prometheus.Histogram
)

// MustRegisterDomainMetrics creates the invoice and shipment collectors.
// Only the first call has any effect.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		InvoicesCreatedTotal = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Draft invoices created.",
		}))
		InvoicesFinalizedTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_finalized_total",
			Help:      "Invoice finalize attempts by result.",
		}, []string{"result"}))
		ShipmentsCreatedTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shipments_created_total",
			Help:      "Shipment submissions by type and result.",
		}, []string{"type", "result"}))
		InvoiceGrandTotalINR = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "invoice_grand_total_inr",
			Help:      "Grand total of generated invoices in INR.",
			Buckets:   []float64{1000, 5000, 10000, 25000, 50000, 100000, 250000, 500000, 1000000},
		}))
	})
}
