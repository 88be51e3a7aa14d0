package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PriceListSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmsync_pricelist_sync_total",
			Help: "Per-target price list sync outcomes",
		},
		[]string{"status"},
	)

	InventoryUpdateTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmsync_inventory_update_total",
			Help: "Inventory update outcomes",
		},
		[]string{"result"},
	)

	TokenAcquisitionTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "farmsync_token_acquisition_total",
			Help: "Marketplace auth token acquisitions",
		},
	)
)

// Start serves /metrics on the given port for the lifetime of the batch run.
func Start(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		_ = http.ListenAndServe(":"+port, mux)
	}()
}
