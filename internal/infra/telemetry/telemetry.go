package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/arklim/hall-of-fame-creators/internal/infra/config"
)

// Version is overridable at build time via -ldflags.
var Version = "dev"

// Attach registers the service identity gauge on the default Prometheus
// registry. Safe to call only once per process.
func Attach(cfg *config.AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	info := promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "hof",
		Name:      "service_info",
		Help:      "Static service identity labels, always 1",
	}, []string{"service", "env", "version"})
	info.WithLabelValues(cfg.App.Name, cfg.App.Env, Version).Set(1)

	return nil
}
