package httpapi

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"bizmatch-engine/internal/config"
	"bizmatch-engine/internal/engine"
	"bizmatch-engine/internal/events"
)

type Deps struct {
	Engine *engine.Engine
	Hub    *events.Hub

	// Metrics registry backing /metrics; nil disables the endpoint.
	Registry *prometheus.Registry

	// Config persistence
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// ReloadCatalog re-fetches the configured catalog files, for /catalog/reload.
	ReloadCatalog func() error
}
