package cli

import (
	"context"
	"fmt"

	domainmw "github.com/lakeproc/agent-gcp/domain/middleware"
	"github.com/lakeproc/agent-gcp/domain/pack"
	"github.com/lakeproc/agent-gcp/domain/tool"
	"github.com/lakeproc/agent-gcp/infrastructure/config"
	"github.com/lakeproc/agent-gcp/infrastructure/logging"
	infmw "github.com/lakeproc/agent-gcp/infrastructure/middleware"
	packreg "github.com/lakeproc/agent-gcp/infrastructure/pack"
	"github.com/lakeproc/agent-gcp/infrastructure/storage/memory"
	"github.com/lakeproc/agent-gcp/pack/catalog"
	"github.com/lakeproc/agent-gcp/pack/dataplex"
	"github.com/lakeproc/agent-gcp/pack/dataproc"
)

// runtime holds the assembled tool registry and provider lifecycles.
type runtime struct {
	cfg     *config.Config
	tools   tool.Registry
	packs   *packreg.Registry
	closers []func() error
}

// close releases all provider connections.
func (r *runtime) close() {
	for _, c := range r.closers {
		if err := c(); err != nil {
			logging.Warn().
				Add(logging.Component("runtime")).
				Add(logging.ErrorField(err)).
				Msg("failed to close provider")
		}
	}
}

// loadConfig loads configuration from a file, or returns defaults when no
// path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.NewLoader().LoadFile(path)
}

// buildRuntime constructs providers and installs all tool packs.
func buildRuntime(ctx context.Context, cfg *config.Config, useMemory bool) (*runtime, error) {
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	rt := &runtime{
		cfg:   cfg,
		tools: memory.NewToolRegistry(),
		packs: packreg.NewRegistry(),
	}

	var (
		dataplexProvider dataplex.Provider
		dataprocProvider dataproc.Provider
		catalogProvider  catalog.Provider
	)

	if useMemory || cfg.GCP.UseMemoryProviders {
		dataplexProvider = dataplex.NewMemoryProvider()
		dataprocProvider = dataproc.NewMemoryProvider()
		catalogProvider = catalog.NewMemoryProvider()
	} else {
		dataplexCfg, dataprocCfg, catalogCfg := gcpClientConfigs(cfg)

		dp, err := dataplex.NewGCPProvider(ctx, dataplexCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create dataplex provider: %w", err)
		}
		rt.closers = append(rt.closers, dp.Close)
		dataplexProvider = dp

		dc := dataproc.NewGCPProvider(dataprocCfg)
		rt.closers = append(rt.closers, dc.Close)
		dataprocProvider = dc

		cat, err := catalog.NewGCPProvider(ctx, catalogCfg)
		if err != nil {
			rt.close()
			return nil, fmt.Errorf("failed to create catalog provider: %w", err)
		}
		rt.closers = append(rt.closers, cat.Close)
		catalogProvider = cat
	}

	timeout := cfg.Tools.Timeout.Duration()

	dataplexPack, err := dataplex.New(dataplexProvider, dataplex.WithTimeout(timeout))
	if err != nil {
		rt.close()
		return nil, err
	}
	dataprocPack, err := dataproc.New(dataprocProvider,
		dataproc.WithTimeout(timeout),
		dataproc.WithJobIDPrefix(cfg.Tools.JobIDPrefix),
	)
	if err != nil {
		rt.close()
		return nil, err
	}
	catalogPack, err := catalog.New(catalogProvider, catalog.WithTimeout(timeout))
	if err != nil {
		rt.close()
		return nil, err
	}

	mws := toolMiddleware()

	for _, p := range []*pack.Pack{dataplexPack, dataprocPack, catalogPack} {
		for i, t := range p.Tools {
			p.Tools[i] = infmw.WrapTool(t, mws...)
		}
		if err := rt.packs.Register(p); err != nil {
			rt.close()
			return nil, fmt.Errorf("failed to register pack %s: %w", p.Name, err)
		}
		if err := rt.packs.Install(p.Name, rt.tools); err != nil {
			rt.close()
			return nil, fmt.Errorf("failed to install pack %s: %w", p.Name, err)
		}
	}

	logging.Info().
		Add(logging.Component("runtime")).
		Add(logging.Str("dataplex_provider", dataplexProvider.Name())).
		Add(logging.Str("dataproc_provider", dataprocProvider.Name())).
		Msg("tool packs installed")

	return rt, nil
}

// gcpClientConfigs derives the per-service client settings from the loaded
// configuration. The endpoint override applies to all three services so an
// emulator can stand in for any of them.
func gcpClientConfigs(cfg *config.Config) (dataplex.GCPConfig, dataproc.GCPConfig, catalog.GCPConfig) {
	return dataplex.GCPConfig{
			CredentialsFile: cfg.GCP.CredentialsFile,
			Endpoint:        cfg.GCP.Endpoint,
		}, dataproc.GCPConfig{
			CredentialsFile: cfg.GCP.CredentialsFile,
			Endpoint:        cfg.GCP.Endpoint,
		}, catalog.GCPConfig{
			CredentialsFile: cfg.GCP.CredentialsFile,
			Endpoint:        cfg.GCP.Endpoint,
		}
}

// toolMiddleware builds the execution chain every installed tool runs
// through: structured logging first, then a tracing span around the call.
func toolMiddleware() []domainmw.Middleware {
	return []domainmw.Middleware{
		infmw.Logging(infmw.LoggingConfig{}),
		infmw.Tracing(infmw.DefaultTracingConfig()),
	}
}
