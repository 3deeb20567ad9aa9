package pipeline

import (
	"path/filepath"

	"github.com/flarenetwork/bindgen/artifacts"
	"github.com/flarenetwork/bindgen/config"
	"github.com/flarenetwork/bindgen/generation"
	"github.com/flarenetwork/bindgen/generation/platforms"
	"github.com/flarenetwork/bindgen/logging"
	"github.com/flarenetwork/bindgen/logging/colors"
	"github.com/pkg/errors"
)

// Pipeline collects contract artifacts from a bundle and generates bindings and index files for them.
type Pipeline struct {
	// config describes the project configuration the pipeline runs with
	config *config.ProjectConfig

	// platform is the generator platform bindings are produced with
	platform platforms.GeneratorConfig

	// collector walks the artifact bundle
	collector *artifacts.Collector

	// emitter invokes the generator and writes index files
	emitter *generation.Emitter

	// logger describes the Pipeline's log object that can be used to log important events
	logger *logging.Logger
}

// NewPipeline validates the project config, resolves its generator platform and verifies the generator's version if
// a minimum version is configured.
func NewPipeline(projectConfig *config.ProjectConfig) (*Pipeline, error) {
	if projectConfig == nil {
		return nil, errors.New("a project config must be provided")
	}
	if err := projectConfig.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid project config")
	}

	platform, err := projectConfig.Generator.GetPlatformConfig()
	if err != nil {
		return nil, err
	}
	return NewPipelineWithPlatform(projectConfig, platform)
}

// NewPipelineWithPlatform creates a Pipeline using the provided generator platform instead of the one described by the
// project config.
func NewPipelineWithPlatform(projectConfig *config.ProjectConfig, platform platforms.GeneratorConfig) (*Pipeline, error) {
	if err := platforms.CheckMinimumVersion(platform); err != nil {
		return nil, err
	}

	collector := artifacts.NewCollector(projectConfig.Artifacts.ValidateABI)
	collector.Extension = projectConfig.Artifacts.FileExtension

	return &Pipeline{
		config:    projectConfig,
		platform:  platform,
		collector: collector,
		emitter: generation.NewEmitter(platform, projectConfig.Output.Directory, projectConfig.Output.IndexFileName,
			projectConfig.Output.DuplicatePolicy),
		logger: logging.GlobalLogger.NewSubLogger("module", logging.PIPELINE_SERVICE),
	}, nil
}

// newReport creates the report of a run, logging each result in structured form as it is recorded.
func (p *Pipeline) newReport() *generation.Report {
	report := generation.NewReport()
	report.ResultAdded.Subscribe(func(event generation.ResultAddedEvent) error {
		p.logger.Debug("Recorded ", event.Result.Kind, " result: ", event.Result.Status, logging.StructuredLogInfo{
			"runId":    event.RunID,
			"network":  event.Result.Network,
			"contract": event.Result.Contract,
			"path":     event.Result.Path,
			"status":   event.Result.Status,
		})
		return nil
	})
	return report
}

// Run generates bindings for every configured network, followed by the network indexes and the root index. Every
// failure is recorded in the returned report, the run itself always completes.
func (p *Pipeline) Run() *generation.Report {
	report := p.newReport()
	p.logger.Info("Collecting contract artifacts from ", colors.Bold, p.config.Artifacts.BundleDirectory, colors.Reset,
		logging.StructuredLogInfo{"runId": report.RunID})

	collected := p.collector.CollectNetworks(p.config.Artifacts.BundleDirectory, p.config.Artifacts.Networks,
		p.config.Artifacts.ArtifactsSubdirectory)
	p.recordCollection(collected, report)

	group := artifacts.GroupByNetwork(collected.Contracts)
	p.logger.Info("Found ", colors.Bold, group.Len(), colors.Reset, " contract(s) across ",
		colors.Bold, len(group.Networks()), colors.Reset, " network(s)")

	p.emitter.EmitNetworks(group, report)

	report.Log(p.logger)
	p.logger.Info("Generated files: ", colors.Bold, p.config.Output.Directory, string(filepath.Separator), colors.Reset)
	return report
}

// RunSingle generates bindings for every contract of the configured single network into one output file. No index
// files are written.
func (p *Pipeline) RunSingle() *generation.Report {
	report := p.newReport()
	network := p.config.Output.SingleNetwork
	outputPath := p.config.Output.GetSingleOutputPath(p.platform.SourceExtension())
	p.logger.Info("Collecting contract artifacts for ", colors.CyanBold, network, colors.Reset,
		logging.StructuredLogInfo{"runId": report.RunID})

	collected := p.collector.CollectNetworks(p.config.Artifacts.BundleDirectory, []string{network},
		p.config.Artifacts.ArtifactsSubdirectory)
	p.recordCollection(collected, report)

	p.emitter.EmitSingle(network, collected.Contracts, outputPath, report)

	report.Log(p.logger)
	return report
}

// recordCollection adds the failures and missing networks of a collection to the report.
func (p *Pipeline) recordCollection(collected *artifacts.CollectionResult, report *generation.Report) {
	for _, network := range collected.MissingNetworks {
		report.Add(generation.Result{
			Kind:    generation.ResultKindNetwork,
			Network: network,
			Status:  generation.StatusSkipped,
			Err:     errors.Wrapf(generation.ErrNetworkNotFound, "network %s", network),
		})
	}
	for _, failure := range collected.Failures {
		report.Add(generation.Result{
			Kind:    generation.ResultKindArtifact,
			Network: failure.Network,
			Path:    failure.Path,
			Status:  generation.StatusFailed,
			Err:     failure,
		})
	}
}
