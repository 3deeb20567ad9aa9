package logging

// These constants identify the packages that create sub-loggers off of GlobalLogger. They are used as the value of
// the "module" key so that structured logs can be filtered by component.
const (
	// COLLECTOR_SERVICE is the constant used to identify the artifact collector
	COLLECTOR_SERVICE = "collector"
	// GENERATION_SERVICE is the constant used to identify the generation package
	GENERATION_SERVICE = "generation"
	// PIPELINE_SERVICE is the constant used to identify the pipeline package
	PIPELINE_SERVICE = "pipeline"
	// CLI_SERVICE is the constant used to identify the cmd package
	CLI_SERVICE = "cli"
)
