package generation

import (
	"github.com/flarenetwork/bindgen/events"
	"github.com/flarenetwork/bindgen/logging"
	"github.com/flarenetwork/bindgen/logging/colors"
	"github.com/flarenetwork/bindgen/utils"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrDuplicateContract indicates a contract name occurred more than once within a network and the later
	// occurrence was not generated.
	ErrDuplicateContract = errors.New("duplicate contract name")

	// ErrContractOverridden indicates a contract was not generated because a later artifact with the same name
	// replaced it.
	ErrContractOverridden = errors.New("contract overridden by a later artifact with the same name")

	// ErrNetworkNotFound indicates a configured network has no artifact directory in the bundle.
	ErrNetworkNotFound = errors.New("network artifacts not found")
)

// Status describes the outcome of a single item of a run.
type Status string

const (
	// StatusGenerated indicates the item's output file was written.
	StatusGenerated Status = "generated"

	// StatusSkipped indicates the item was intentionally not processed.
	StatusSkipped Status = "skipped"

	// StatusFailed indicates the item could not be processed.
	StatusFailed Status = "failed"
)

// ResultKind describes what kind of item a Result refers to.
type ResultKind string

const (
	ResultKindArtifact ResultKind = "artifact"
	ResultKindContract ResultKind = "contract"
	ResultKindIndex    ResultKind = "index"
	ResultKindNetwork  ResultKind = "network"
)

// Result describes the outcome of a single item of a run.
type Result struct {
	// Kind describes what the result refers to.
	Kind ResultKind

	// Network is the network the item belongs to. It is empty for the root index.
	Network string

	// Contract is the contract name. It is only set for contract results.
	Contract string

	// Path is the output path for contracts and indexes, or the input path for artifacts.
	Path string

	// Status is the outcome of the item.
	Status Status

	// Err is the reason an item failed or was skipped.
	Err error
}

// Report aggregates the results of a single run.
type Report struct {
	// RunID uniquely identifies the run in structured logs.
	RunID string

	// Results lists every result in the order it was recorded.
	Results []Result

	// ResultAdded publishes every result as it is recorded.
	ResultAdded events.EventEmitter[ResultAddedEvent]
}

// ResultAddedEvent describes a result that was recorded in a Report.
type ResultAddedEvent struct {
	// RunID is the identifier of the run the result belongs to.
	RunID string

	// Result is the recorded result.
	Result Result
}

// NewReport returns an empty Report with a new run identifier.
func NewReport() *Report {
	return &Report{
		RunID:   uuid.NewString(),
		Results: make([]Result, 0),
	}
}

// Add records a result and publishes it to ResultAdded subscribers. Subscriber errors do not affect the run.
func (r *Report) Add(result Result) {
	r.Results = append(r.Results, result)
	_ = r.ResultAdded.Publish(ResultAddedEvent{RunID: r.RunID, Result: result})
}

// Count returns the number of results of the given kind with the given status.
func (r *Report) Count(kind ResultKind, status Status) int {
	return len(utils.SliceWhere(r.Results, func(result Result) bool {
		return result.Kind == kind && result.Status == status
	}))
}

// Failures returns every failed result.
func (r *Report) Failures() []Result {
	return r.withStatus(StatusFailed)
}

// withStatus returns every result with the given status.
func (r *Report) withStatus(status Status) []Result {
	return utils.SliceWhere(r.Results, func(result Result) bool {
		return result.Status == status
	})
}

// HasFailures returns true if any result failed.
func (r *Report) HasFailures() bool {
	for _, result := range r.Results {
		if result.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Err returns an error summarizing the failed results, or nil if there are none.
func (r *Report) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}
	return errors.Errorf("%d of %d items failed during run %s", len(failures), len(r.Results), r.RunID)
}

// Log writes a summary of the report to the logger.
func (r *Report) Log(logger *logging.Logger) {
	generated := r.Count(ResultKindContract, StatusGenerated)
	failed := len(r.Failures())
	skipped := len(r.withStatus(StatusSkipped))

	info := logging.StructuredLogInfo{
		"runId":     r.RunID,
		"generated": generated,
		"skipped":   skipped,
		"failed":    failed,
	}
	for _, failure := range r.Failures() {
		logger.Error("Failed ", failure.Kind, " ", colors.Bold, failure.label(), colors.Reset, failure.Err)
	}

	if failed > 0 {
		logger.Warn("Generation completed with ", colors.RedBold, failed, " failure(s)", colors.Reset,
			": ", generated, " contract(s) generated, ", skipped, " item(s) skipped", info)
		return
	}
	logger.Info(colors.GreenBold, "Generation complete! ", colors.Reset,
		generated, " contract(s) generated, ", skipped, " item(s) skipped", info)
}

// label returns a short human-readable name for the result's item.
func (r Result) label() string {
	switch {
	case r.Contract != "":
		return r.Network + "/" + r.Contract
	case r.Path != "":
		return r.Path
	default:
		return r.Network
	}
}
