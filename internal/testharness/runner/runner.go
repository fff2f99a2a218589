package runner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/listenscope/listenscope-go/internal/testharness/loader"
	"github.com/listenscope/listenscope-go/pkg/eventsource"
	"github.com/listenscope/listenscope-go/pkg/log"
	"github.com/listenscope/listenscope-go/pkg/scope"
)

// Default parameter values for steps that omit them.
const (
	DefaultOwner = "owner"
	DefaultEvent = "click"
)

// Config configures a Runner.
type Config struct {
	// Logger is the optional logger for debug output.
	Logger *slog.Logger

	// TraceLogger receives scope decisions from every scenario.
	TraceLogger log.Logger
}

// Runner executes scenarios. Each scenario gets a fresh registry and event
// source, so scenarios are independent of each other.
type Runner struct {
	config Config
}

// New creates a runner.
func New(config Config) *Runner {
	return &Runner{config: config}
}

// ExecutionState holds the live objects of one scenario run.
type ExecutionState struct {
	Source   *eventsource.Source
	Recorder *eventsource.Recorder
	Registry *scope.Registry

	faults      *faultTarget
	failFactory bool

	// handled counts events delivered to each owner's handlers.
	handled map[string]int
}

func newExecutionState(sc *loader.Scenario, config Config) *ExecutionState {
	srcConfig := eventsource.DefaultConfig()
	srcConfig.Name = "scenario"
	srcConfig.Events = sc.Target.Events
	if sc.Target.MaxHandlersPerEvent > 0 {
		srcConfig.MaxHandlersPerEvent = sc.Target.MaxHandlersPerEvent
	}

	src := eventsource.NewWithConfig(srcConfig)
	faults := &faultTarget{inner: src}

	return &ExecutionState{
		Source:   src,
		Recorder: eventsource.NewRecorder(faults),
		Registry: scope.NewRegistryWithConfig(scope.Config{
			Logger:      config.Logger,
			TraceLogger: config.TraceLogger,
		}),
		faults:  faults,
		handled: make(map[string]int),
	}
}

// Run executes a scenario. Remaining steps still run after a failed step
// so the report shows every divergence; bindings left at the end are
// disposed.
func (r *Runner) Run(sc *loader.Scenario) *TestResult {
	result := &TestResult{
		Scenario:  sc,
		Passed:    true,
		StartTime: time.Now(),
	}
	state := newExecutionState(sc, r.config)

	for i := range sc.Steps {
		sr := r.runStep(&sc.Steps[i], i, state)
		result.StepResults = append(result.StepResults, sr)
		if !sr.Passed {
			result.Passed = false
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s): %w", i+1, sr.Step.Action, sr.Error)
			}
		}
	}

	_ = state.Registry.DisposeAll()
	result.Duration = time.Since(result.StartTime)

	if r.config.Logger != nil {
		r.config.Logger.Debug("scenario finished",
			"id", sc.ID, "passed", result.Passed, "duration", result.Duration)
	}
	return result
}

// RunSuite executes scenarios in order.
func (r *Runner) RunSuite(name string, scenarios []*loader.Scenario) *SuiteResult {
	start := time.Now()
	suite := &SuiteResult{SuiteName: name}

	for _, sc := range scenarios {
		tr := r.Run(sc)
		suite.Results = append(suite.Results, tr)
		if tr.Passed {
			suite.PassCount++
		} else {
			suite.FailCount++
		}
	}

	suite.Duration = time.Since(start)
	return suite
}

func (r *Runner) runStep(step *loader.Step, index int, state *ExecutionState) *StepResult {
	start := time.Now()
	sr := &StepResult{
		Step:          step,
		StepIndex:     index,
		Passed:        true,
		ExpectResults: make(map[string]*ExpectResult),
	}

	mark := state.Recorder.Len()
	output, err := executeAction(step, state)
	sr.ActionError = err
	calls := state.Recorder.Since(mark)

	if output == nil {
		output = make(map[string]any)
	}
	output["calls"] = callNames(calls)
	output["registers"] = state.Recorder.Registers()
	output["deregisters"] = state.Recorder.Deregisters()
	output["active"] = state.Source.Total()
	output["bindings"] = state.Registry.Count()
	sr.Output = output

	_, expectsError := step.Expect["error"]
	_, expectsKind := step.Expect["error_kind"]
	if err != nil && !expectsError && !expectsKind {
		sr.Passed = false
		sr.Error = err
	}

	for _, key := range sortedKeys(step.Expect) {
		er := checkExpectation(key, step.Expect[key], err, step, state, output)
		sr.ExpectResults[key] = er
		if er.Passed {
			continue
		}
		sr.Passed = false
		if sr.Error == nil {
			sr.Error = fmt.Errorf("expectation %s: %s", key, er.Message)
		}
	}

	sr.Duration = time.Since(start)
	return sr
}

func callNames(calls []eventsource.Call) []string {
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Op.String()
	}
	return names
}
