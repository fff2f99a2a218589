package runner_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenscope/listenscope-go/internal/testharness/loader"
	"github.com/listenscope/listenscope-go/internal/testharness/runner"
	"github.com/listenscope/listenscope-go/pkg/log"
)

func parse(t *testing.T, src string) *loader.Scenario {
	t.Helper()
	sc, err := loader.ParseScenario([]byte(src))
	require.NoError(t, err)
	return sc
}

func TestRunPassingScenario(t *testing.T) {
	sc := parse(t, `
id: T-001
steps:
  - action: evaluate
    params: {deps: []}
    expect: {calls: [register], active: 1}
  - action: evaluate
    params: {deps: []}
    expect: {calls: [], registers: 1}
`)

	result := runner.New(runner.Config{}).Run(sc)

	assert.True(t, result.Passed, "error: %v", result.Error)
	require.Len(t, result.StepResults, 2)
	assert.Equal(t, []string{"register"}, result.StepResults[0].Output["calls"])
	assert.True(t, result.StepResults[1].ExpectResults["registers"].Passed)
}

func TestRunReportsMismatch(t *testing.T) {
	sc := parse(t, `
id: T-002
steps:
  - action: evaluate
    expect: {registers: 2}
  - action: dispose
    expect: {calls: [deregister]}
`)

	result := runner.New(runner.Config{}).Run(sc)

	assert.False(t, result.Passed)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "step 1")

	er := result.StepResults[0].ExpectResults["registers"]
	assert.False(t, er.Passed)
	assert.Equal(t, 1, er.Actual)

	// Later steps still run.
	assert.True(t, result.StepResults[1].Passed)
}

func TestRunUnexpectedErrorFailsStep(t *testing.T) {
	sc := parse(t, `
id: T-003
steps:
  - action: fail_next_register
  - action: evaluate
`)

	result := runner.New(runner.Config{}).Run(sc)

	assert.False(t, result.Passed)
	assert.Error(t, result.StepResults[1].ActionError)
	assert.ErrorIs(t, result.StepResults[1].ActionError, runner.ErrInjected)
}

func TestRunErrorKind(t *testing.T) {
	sc := parse(t, `
id: T-004
steps:
  - action: fail_next_factory
  - action: evaluate
    expect: {error_kind: registration}
`)

	result := runner.New(runner.Config{}).Run(sc)

	assert.False(t, result.Passed)
	assert.False(t, result.StepResults[1].ExpectResults["error_kind"].Passed)
}

func TestRunUnknownExpectation(t *testing.T) {
	sc := parse(t, `
id: T-005
steps:
  - action: evaluate
    expect: {colour: blue}
`)

	result := runner.New(runner.Config{}).Run(sc)

	assert.False(t, result.Passed)
	assert.Contains(t, result.StepResults[0].ExpectResults["colour"].Message, "unknown expectation")
}

func TestRunScenariosAreIsolated(t *testing.T) {
	sc := parse(t, `
id: T-006
steps:
  - action: evaluate
    params: {deps: []}
    expect: {registers: 1, active: 1}
`)

	r := runner.New(runner.Config{})
	first := r.Run(sc)
	second := r.Run(sc)

	assert.True(t, first.Passed, "error: %v", first.Error)
	assert.True(t, second.Passed, "error: %v", second.Error)
}

type countingLogger struct {
	events []log.Event
}

func (c *countingLogger) Log(e log.Event) {
	c.events = append(c.events, e)
}

func TestRunWritesTrace(t *testing.T) {
	sc := parse(t, `
id: T-007
steps:
  - action: evaluate
    params: {deps: []}
  - action: dispose
`)

	trace := &countingLogger{}
	result := runner.New(runner.Config{TraceLogger: trace}).Run(sc)
	require.True(t, result.Passed, "error: %v", result.Error)

	var ops []log.Op
	for _, e := range trace.events {
		ops = append(ops, e.Op)
	}
	assert.Equal(t, []log.Op{log.OpRegister, log.OpDeregister, log.OpDispose}, ops)
}

func TestRunSuite(t *testing.T) {
	pass := parse(t, `
id: T-PASS
steps:
  - action: dispose
    expect: {calls: []}
`)
	fail := parse(t, `
id: T-FAIL
steps:
  - action: dispose
    expect: {deregisters: 1}
`)

	suite := runner.New(runner.Config{}).RunSuite("mixed", []*loader.Scenario{pass, fail, pass})

	assert.Equal(t, "mixed", suite.SuiteName)
	assert.Equal(t, 2, suite.PassCount)
	assert.Equal(t, 1, suite.FailCount)
	assert.Len(t, suite.Results, 3)
}

func TestShippedScenarios(t *testing.T) {
	scenarios, err := loader.LoadDirectory(filepath.Join("..", "..", "..", "testdata", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	r := runner.New(runner.Config{})
	for _, sc := range scenarios {
		t.Run(sc.ID, func(t *testing.T) {
			result := r.Run(sc)
			if !result.Passed {
				for _, sr := range result.StepResults {
					if !sr.Passed {
						t.Errorf("step %d (%s): %v", sr.StepIndex+1, sr.Step.Action, sr.Error)
					}
				}
			}
		})
	}
}
