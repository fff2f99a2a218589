// Package reporter formats scenario results.
package reporter

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/listenscope/listenscope-go/internal/testharness/runner"
)

// Reporter writes scenario results.
type Reporter interface {
	ReportSuite(result *runner.SuiteResult)
	ReportTest(result *runner.TestResult)
}

// TextReporter writes human-readable results.
type TextReporter struct {
	writer  io.Writer
	verbose bool
}

// NewTextReporter creates a text reporter. Verbose output lists every
// step with its target calls and expectations.
func NewTextReporter(w io.Writer, verbose bool) *TextReporter {
	return &TextReporter{writer: w, verbose: verbose}
}

// ReportSuite writes every scenario followed by a summary.
func (r *TextReporter) ReportSuite(result *runner.SuiteResult) {
	fmt.Fprintf(r.writer, "\n=== Suite: %s ===\n\n", result.SuiteName)

	for _, tr := range result.Results {
		r.ReportTest(tr)
	}

	fmt.Fprintf(r.writer, "\n--- Summary ---\n")
	fmt.Fprintf(r.writer, "Total:    %d\n", len(result.Results))
	fmt.Fprintf(r.writer, "Passed:   %d\n", result.PassCount)
	fmt.Fprintf(r.writer, "Failed:   %d\n", result.FailCount)
	fmt.Fprintf(r.writer, "Duration: %s\n", result.Duration.Round(time.Millisecond))
}

// ReportTest writes one scenario result.
func (r *TextReporter) ReportTest(result *runner.TestResult) {
	sc := result.Scenario
	fmt.Fprintf(r.writer, "[%s] %s - %s (%s)\n",
		statusText(result.Passed), sc.ID, sc.Name, result.Duration.Round(time.Millisecond))

	if !result.Passed && result.Error != nil {
		fmt.Fprintf(r.writer, "       Error: %v\n", result.Error)
	}

	if !r.verbose {
		return
	}

	for _, sr := range result.StepResults {
		fmt.Fprintf(r.writer, "    [%s] Step %d: %s", statusText(sr.Passed), sr.StepIndex+1, sr.Step.Action)
		if calls, ok := sr.Output["calls"].([]string); ok && len(calls) > 0 {
			fmt.Fprintf(r.writer, " -> %s", strings.Join(calls, ", "))
		}
		fmt.Fprintln(r.writer)

		if sr.ActionError != nil {
			fmt.Fprintf(r.writer, "           returned: %v\n", sr.ActionError)
		}
		for _, key := range expectKeys(sr.ExpectResults) {
			er := sr.ExpectResults[key]
			mark := "OK"
			if !er.Passed {
				mark = "FAILED"
			}
			fmt.Fprintf(r.writer, "           [%s] %s\n", mark, er.Message)
		}
	}
}

func statusText(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

func expectKeys(m map[string]*runner.ExpectResult) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JSONReporter writes results as JSON documents.
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(w io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{writer: w, pretty: pretty}
}

// JSONSuiteResult is the JSON form of a suite result.
type JSONSuiteResult struct {
	SuiteName string           `json:"suite_name"`
	Duration  string           `json:"duration"`
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Tests     []JSONTestResult `json:"tests"`
}

// JSONTestResult is the JSON form of a scenario result.
type JSONTestResult struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Status   string           `json:"status"`
	Duration string           `json:"duration"`
	Error    string           `json:"error,omitempty"`
	Steps    []JSONStepResult `json:"steps,omitempty"`
}

// JSONStepResult is the JSON form of a step result.
type JSONStepResult struct {
	Index    int                   `json:"index"`
	Action   string                `json:"action"`
	Status   string                `json:"status"`
	Calls    []string              `json:"calls"`
	Returned string                `json:"returned,omitempty"`
	Error    string                `json:"error,omitempty"`
	Expects  map[string]JSONExpect `json:"expects,omitempty"`
}

// JSONExpect is the JSON form of an expectation result.
type JSONExpect struct {
	Passed   bool   `json:"passed"`
	Expected any    `json:"expected"`
	Actual   any    `json:"actual"`
	Message  string `json:"message"`
}

// ReportSuite writes the suite as one JSON document.
func (r *JSONReporter) ReportSuite(result *runner.SuiteResult) {
	jr := JSONSuiteResult{
		SuiteName: result.SuiteName,
		Duration:  result.Duration.Round(time.Millisecond).String(),
		Total:     len(result.Results),
		Passed:    result.PassCount,
		Failed:    result.FailCount,
		Tests:     make([]JSONTestResult, 0, len(result.Results)),
	}
	for _, tr := range result.Results {
		jr.Tests = append(jr.Tests, testToJSON(tr))
	}
	r.writeJSON(jr)
}

// ReportTest writes one scenario as a JSON document.
func (r *JSONReporter) ReportTest(result *runner.TestResult) {
	r.writeJSON(testToJSON(result))
}

func testToJSON(result *runner.TestResult) JSONTestResult {
	jr := JSONTestResult{
		ID:       result.Scenario.ID,
		Name:     result.Scenario.Name,
		Status:   "failed",
		Duration: result.Duration.Round(time.Millisecond).String(),
	}
	if result.Passed {
		jr.Status = "passed"
	}
	if result.Error != nil {
		jr.Error = result.Error.Error()
	}

	for _, sr := range result.StepResults {
		jsr := JSONStepResult{
			Index:  sr.StepIndex,
			Action: sr.Step.Action,
			Status: "failed",
			Calls:  []string{},
		}
		if sr.Passed {
			jsr.Status = "passed"
		}
		if calls, ok := sr.Output["calls"].([]string); ok {
			jsr.Calls = calls
		}
		if sr.ActionError != nil {
			jsr.Returned = sr.ActionError.Error()
		}
		if sr.Error != nil {
			jsr.Error = sr.Error.Error()
		}
		if len(sr.ExpectResults) > 0 {
			jsr.Expects = make(map[string]JSONExpect, len(sr.ExpectResults))
			for key, er := range sr.ExpectResults {
				jsr.Expects[key] = JSONExpect{
					Passed:   er.Passed,
					Expected: er.Expected,
					Actual:   er.Actual,
					Message:  er.Message,
				}
			}
		}
		jr.Steps = append(jr.Steps, jsr)
	}
	return jr
}

func (r *JSONReporter) writeJSON(v any) {
	var data []byte
	var err error
	if r.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		fmt.Fprintf(r.writer, `{"error": "failed to marshal: %s"}`+"\n", err)
		return
	}
	fmt.Fprintln(r.writer, string(data))
}

// JUnitReporter writes JUnit XML for CI systems.
type JUnitReporter struct {
	writer io.Writer
}

// NewJUnitReporter creates a JUnit reporter.
func NewJUnitReporter(w io.Writer) *JUnitReporter {
	return &JUnitReporter{writer: w}
}

type junitSuite struct {
	XMLName  xml.Name    `xml:"testsuite"`
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Time     string      `xml:"time,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Detail  string `xml:",cdata"`
}

// ReportSuite writes the suite as a testsuite element.
func (r *JUnitReporter) ReportSuite(result *runner.SuiteResult) {
	suite := junitSuite{
		Name:     result.SuiteName,
		Tests:    len(result.Results),
		Failures: result.FailCount,
		Time:     seconds(result.Duration),
	}

	for _, tr := range result.Results {
		tc := junitCase{
			Name:      tr.Scenario.Name,
			ClassName: tr.Scenario.ID,
			Time:      seconds(tr.Duration),
		}
		if !tr.Passed {
			var detail strings.Builder
			for _, sr := range tr.StepResults {
				if !sr.Passed {
					fmt.Fprintf(&detail, "Step %d (%s): %v\n", sr.StepIndex+1, sr.Step.Action, sr.Error)
				}
			}
			msg := "scenario failed"
			if tr.Error != nil {
				msg = tr.Error.Error()
			}
			tc.Failure = &junitFailure{Message: msg, Detail: detail.String()}
		}
		suite.Cases = append(suite.Cases, tc)
	}

	data, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		fmt.Fprintf(r.writer, "<!-- failed to marshal: %v -->\n", err)
		return
	}
	fmt.Fprint(r.writer, xml.Header)
	fmt.Fprintln(r.writer, string(data))
}

// ReportTest writes a single scenario wrapped in its own testsuite.
func (r *JUnitReporter) ReportTest(result *runner.TestResult) {
	suite := &runner.SuiteResult{
		SuiteName: result.Scenario.ID,
		Results:   []*runner.TestResult{result},
		Duration:  result.Duration,
	}
	if result.Passed {
		suite.PassCount = 1
	} else {
		suite.FailCount = 1
	}
	r.ReportSuite(suite)
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}
