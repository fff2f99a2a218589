package commands

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/listenscope/listenscope-go/pkg/log"
)

func createTestTrace(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sclog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

var base = time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)

func sampleEvents() []log.Event {
	return []log.Event{
		{Timestamp: base, OwnerID: "owner-aaaa-bbbb", EventName: "click", Op: log.OpRegister,
			Reason: log.ReasonInitial, Token: "tok-1111-2222", Deps: []string{"true"}},
		{Timestamp: base.Add(time.Second), OwnerID: "owner-aaaa-bbbb", EventName: "click", Op: log.OpRetain,
			Reason: log.ReasonUnchanged, Token: "tok-1111-2222", Deps: []string{"true"}},
		{Timestamp: base.Add(2 * time.Second), OwnerID: "owner-aaaa-bbbb", EventName: "click", Op: log.OpDeregister,
			Reason: log.ReasonDepsChanged, Token: "tok-1111-2222", Deps: []string{"true"}},
		{Timestamp: base.Add(2 * time.Second), OwnerID: "owner-aaaa-bbbb", EventName: "click", Op: log.OpRegister,
			Reason: log.ReasonDepsChanged, Deps: []string{"false"},
			Error: &log.ErrorEventData{Message: "registration refused", Source: "target"}},
		{Timestamp: base.Add(3 * time.Second), OwnerID: "owner-cccc", EventName: "resize", Op: log.OpRegister,
			Reason: log.ReasonInitial, Token: "tok-3333"},
		{Timestamp: base.Add(4 * time.Second), OwnerID: "owner-cccc", Op: log.OpDispose, Reason: log.ReasonDispose},
	}
}

func TestFormatEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[0])

	want := "2026-01-28T10:15:32.123456Z [owner:owner-aa] click REGISTER (INITIAL)\n" +
		"  Token: tok-1111\n" +
		"  Deps:  [true]\n"
	if buf.String() != want {
		t.Errorf("formatEvent() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestFormatEventError(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[3])

	if !strings.Contains(buf.String(), "Error (target): registration refused") {
		t.Errorf("missing error line:\n%s", buf.String())
	}
}

func TestRunViewFiltersByOwner(t *testing.T) {
	path := createTestTrace(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunView(path, log.Filter{OwnerID: "owner-cccc"}, &buf); err != nil {
		t.Fatalf("RunView() error = %v", err)
	}

	output := buf.String()
	if strings.Contains(output, "click") {
		t.Errorf("output should not contain other owners:\n%s", output)
	}
	if n := strings.Count(output, "[owner:owner-cc]"); n != 2 {
		t.Errorf("owner lines = %d, want 2", n)
	}
}

func TestBuildFilter(t *testing.T) {
	filter, err := BuildFilter(FilterOptions{
		Owner:     "o",
		Op:        "deregister",
		TimeStart: "2026-01-28T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("BuildFilter() error = %v", err)
	}
	if filter.OwnerID != "o" {
		t.Errorf("OwnerID = %q, want o", filter.OwnerID)
	}
	if filter.Op == nil || *filter.Op != log.OpDeregister {
		t.Errorf("Op = %v, want DEREGISTER", filter.Op)
	}
	if filter.TimeStart == nil || !filter.TimeStart.Equal(time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("TimeStart = %v", filter.TimeStart)
	}
}

func TestBuildFilterInvalid(t *testing.T) {
	tests := []FilterOptions{
		{Op: "subscribe"},
		{TimeStart: "yesterday"},
		{TimeEnd: "tomorrow"},
	}
	for _, opts := range tests {
		if _, err := BuildFilter(opts); err == nil {
			t.Errorf("BuildFilter(%+v) error = nil, want error", opts)
		}
	}
}

func TestExportJSONL(t *testing.T) {
	path := createTestTrace(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunExport(path, "jsonl", "", log.Filter{ErrorsOnly: true}, &buf); err != nil {
		t.Fatalf("RunExport() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}

	var e exportEvent
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if e.Op != "REGISTER" || e.Reason != "DEPS_CHANGED" {
		t.Errorf("op/reason = %s/%s, want REGISTER/DEPS_CHANGED", e.Op, e.Reason)
	}
	if e.Error != "registration refused" || e.ErrorSource != "target" {
		t.Errorf("error = %q (%q)", e.Error, e.ErrorSource)
	}
}

func TestExportCSV(t *testing.T) {
	path := createTestTrace(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunExport(path, "csv", "", log.Filter{}, &buf); err != nil {
		t.Fatalf("RunExport() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv ReadAll() error = %v", err)
	}
	if len(records) != len(sampleEvents())+1 {
		t.Fatalf("records = %d, want %d", len(records), len(sampleEvents())+1)
	}
	if records[0][0] != "timestamp" {
		t.Errorf("header[0] = %q, want timestamp", records[0][0])
	}
	if records[1][3] != "REGISTER" || records[1][6] != "true" {
		t.Errorf("row 1 = %v", records[1])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestTrace(t, sampleEvents())
	if err := RunExport(path, "xml", "", log.Filter{}, &bytes.Buffer{}); err == nil {
		t.Error("RunExport() error = nil, want error")
	}
}

func TestRunFilter(t *testing.T) {
	path := createTestTrace(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.sclog")

	op := log.OpRegister
	n, err := RunFilter(path, out, log.Filter{Op: &op})
	if err != nil {
		t.Fatalf("RunFilter() error = %v", err)
	}
	if n != 3 {
		t.Errorf("RunFilter() = %d, want 3", n)
	}

	r, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer r.Close()
	events, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(events) != 3 {
		t.Errorf("len(events) = %d, want 3", len(events))
	}
}

func TestRunFilterRequiresOutput(t *testing.T) {
	path := createTestTrace(t, sampleEvents())
	if _, err := RunFilter(path, "", log.Filter{}); err == nil {
		t.Error("RunFilter() error = nil, want error")
	}
}

func TestCollectStats(t *testing.T) {
	path := createTestTrace(t, sampleEvents())

	stats, err := CollectStats(path)
	if err != nil {
		t.Fatalf("CollectStats() error = %v", err)
	}

	if stats.TotalEvents != 6 {
		t.Errorf("TotalEvents = %d, want 6", stats.TotalEvents)
	}
	if stats.EventsByOp[log.OpRegister] != 3 {
		t.Errorf("REGISTER = %d, want 3", stats.EventsByOp[log.OpRegister])
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}

	a := stats.Owners["owner-aaaa-bbbb"]
	if a.Registers != 1 || a.Deregisters != 1 {
		t.Errorf("owner a registered/removed = %d/%d, want 1/1", a.Registers, a.Deregisters)
	}
	if a.Outstanding() != 0 {
		t.Errorf("owner a Outstanding() = %d, want 0", a.Outstanding())
	}

	c := stats.Owners["owner-cccc"]
	if !c.Disposed || c.Outstanding() != 1 {
		t.Errorf("owner c disposed/outstanding = %v/%d, want true/1", c.Disposed, c.Outstanding())
	}
}

func TestRunStatsReportsLeak(t *testing.T) {
	path := createTestTrace(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats() error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"Total Events: 6",
		"REGISTER:",
		"DEPS_CHANGED:",
		"Owners: 2",
		"[owner-cc] 2 events, 1 registered, 0 removed",
		"LEAKED: 1 handler(s) outstanding after dispose",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}
