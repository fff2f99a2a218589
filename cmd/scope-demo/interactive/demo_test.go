package interactive

import (
	"bytes"
	"strings"
	"testing"
)

func newTestDemo(t *testing.T, startEnabled bool) (*Demo, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	d := New(Config{StartEnabled: startEnabled}, &buf)
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return d, &buf
}

func TestDemoMountAllAndClick(t *testing.T) {
	d, buf := newTestDemo(t, true)

	d.Execute("mount")
	if got := d.window.Count("click"); got != 3 {
		t.Fatalf("handlers after mount = %d, want 3", got)
	}

	buf.Reset()
	d.Execute("click 2")
	output := buf.String()
	if strings.Count(output, "click -> 3 handler(s)") != 2 {
		t.Errorf("click output:\n%s", output)
	}
	if !strings.Contains(output, "counter: click #2") {
		t.Errorf("missing counter callback:\n%s", output)
	}
}

func TestDemoToggleRebindsCounter(t *testing.T) {
	d, buf := newTestDemo(t, true)

	d.Execute("mount counter")
	d.Execute("toggle")
	if got := d.window.Count("click"); got != 0 {
		t.Errorf("handlers after disabling = %d, want 0", got)
	}
	if !strings.Contains(buf.String(), "enabled=false") {
		t.Errorf("toggle output:\n%s", buf.String())
	}

	d.Execute("toggle")
	if got := d.window.Count("click"); got != 1 {
		t.Errorf("handlers after enabling = %d, want 1", got)
	}
}

func TestDemoRenderKeepsSingleHandler(t *testing.T) {
	d, _ := newTestDemo(t, true)

	d.Execute("mount")
	for range 5 {
		d.Execute("render")
	}
	if got := d.window.Count("click"); got != 3 {
		t.Errorf("handlers after renders = %d, want 3", got)
	}
	if got := d.registry.Count(); got != 3 {
		t.Errorf("bindings after renders = %d, want 3", got)
	}
}

func TestDemoUnmountReleasesAndRemounts(t *testing.T) {
	d, buf := newTestDemo(t, true)

	d.Execute("mount tracker always")
	d.Execute("unmount tracker")
	if got := d.window.Count("click"); got != 1 {
		t.Errorf("handlers after unmount = %d, want 1", got)
	}

	d.Execute("unmount tracker")
	if !strings.Contains(buf.String(), "tracker: not mounted") {
		t.Errorf("second unmount output:\n%s", buf.String())
	}

	d.Execute("mount tracker")
	if got := d.window.Count("click"); got != 2 {
		t.Errorf("handlers after remount = %d, want 2", got)
	}
}

func TestDemoStatus(t *testing.T) {
	d, buf := newTestDemo(t, false)

	d.Execute("mount counter")
	buf.Reset()
	d.Execute("status")

	output := buf.String()
	for _, want := range []string{
		"Window: 0 click handler(s)",
		"counter  mounted, enabled=false clicks=0 renders=1",
		"tracker  unmounted",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("status missing %q:\n%s", want, output)
		}
	}
}

func TestDemoUnknownInput(t *testing.T) {
	d, buf := newTestDemo(t, true)

	if !d.Execute("frobnicate") {
		t.Error("Execute() = false for unknown command")
	}
	d.Execute("mount gizmo")
	d.Execute("click zero")

	output := buf.String()
	for _, want := range []string{"Unknown command: frobnicate", "Unknown widget: gizmo", "Invalid click count: zero"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	if d.Execute("quit") {
		t.Error("Execute(quit) = true, want false")
	}
}
