package scope

import "testing"

func TestDepsEqual(t *testing.T) {
	type point struct{ X, Y int }

	tests := []struct {
		name string
		a, b Deps
		want bool
	}{
		{"both nil", nil, nil, false},
		{"nil vs empty", nil, Deps{}, false},
		{"both empty", Deps{}, Deps{}, true},
		{"same scalars", On(true, 3, "x"), On(true, 3, "x"), true},
		{"different value", On(true), On(false), false},
		{"different length", On(1), On(1, 2), false},
		{"order matters", On(1, 2), On(2, 1), false},
		{"type matters", On(1), On(int64(1)), false},
		{"nil elements", On(nil), On(nil), true},
		{"nil vs value", On(nil), On(0), false},
		{"structs", On(point{1, 2}), On(point{1, 2}), true},
		{"slices compared structurally", On([]int{1, 2}), On([]int{1, 2}), true},
		{"maps compared structurally", On(map[string]int{"a": 1}), On(map[string]int{"a": 2}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDepsConstructors(t *testing.T) {
	if On() == nil {
		t.Error("On() = nil, want empty snapshot")
	}
	if !Always().IsAlways() {
		t.Error("Always().IsAlways() = false, want true")
	}
	if Once().IsAlways() {
		t.Error("Once().IsAlways() = true, want false")
	}
}

func TestDepsCloneIsIndependent(t *testing.T) {
	values := []any{1, 2}
	d := On(values...)
	c := d.Clone()

	values[0] = 99

	if c[0] != 1 {
		t.Errorf("clone changed with source slice: %v", c)
	}
	if Always().Clone() != nil {
		t.Error("Clone of nil snapshot should stay nil")
	}
}

func TestDepsStrings(t *testing.T) {
	got := On(true, 3, "x").Strings()
	want := []string{"true", "3", "x"}
	if len(got) != len(want) {
		t.Fatalf("Strings() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Strings()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if Always().Strings() != nil {
		t.Error("Strings() of nil snapshot should be nil")
	}
}
