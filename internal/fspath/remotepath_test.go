package fspath

import "testing"

func TestNextPathComponent_Absolute(t *testing.T) {
	path := RemotePath("/a/b/")
	index := 0

	component, ok := path.NextPathComponent(&index)
	if !ok || component != "a" {
		t.Errorf("first component = %q ok=%v, want a true", component, ok)
	}

	component, ok = path.NextPathComponent(&index)
	if !ok || component != "b" {
		t.Errorf("second component = %q ok=%v, want b true", component, ok)
	}

	component, ok = path.NextPathComponent(&index)
	if ok || !component.IsEmpty() {
		t.Errorf("exhausted component = %q ok=%v, want empty false", component, ok)
	}

	// A bare root yields nothing.
	path = RemotePath("/")
	index = 0
	component, ok = path.NextPathComponent(&index)
	if ok || !component.IsEmpty() {
		t.Errorf("root component = %q ok=%v, want empty false", component, ok)
	}
}

func TestNextPathComponent_Relative(t *testing.T) {
	path := RemotePath("a/b/")
	index := 0

	component, ok := path.NextPathComponent(&index)
	if !ok || component != "a" {
		t.Errorf("first component = %q ok=%v, want a true", component, ok)
	}

	component, ok = path.NextPathComponent(&index)
	if !ok || component != "b" {
		t.Errorf("second component = %q ok=%v, want b true", component, ok)
	}

	component, ok = path.NextPathComponent(&index)
	if ok || !component.IsEmpty() {
		t.Errorf("exhausted component = %q ok=%v, want empty false", component, ok)
	}

	// Empty path yields nothing.
	path = RemotePath("")
	index = 0
	component, ok = path.NextPathComponent(&index)
	if ok || !component.IsEmpty() {
		t.Errorf("empty component = %q ok=%v, want empty false", component, ok)
	}
}

func TestRemotePath_IsAbsolute(t *testing.T) {
	if !RemotePath("/a").IsAbsolute() {
		t.Error("/a should be absolute")
	}
	if RemotePath("a/b").IsAbsolute() {
		t.Error("a/b should be relative")
	}
	if RemotePath("").IsAbsolute() {
		t.Error("empty path should not be absolute")
	}
}

func TestRemotePath_AppendComponent(t *testing.T) {
	cases := []struct {
		base RemotePath
		name string
		want RemotePath
	}{
		{"", "a", "a"},
		{"/", "a", "/a"},
		{"/a", "b", "/a/b"},
		{"a/", "b", "a/b"},
	}
	for _, tc := range cases {
		if got := tc.base.AppendComponent(tc.name); got != tc.want {
			t.Errorf("%q.AppendComponent(%q) = %q, want %q", tc.base, tc.name, got, tc.want)
		}
	}
}

func TestRemotePath_Compare(t *testing.T) {
	if got := RemotePath("a/b").Compare(RemotePath("A/B"), true); got != 0 {
		t.Errorf("case-insensitive remote compare = %d, want 0", got)
	}
	if got := RemotePath("a/b").Compare(RemotePath("A/B"), false); got == 0 {
		t.Error("case-sensitive remote compare treated a/b and A/B as equal")
	}
}
