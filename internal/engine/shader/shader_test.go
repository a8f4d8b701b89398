package shader

import (
	"reflect"
	"testing"
)

func TestInfoLog(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("0:12(3): error: syntax error\n\x00\x00"), "0:12(3): error: syntax error"},
		{[]byte("link failed"), "link failed"},
		{[]byte{0}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := infoLog(tt.in); got != tt.want {
			t.Errorf("infoLog(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLookupReportsMissing(t *testing.T) {
	active := map[string]int32{"uModel": 0, "uColor": 3}
	get := func(name string) int32 {
		if loc, ok := active[name]; ok {
			return loc
		}
		return -1
	}

	locs, missing := lookup(get, []string{"uModel", "uDoubleSided", "uColor", "uLightPos"})

	want := map[string]int32{"uModel": 0, "uDoubleSided": -1, "uColor": 3, "uLightPos": -1}
	if !reflect.DeepEqual(locs, want) {
		t.Errorf("locations = %v, want %v", locs, want)
	}
	if !reflect.DeepEqual(missing, []string{"uDoubleSided", "uLightPos"}) {
		t.Errorf("missing = %v", missing)
	}
}
