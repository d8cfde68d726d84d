package platform

import "testing"

func TestSchemeFromPortal(t *testing.T) {
	cases := map[uint32]ColorScheme{0: SchemeUnknown, 1: SchemeDark, 2: SchemeLight, 9: SchemeUnknown}
	for in, want := range cases {
		if got := schemeFromPortal(in); got != want {
			t.Errorf("schemeFromPortal(%d) = %v, want %v", in, got, want)
		}
	}
	if SchemeDark.String() != "dark" || SchemeUnknown.String() != "unknown" {
		t.Fatal("String")
	}
}
