package assets

import (
	"encoding/json"
	"testing"
)

func TestCatalogSourcesAreEmbedded(t *testing.T) {
	var doc struct {
		Overlays []struct {
			Name   string `json:"name"`
			Source string `json:"source"`
		} `json:"overlays"`
	}
	if err := json.Unmarshal(Catalog(), &doc); err != nil {
		t.Fatalf("catalog.json: %v", err)
	}
	if len(doc.Overlays) == 0 {
		t.Fatal("embedded catalog is empty")
	}
	for _, o := range doc.Overlays {
		img, err := Image(Scheme + o.Source)
		if err != nil {
			t.Fatalf("%s: %v", o.Name, err)
		}
		if img.Bounds().Empty() {
			t.Fatalf("%s: empty image", o.Name)
		}
	}
}

func TestImageUnknown(t *testing.T) {
	if _, err := Image("builtin:overlays/missing.png"); err == nil {
		t.Fatal("expected error for missing asset")
	}
}

func TestOverlaysSorted(t *testing.T) {
	names := Overlays()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("not sorted: %v", names)
		}
	}
}
