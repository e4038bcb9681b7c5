package model

import "testing"

func bounds(x, y, w, h int) *[4]int { return &[4]int{x, y, w, h} }

func TestFlattenRegions_Basic(t *testing.T) {
	regions := []Region{
		{Name: "gallery", Bounds: bounds(0, 0, 100, 30), Source: &SourceSpec{Files: []string{"/a.png", "/b.png"}}},
		{Name: "pose", Bounds: bounds(0, 30, 100, 20), Target: &TargetSpec{Accept: []string{"image/*"}}},
	}
	result := FlattenRegions(regions)
	if len(result) != 2 {
		t.Fatalf("expected 2 flat regions, got %d", len(result))
	}
	if result[0].Path != "gallery" || result[0].Roles != "source" || result[0].Files != 2 {
		t.Errorf("unexpected gallery %+v", result[0])
	}
	if result[1].Roles != "target" || len(result[1].Accept) != 1 {
		t.Errorf("unexpected pose %+v", result[1])
	}
}

func TestFlattenRegions_NestedPath(t *testing.T) {
	regions := []Region{
		{
			Name: "window",
			Children: []Region{
				{
					Name:   "card",
					Source: &SourceSpec{Remote: []RemoteSpec{{URI: "https://example.com/x", MimeType: "text/html"}}},
					Target: &TargetSpec{},
					Children: []Region{
						{Name: "label"},
					},
				},
			},
		},
	}
	result := FlattenRegions(regions)
	if len(result) != 3 {
		t.Fatalf("expected 3 flat regions, got %d", len(result))
	}
	want := []string{"window", "window > card", "window > card > label"}
	for i, p := range want {
		if result[i].Path != p {
			t.Errorf("region %d: expected path %q, got %q", i, p, result[i].Path)
		}
	}
	if result[1].Roles != "source+target" || result[1].Files != 1 {
		t.Errorf("unexpected card %+v", result[1])
	}
	if result[0].Roles != "" {
		t.Errorf("plain region should have no roles, got %q", result[0].Roles)
	}
}

func TestFlattenRegions_Empty(t *testing.T) {
	if result := FlattenRegions(nil); len(result) != 0 {
		t.Errorf("expected no regions, got %d", len(result))
	}
}

func TestFilterWithin(t *testing.T) {
	flat := []FlatRegion{
		{Name: "left", Bounds: bounds(0, 0, 50, 50)},
		{Name: "right", Bounds: bounds(100, 0, 50, 50)},
		{Name: "floating"},
	}
	got := FilterWithin(flat, [4]int{40, 10, 20, 20})
	if len(got) != 1 || got[0].Name != "left" {
		t.Errorf("expected only left, got %+v", got)
	}
	if got := FilterWithin(flat, [4]int{0, 0, 200, 200}); len(got) != 2 {
		t.Errorf("expected both bounded regions, got %+v", got)
	}
}
