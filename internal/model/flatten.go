package model

// FlatRegion is a region with a path breadcrumb instead of children.
type FlatRegion struct {
	Name   string   `yaml:"name"             json:"name"`
	Bounds *[4]int  `yaml:"b,omitempty"      json:"b,omitempty"`
	Roles  string   `yaml:"roles,omitempty"  json:"roles,omitempty"`
	Accept []string `yaml:"accept,omitempty" json:"accept,omitempty"`
	Files  int      `yaml:"files,omitempty"  json:"files,omitempty"`
	Path   string   `yaml:"p"                json:"p"`
}

// FlattenRegions converts a region tree into a flat list.
// Each region gets a path of ancestor names joined with " > ".
func FlattenRegions(regions []Region) []FlatRegion {
	var result []FlatRegion
	for _, r := range regions {
		flattenRecursive(r, "", &result)
	}
	return result
}

func flattenRecursive(r Region, parentPath string, result *[]FlatRegion) {
	currentPath := r.Name
	if parentPath != "" {
		currentPath = parentPath + " > " + r.Name
	}

	flat := FlatRegion{
		Name:   r.Name,
		Bounds: r.Bounds,
		Roles:  roles(r),
		Path:   currentPath,
	}
	if r.Source != nil {
		flat.Files = len(r.Source.Files) + len(r.Source.Remote)
	}
	if r.Target != nil {
		flat.Accept = r.Target.Accept
	}
	*result = append(*result, flat)

	for _, child := range r.Children {
		flattenRecursive(child, currentPath, result)
	}
}

func roles(r Region) string {
	switch {
	case r.Source != nil && r.Target != nil:
		return "source+target"
	case r.Source != nil:
		return "source"
	case r.Target != nil:
		return "target"
	}
	return ""
}

// FilterWithin keeps the regions whose bounds overlap bbox. Regions without
// bounds never match.
func FilterWithin(regions []FlatRegion, bbox [4]int) []FlatRegion {
	area := RectFromBounds(bbox)
	var result []FlatRegion
	for _, r := range regions {
		if r.Bounds == nil {
			continue
		}
		if !area.Intersect(RectFromBounds(*r.Bounds)).Empty() {
			result = append(result, r)
		}
	}
	return result
}
