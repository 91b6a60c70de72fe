package gauge

// Zone is a colored sub-range of the domain. Membership is half-open:
// From <= v < To.
type Zone struct {
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Color Role    `yaml:"color"`
}

// Contains reports whether v lies in [From, To).
func (z Zone) Contains(v float64) bool {
	return v >= z.From && v < z.To
}

// DefaultZones is the green/amber/red banding used when a gauge is
// configured without zones on a 0..100 scale.
func DefaultZones() []Zone {
	return []Zone{
		{From: 0, To: 60, Color: RoleSuccess},
		{From: 60, To: 85, Color: RoleWarning},
		{From: 85, To: 100, Color: RoleDanger},
	}
}

// ResolveZone returns the first zone containing v, or the last zone when
// none does (this covers v == Max). It returns nil for an empty list.
func ResolveZone(v float64, zones []Zone) *Zone {
	if len(zones) == 0 {
		return nil
	}
	for i := range zones {
		if zones[i].Contains(v) {
			z := zones[i]
			return &z
		}
	}
	z := zones[len(zones)-1]
	return &z
}
