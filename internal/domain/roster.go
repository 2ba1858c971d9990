package domain

// RosterRow is one spreadsheet-shaped row: one player, one character.
// Older snapshots only carry Power.
type RosterRow struct {
	Player    string
	Character string
	Power     int64
	Level     int
	Gear      int
	IsoMax    int
	IsoClass  string
	IsoColor  string
}

// Progress is the indexed progression of one character for one player.
type Progress struct {
	Power    int64  `json:"power"`
	Level    int    `json:"level"`
	Gear     int    `json:"gear"`
	IsoMax   int    `json:"isoMax"`
	IsoClass string `json:"isoClass,omitempty"`
	IsoColor string `json:"isoColor,omitempty"`
}

// Thresholds a present character must meet to count as fully built.
type Thresholds struct {
	MinLevel  int `json:"minLevel" yaml:"minLevel"`
	MinGear   int `json:"minGear" yaml:"minGear"`
	MinIsoMax int `json:"minIsoMax" yaml:"minIsoMax"`
}

// DefaultThresholds returns level 100, gear 19, ISO 13.
func DefaultThresholds() Thresholds {
	return Thresholds{MinLevel: 100, MinGear: 19, MinIsoMax: 13}
}

// Meets reports whether p satisfies every threshold.
func (t Thresholds) Meets(p Progress) bool {
	return p.Level >= t.MinLevel && p.Gear >= t.MinGear && p.IsoMax >= t.MinIsoMax
}
