package domain

type Status string

const (
	StatusUnattempted Status = "unattempted"
	StatusFlashed     Status = "flashed"
	StatusSent        Status = "sent"
	StatusProject     Status = "project"
)

// Statuses is the tap cycle, in order. Cycling advances through this
// slice and wraps back to unattempted.
var Statuses = []Status{StatusUnattempted, StatusFlashed, StatusSent, StatusProject}

// Next returns the status that follows s in the tap cycle. An
// unrecognized status cycles to unattempted.
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusUnattempted
}

// Known reports whether s is one of the four recognized statuses.
func (s Status) Known() bool {
	for _, st := range Statuses {
		if st == s {
			return true
		}
	}
	return false
}

type ColorKey string

const (
	ColorGreen  ColorKey = "green"
	ColorBlue   ColorKey = "blue"
	ColorPurple ColorKey = "purple"
	ColorRed    ColorKey = "red"
	ColorYellow ColorKey = "yellow"
	ColorIrnBru ColorKey = "irnBru"
	ColorWasp   ColorKey = "wasp"
	ColorMurple ColorKey = "murple"
)

// ColorOption describes one palette entry. Gradient entries carry two
// hex values; solid entries carry one.
type ColorOption struct {
	Label    string
	Hex      []string
	Gradient bool
}

// ColorOptions is the fixed circuit color palette. Unknown keys are a
// rendering concern, not a data error: the store accepts any key and
// renderers fall back to a neutral style.
var ColorOptions = map[ColorKey]ColorOption{
	ColorGreen:  {Label: "Green", Hex: []string{"#32CD32"}},
	ColorBlue:   {Label: "Blue", Hex: []string{"#1E90FF"}},
	ColorPurple: {Label: "Purple", Hex: []string{"#A020F0"}},
	ColorRed:    {Label: "Red", Hex: []string{"#DC143C"}},
	ColorYellow: {Label: "Yellow", Hex: []string{"#FFD700"}},
	ColorIrnBru: {Label: "IrnBru (Blue/Orange)", Hex: []string{"#0099CC", "#FF6600"}, Gradient: true},
	ColorWasp:   {Label: "Wasp (Yellow/Black)", Hex: []string{"#FFD700", "#000000"}, Gradient: true},
	ColorMurple: {Label: "Murple (Mint/Purple)", Hex: []string{"#4FFFB0", "#800080"}, Gradient: true},
}

// Known reports whether k is in the palette.
func (k ColorKey) Known() bool {
	_, ok := ColorOptions[k]
	return ok
}

// Label returns the palette display label, or the raw key for unknown
// colors.
func (k ColorKey) Label() string {
	if opt, ok := ColorOptions[k]; ok {
		return opt.Label
	}
	return string(k)
}
