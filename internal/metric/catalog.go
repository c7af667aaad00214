package metric

import (
	"slices"
	"strings"
	"sync"
)

// distanceAbbreviations lists the recognised spellings of each distance unit.
// The order is stable and drives option-list order.
//
//nolint:gochecknoglobals // Immutable unit catalog.
var distanceAbbreviations = map[DistanceUnit][]string{
	Mile:      {"mi", "mile"},
	Kilometer: {"km", "kilometer"},
	Meter:     {"m", "meter"},
	Foot:      {"ft", "foot"},
	Marathon:  {"marathon"},
	Century:   {"century"},
}

// durationAbbreviations lists the recognised spellings of each duration unit.
//
//nolint:gochecknoglobals // Immutable unit catalog.
var durationAbbreviations = map[DurationUnit][]string{
	Second: {"second", "sec", "s"},
	Minute: {"minute", "min", "m"},
	Hour:   {"hour", "hr", "h"},
	Day:    {"d", "day"},
	Week:   {"week", "wk", "w"},
	Month:  {"month"},
}

// compactDistances are the distance letters of the compact pace form ("kph", "mpw").
//
//nolint:gochecknoglobals // Immutable unit catalog.
var compactDistances = []struct {
	letter string
	unit   DistanceUnit
}{
	{"k", Kilometer},
	{"m", Mile},
}

// compactDurations are the duration letters of the compact pace form.
//
//nolint:gochecknoglobals // Immutable unit catalog.
var compactDurations = []struct {
	letter string
	unit   DurationUnit
}{
	{"w", Week},
	{"d", Day},
	{"h", Hour},
	{"m", Minute},
	{"s", Second},
}

// AbbreviateDistance returns the recognised spellings of unit.
func AbbreviateDistance(unit DistanceUnit) []string {
	return slices.Clone(distanceAbbreviations[unit])
}

// AbbreviateDuration returns the recognised spellings of unit.
func AbbreviateDuration(unit DurationUnit) []string {
	return slices.Clone(durationAbbreviations[unit])
}

// PluralizeDistance returns the plural of a distance spelling. Short
// abbreviations are invariant.
func PluralizeDistance(name string) string {
	switch name {
	case "mi", "ft", "m", "km":
		return name
	case "foot":
		return "feet"
	case "century":
		return "centuries"
	default:
		return name + "s"
	}
}

// PluralizeDuration returns the plural of a duration spelling. Short
// abbreviations are invariant.
func PluralizeDuration(name string) string {
	switch name {
	case "w", "h", "d", "s", "m", "min":
		return name
	default:
		return name + "s"
	}
}

// DepluralizeDistance strips plural endings from distance text.
func DepluralizeDistance(text string) string {
	text = strings.ReplaceAll(text, "feet", "foot")
	text = strings.ReplaceAll(text, "centuries", "century")
	return strings.TrimSuffix(text, "s")
}

// catalog is the precomputed, read-only unit-name table.
type catalog struct {
	paces   []string
	plurals map[string]string
	options map[Kind][]string
}

//nolint:gochecknoglobals // Built once on first use and never mutated.
var loadCatalog = sync.OnceValue(buildCatalog)

func buildCatalog() *catalog {
	c := &catalog{
		plurals: make(map[string]string),
		options: make(map[Kind][]string),
	}

	for _, unit := range Distances {
		for _, name := range distanceAbbreviations[unit] {
			c.plurals[name] = PluralizeDistance(name)
		}
	}
	for _, unit := range Durations {
		for _, name := range durationAbbreviations[unit] {
			c.plurals[name] = PluralizeDuration(name)
		}
	}

	for _, sep := range Separators {
		for _, distance := range Distances {
			for _, d := range distanceAbbreviations[distance] {
				for _, duration := range Durations {
					for _, t := range durationAbbreviations[duration] {
						if d == t {
							continue
						}
						c.addPace(d+string(sep)+t, PluralizeDistance(d)+string(sep)+t)
					}
				}
			}
		}
		for _, duration := range Durations {
			for _, t := range durationAbbreviations[duration] {
				for _, distance := range Distances {
					for _, d := range distanceAbbreviations[distance] {
						if d == t {
							continue
						}
						c.addPace(t+string(sep)+d, PluralizeDuration(t)+string(sep)+d)
					}
				}
			}
		}
	}
	for _, distance := range compactDistances {
		for _, duration := range compactDurations {
			name := distance.letter + "p" + duration.letter
			c.addPace(name, name)
		}
	}

	c.options[KindDistance] = withPlurals(unitNames(Distances), PluralizeDistance)
	c.options[KindDuration] = withPlurals(unitNames(Durations), PluralizeDuration)
	c.options[KindPace] = withPlurals(c.paces, func(name string) string { return c.plurals[name] })

	return c
}

func (c *catalog) addPace(name, plural string) {
	c.paces = append(c.paces, name)
	c.plurals[name] = plural
}

func unitNames[U ~string](units []U) []string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = string(u)
	}
	return names
}

// withPlurals interleaves every name with its plural, dropping duplicates.
func withPlurals(names []string, pluralize func(string) string) []string {
	seen := make(map[string]bool, len(names)*2)
	out := make([]string, 0, len(names)*2)
	for _, name := range names {
		for _, candidate := range []string{name, pluralize(name)} {
			if candidate == "" || seen[candidate] {
				continue
			}
			seen[candidate] = true
			out = append(out, candidate)
		}
	}
	return out
}

// Paces returns every generated pace unit name in catalog order: the
// distance/duration abbreviation cross product for each separator in both
// orders, followed by the compact forms. Pairs whose two abbreviations are
// the same ("m/m", "m per m") are left out because the sides cannot be told
// apart.
func Paces() []string {
	return slices.Clone(loadCatalog().paces)
}

// Options returns the unit names offered for kind, each followed by its
// plural. It returns nil for KindInvalid.
func Options(kind Kind) []string {
	return slices.Clone(loadCatalog().options[kind])
}

// PluralOf returns the registered plural of a catalog name. Names that are
// already plural, or unknown, report false so they are never pluralized twice.
func PluralOf(name string) (string, bool) {
	plural, ok := loadCatalog().plurals[name]
	return plural, ok
}
