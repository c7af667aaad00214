// Package autocomplete turns partially typed measurement text into unit
// suggestions.
//
// Text is split into a value prefix ("5 ", "1:30 ", "half ") and a unit tail.
// The tail is matched against catalog unit names and every surviving option
// is returned with the prefix re-attached, so "5 mi" offers "5 mile",
// "5 miles", "5 mi/hour" and so on. When the text already equals one of the
// offered strings and parses, the parsed measurements are reported as
// selected.
package autocomplete

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"

	"github.com/rshade/stride/internal/metric"
)

// MaxResults caps every search result list.
const MaxResults = 50

// MatchMode chooses how a unit tail is compared with option names.
type MatchMode int

const (
	// MatchPrefix keeps options starting with the term.
	MatchPrefix MatchMode = iota
	// MatchSubstring keeps options containing the term anywhere.
	MatchSubstring
)

// ParseMatchMode resolves "prefix" or "substring"; anything else is prefix.
func ParseMatchMode(name string) MatchMode {
	if strings.EqualFold(strings.TrimSpace(name), "substring") {
		return MatchSubstring
	}
	return MatchPrefix
}

// ErrEntryOptions reports an EntryOptions that requires values it forbids.
var ErrEntryOptions = errors.New("allow values cannot be false while require values is true")

//nolint:gochecknoglobals // Compiled once.
var (
	valuePrefix     = regexp.MustCompile(`(?i)^(?:[\d.:\s]+|(?:full|half|quarter)\b)*`)
	leadingGarbage  = regexp.MustCompile(`^[^A-Za-z0-9]+`)
	digitRun        = regexp.MustCompile(`\d+`)
	containsLetters = regexp.MustCompile(`[A-Za-z]`)
)

// allKinds is the order kinds are offered in when nothing restricts them.
//
//nolint:gochecknoglobals // Fixed ordering table.
var allKinds = []metric.Kind{metric.KindDistance, metric.KindDuration, metric.KindPace}

// SearchResult is the outcome of a search.
type SearchResult struct {
	// Results holds at most MaxResults option strings, each prefixed with
	// the value text of the query.
	Results []string
	// Selected holds the measurements the query parses to when the query
	// equals one of Results. It is nil otherwise.
	Selected []metric.Measurement
}

// SearchOptions tunes SearchWith.
type SearchOptions struct {
	Mode MatchMode
	// Limit lowers the result cap. Zero, negative or anything above
	// MaxResults means MaxResults.
	Limit int
}

// EntryOptions describes what free-text entry accepts.
type EntryOptions struct {
	AllowValues   bool
	RequireValues bool
}

// UnitOptions lists the catalog names for the kinds present in restrict, in
// first-seen kind order. An empty restriction, or any invalid measurement in
// it, offers every kind.
func UnitOptions(restrict ...metric.Measurement) []string {
	return optionsForKinds(kindsOf(restrict))
}

func kindsOf(restrict []metric.Measurement) []metric.Kind {
	if len(restrict) == 0 {
		return allKinds
	}

	kinds := make([]metric.Kind, 0, len(allKinds))
	seen := make(map[metric.Kind]bool, len(allKinds))
	for _, m := range restrict {
		if m == nil || !m.IsValid() {
			return allKinds
		}
		if k := m.Kind(); !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func optionsForKinds(kinds []metric.Kind) []string {
	var out []string
	seen := make(map[string]bool)
	for _, kind := range kinds {
		for _, name := range metric.Options(kind) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// OptionsFor lists unit names agreeing in number with m: singular names when
// m's value is exactly one, plural names otherwise. Only m's own kind is
// offered unless m is invalid.
func OptionsFor(m metric.Measurement) []string {
	kinds := allKinds
	plural := true
	if m != nil {
		plural = m.IsPlural()
		if m.IsValid() {
			kinds = []metric.Kind{m.Kind()}
		}
	}

	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, kind := range kinds {
		switch kind {
		case metric.KindDistance:
			for _, u := range metric.Distances {
				add(numbered(string(u), plural, metric.PluralizeDistance))
			}
		case metric.KindDuration:
			for _, u := range metric.Durations {
				add(numbered(string(u), plural, metric.PluralizeDuration))
			}
		case metric.KindPace:
			for _, p := range metric.Paces() {
				if !plural {
					add(p)
					continue
				}
				if pl, ok := metric.PluralOf(p); ok {
					add(pl)
				}
			}
		case metric.KindInvalid:
		}
	}
	return out
}

func numbered(name string, plural bool, pluralize func(string) string) string {
	if plural {
		return pluralize(name)
	}
	return name
}

// UnitText returns the unit tail of text: everything after the leading run
// of digits, '.', ':', whitespace and qualifier words.
func UnitText(text string) string {
	loc := valuePrefix.FindStringIndex(text)
	return text[loc[1]:]
}

// Filter keeps the options matching term case-insensitively. Filtering a
// filtered list again with the same term changes nothing.
func Filter(term string, options []string, mode MatchMode) []string {
	lower := strings.ToLower(term)
	out := make([]string, 0, len(options))
	for _, option := range options {
		candidate := strings.ToLower(option)
		var ok bool
		if mode == MatchSubstring {
			ok = strings.Contains(candidate, lower)
		} else {
			ok = strings.HasPrefix(candidate, lower)
		}
		if ok {
			out = append(out, option)
		}
	}
	return out
}

// Search prefix-matches the unit tail of text against options.
func Search(text string, options []string) SearchResult {
	return SearchWith(text, options, SearchOptions{})
}

// SearchWith is Search with an explicit match mode and result cap.
func SearchWith(text string, options []string, opts SearchOptions) SearchResult {
	limit := opts.Limit
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}

	text = normalizeEntry(text)
	unit := UnitText(text)
	prefix := text[:len(text)-len(unit)]

	filtered := Filter(unit, options, opts.Mode)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	results := make([]string, len(filtered))
	for i, option := range filtered {
		results[i] = prefix + option
	}

	return SearchResult{Results: results, Selected: selected(text, results)}
}

// normalizeEntry drops trailing whitespace after a unit. A value with no
// unit yet keeps its trailing space so completions read "5 mile".
func normalizeEntry(text string) string {
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
	if UnitText(trimmed) == "" {
		return text
	}
	return trimmed
}

func selected(text string, results []string) []metric.Measurement {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, r := range results {
		if !strings.EqualFold(r, text) {
			continue
		}
		ms, err := metric.ParseMeasurements(text)
		if err != nil {
			return nil
		}
		return ms
	}
	return nil
}

// Sanitize cleans typed entry text: leading punctuation is dropped, digits
// are removed when values are not allowed, and a bare unit gets a value of
// 1 when values are required.
func Sanitize(text string, opts EntryOptions) (string, error) {
	if !opts.AllowValues && opts.RequireValues {
		return "", ErrEntryOptions
	}

	text = leadingGarbage.ReplaceAllString(strings.TrimSpace(text), "")

	hasDigits := digitRun.MatchString(text)
	switch {
	case hasDigits && !opts.AllowValues:
		text = strings.TrimSpace(digitRun.ReplaceAllString(text, ""))
	case !hasDigits && opts.RequireValues && containsLetters.MatchString(text):
		text = "1 " + text
	}
	return text, nil
}

// DidYouMean returns the option closest to term by edit distance, or "" if
// none is within max(2, len(term)/3) edits.
func DidYouMean(term string, options []string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return ""
	}

	threshold := max(2, len(term)/3)
	best := ""
	bestDist := threshold + 1
	for _, option := range options {
		d := levenshtein.Distance(term, strings.ToLower(option), nil)
		if d < bestDist {
			bestDist = d
			best = option
		}
	}
	return best
}
