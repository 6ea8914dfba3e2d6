package dl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/virta-dl/virta/media"
)

type selectionKind int

const (
	selectionEmpty selectionKind = iota
	selectionFailed
	selectionStreams
)

// Selection is the tagged outcome of ranking a clip's flavors: an ordered
// non-empty stream candidate list, an empty result (nothing to select from),
// or a failure carrying a human-readable diagnostic. Callers must handle all
// three variants explicitly.
type Selection struct {
	kind    selectionKind
	streams []*media.Stream
	reason  string
}

// SelectedStreams wraps an ordered candidate list.
func SelectedStreams(streams []*media.Stream) Selection {
	return Selection{kind: selectionStreams, streams: streams}
}

// EmptySelection marks that there were no flavors to select from.
func EmptySelection() Selection {
	return Selection{kind: selectionEmpty}
}

// FailedSelection marks that flavors existed but none survived filtering.
func FailedSelection(reason string) Selection {
	return Selection{kind: selectionFailed, reason: reason}
}

// Empty reports whether there was nothing to select from.
func (s Selection) Empty() bool { return s.kind == selectionEmpty }

// Failed reports whether selection failed with a diagnostic.
func (s Selection) Failed() bool { return s.kind == selectionFailed }

// Streams returns the ordered candidate list, nil unless selection succeeded.
func (s Selection) Streams() []*media.Stream { return s.streams }

// Reason returns the failure diagnostic, empty unless selection failed.
func (s Selection) Reason() string { return s.reason }

// Select ranks flavors under the given constraints and returns the stream
// candidates of the single best flavor, ordered by backend preference.
//
// Quality ceilings are soft: when no flavor satisfies them, selection falls
// back to the full backend-enabled set and picks the flavor with the smallest
// excess over the ceiling rather than failing.
func Select(flavors []*media.Flavor, filters media.Filters, report Reporter) Selection {
	if len(flavors) == 0 {
		return EmptySelection()
	}

	report.Debugf("Available flavors:")
	for _, fl := range flavors {
		report.Debugf("  %s", fl)
	}
	report.Debugf(
		"max_height: %d, max_bitrate: %d",
		filters.MaxHeight.OrElse(0),
		filters.MaxBitrate.OrElse(0),
	)

	enabled := filterByBackend(flavors, filters)
	if len(enabled) == 0 {
		return FailedSelection(backendFailureReason(flavors))
	}

	ranked := rankByQuality(enabled, filters)
	selected := ranked[len(ranked)-1]
	report.Debugf("Selected flavor: %s", selected)

	return SelectedStreams(selected.Streams)
}

// filterByBackend reduces every flavor to the streams served by an enabled
// backend, re-ordered by the preference order of EnabledBackends. Flavors left
// without streams are dropped.
func filterByBackend(flavors []*media.Flavor, filters media.Filters) []*media.Flavor {
	reduced := make([]*media.Flavor, 0, len(flavors))

	for _, fl := range flavors {
		var streams []*media.Stream
		for _, name := range filters.EnabledBackends {
			for _, s := range fl.Streams {
				if s.Backend == name {
					streams = append(streams, s)
				}
			}
		}

		if len(streams) == 0 {
			continue
		}

		clone := *fl
		clone.Streams = streams
		reduced = append(reduced, &clone)
	}

	return reduced
}

// backendFailureReason explains why the backend filter dropped every flavor:
// a usable backend exists but is not enabled, the streams themselves are
// invalid, or there simply is no stream.
func backendFailureReason(flavors []*media.Flavor) string {
	var supported, messages []string

	for _, fl := range flavors {
		for _, s := range fl.Streams {
			if s.Valid() {
				supported = append(supported, s.Backend)
			} else {
				messages = append(messages, s.ErrorMessage)
			}
		}
	}

	if len(supported) > 0 {
		supported = lo.Uniq(supported)
		sort.Strings(supported)
		return fmt.Sprintf("Required backend not enabled. Try: --backend %s", strings.Join(supported, ","))
	}

	if len(messages) > 0 {
		return messages[0]
	}

	return "Stream not found"
}

// rankByQuality sorts flavors ascending by a constraint-dependent key and
// returns them so that the last element is the preferred pick.
//
// Within the ceilings the last element is the best flavor that satisfies
// them. When the ceilings exclude everything, the order is reversed so that
// the last element is instead the flavor closest to the ceiling from above.
func rankByQuality(flavors []*media.Flavor, filters media.Filters) []*media.Flavor {
	maxHeight, heightSet := filters.MaxHeight.Get()
	maxBitrate, bitrateSet := filters.MaxBitrate.Get()

	withinLimits := lo.Filter(flavors, func(fl *media.Flavor, _ int) bool {
		return (!bitrateSet || fl.Bitrate.OrElse(0) <= maxBitrate) &&
			(!heightSet || fl.Height.OrElse(0) <= maxHeight)
	})

	acceptable := withinLimits
	reverse := false
	if len(withinLimits) == 0 {
		acceptable = flavors
		reverse = heightSet || bitrateSet
	}

	var key func(fl *media.Flavor) (int, int)
	switch {
	case heightSet && bitrateSet:
		key = func(fl *media.Flavor) (int, int) { return fl.Height.OrElse(0), fl.Bitrate.OrElse(0) }
	case heightSet:
		// Prefer the lower bitrate among flavors of equal height.
		key = func(fl *media.Flavor) (int, int) { return fl.Height.OrElse(0), -fl.Bitrate.OrElse(0) }
	default:
		key = func(fl *media.Flavor) (int, int) { return fl.Bitrate.OrElse(0), 0 }
	}

	ranked := make([]*media.Flavor, len(acceptable))
	copy(ranked, acceptable)

	sort.SliceStable(ranked, func(i, j int) bool {
		ai, bi := key(ranked[i])
		aj, bj := key(ranked[j])
		if reverse {
			return ai > aj || (ai == aj && bi > bj)
		}
		return ai < aj || (ai == aj && bi < bj)
	})

	return ranked
}
