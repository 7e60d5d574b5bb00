package domain

import "strings"

// StopsBucket groups offers by number of connections for filtering.
type StopsBucket string

// Stop buckets.
const (
	StopsNonstop StopsBucket = "nonstop"
	StopsOne     StopsBucket = "1 stop"
	StopsTwoPlus StopsBucket = "2+ stops"
)

// StopsBucketFor maps a stop count to its bucket.
func StopsBucketFor(stops int) StopsBucket {
	switch {
	case stops <= 0:
		return StopsNonstop
	case stops == 1:
		return StopsOne
	default:
		return StopsTwoPlus
	}
}

// IsValid checks if the bucket is one of the known values.
func (b StopsBucket) IsValid() bool {
	switch b {
	case StopsNonstop, StopsOne, StopsTwoPlus:
		return true
	default:
		return false
	}
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewRange creates a range from min to max.
func NewRange(min, max float64) *Range {
	return &Range{Min: min, Max: max}
}

// Contains checks if v falls within the range. A nil range contains everything.
func (r *Range) Contains(v float64) bool {
	if r == nil {
		return true
	}
	return v >= r.Min && v <= r.Max
}

// IsValid returns false when Min > Max.
func (r *Range) IsValid() bool {
	return r == nil || r.Min <= r.Max
}

// Presentation defaults for the filter panel.
const (
	DefaultMaxPrice         = 5000
	DefaultMaxHour          = 24
	DefaultMaxDurationHours = 24
)

// SearchFilters restricts a result list. Nil ranges and empty sets mean
// "no restriction on that dimension"; all dimensions are ANDed.
type SearchFilters struct {
	// PriceRange restricts the cash total
	PriceRange *Range `json:"priceRange,omitempty"`

	// DepartureTimeWindow restricts the hour (0-24) of the first departure
	DepartureTimeWindow *Range `json:"departureTimeWindow,omitempty"`

	// ArrivalTimeWindow restricts the hour (0-24) of the last arrival
	ArrivalTimeWindow *Range `json:"arrivalTimeWindow,omitempty"`

	// DurationRange restricts the total duration in hours
	DurationRange *Range `json:"durationRange,omitempty"`

	// Stops keeps offers whose stop bucket is listed
	Stops []StopsBucket `json:"stops,omitempty"`

	// Airlines keeps offers whose primary carrier is listed (case-insensitive)
	Airlines []string `json:"airlines,omitempty"`

	// CabinClass keeps offers whose cabin is listed (case-insensitive)
	CabinClass []string `json:"cabinClass,omitempty"`
}

// DefaultSearchFilters returns the filter state a results page starts with:
// full ranges and no set restrictions.
func DefaultSearchFilters() SearchFilters {
	return SearchFilters{
		PriceRange:          NewRange(0, DefaultMaxPrice),
		DepartureTimeWindow: NewRange(0, DefaultMaxHour),
		ArrivalTimeWindow:   NewRange(0, DefaultMaxHour),
		DurationRange:       NewRange(0, DefaultMaxDurationHours),
	}
}

// IsEmpty reports whether the filters restrict nothing.
func (f *SearchFilters) IsEmpty() bool {
	return f == nil || (f.PriceRange == nil &&
		f.DepartureTimeWindow == nil &&
		f.ArrivalTimeWindow == nil &&
		f.DurationRange == nil &&
		len(f.Stops) == 0 &&
		len(f.Airlines) == 0 &&
		len(f.CabinClass) == 0)
}

// Validate checks that every range has Min <= Max and every stop bucket is known.
func (f *SearchFilters) Validate() error {
	if f == nil {
		return nil
	}

	ranges := []struct {
		name string
		r    *Range
	}{
		{"priceRange", f.PriceRange},
		{"departureTimeWindow", f.DepartureTimeWindow},
		{"arrivalTimeWindow", f.ArrivalTimeWindow},
		{"durationRange", f.DurationRange},
	}
	for _, rg := range ranges {
		if !rg.r.IsValid() {
			return WrapInvalidRequest("%s min must not exceed max", rg.name)
		}
	}

	for _, b := range f.Stops {
		if !b.IsValid() {
			return WrapInvalidRequest("unknown stops value %q", b)
		}
	}
	return nil
}

// MatchesOffer checks if an offer satisfies every restricted dimension.
func (f *SearchFilters) MatchesOffer(offer FlightOffer) bool {
	if f == nil {
		return true
	}

	if !f.PriceRange.Contains(offer.CashPrice()) {
		return false
	}

	if !f.DepartureTimeWindow.Contains(float64(offer.DepartureTime().Hour())) {
		return false
	}

	if !f.ArrivalTimeWindow.Contains(float64(offer.ArrivalTime().Hour())) {
		return false
	}

	if !f.DurationRange.Contains(offer.DurationHours()) {
		return false
	}

	if len(f.Stops) > 0 && !containsStops(f.Stops, offer.StopsBucket()) {
		return false
	}

	if len(f.Airlines) > 0 && !containsFold(f.Airlines, offer.PrimaryCarrier()) {
		return false
	}

	if len(f.CabinClass) > 0 && !containsFold(f.CabinClass, offer.Cabin()) {
		return false
	}

	return true
}

func containsStops(buckets []StopsBucket, b StopsBucket) bool {
	for _, candidate := range buckets {
		if candidate == b {
			return true
		}
	}
	return false
}

func containsFold(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}
