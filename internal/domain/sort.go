package domain

// SortKey identifies a result ordering.
type SortKey string

// Available sort keys.
const (
	// SortRecommended orders by estimated value, best first (default)
	SortRecommended SortKey = "recommended"

	// SortPrice orders by cash total, cheapest first
	SortPrice SortKey = "price"

	// SortPriceHigh orders by cash total, most expensive first
	SortPriceHigh SortKey = "priceHigh"

	// SortDuration orders by total duration, shortest first
	SortDuration SortKey = "duration"

	// SortDeparture orders by first departure, earliest first
	SortDeparture SortKey = "departure"

	// SortArrival orders by last arrival, earliest first
	SortArrival SortKey = "arrival"

	// SortStops orders by number of connections, fewest first
	SortStops SortKey = "stops"
)

// SortDirection is the direction a key sorts in.
type SortDirection string

// Sort directions.
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOption is a selectable ordering. Direction is fixed per key.
type SortOption struct {
	Key       SortKey       `json:"key"`
	Label     string        `json:"label"`
	Direction SortDirection `json:"direction"`
}

// SortOptions lists the selectable orderings in display order.
// The first entry is the default.
var SortOptions = []SortOption{
	{Key: SortRecommended, Label: "Recommended", Direction: SortDesc},
	{Key: SortPrice, Label: "Price (Low to High)", Direction: SortAsc},
	{Key: SortPriceHigh, Label: "Price (High to Low)", Direction: SortDesc},
	{Key: SortDuration, Label: "Duration (Shortest)", Direction: SortAsc},
	{Key: SortDeparture, Label: "Departure Time", Direction: SortAsc},
	{Key: SortArrival, Label: "Arrival Time", Direction: SortAsc},
	{Key: SortStops, Label: "Fewest Stops", Direction: SortAsc},
}

// IsValid checks if the key is one of the available sort keys.
func (k SortKey) IsValid() bool {
	switch k {
	case SortRecommended, SortPrice, SortPriceHigh, SortDuration, SortDeparture, SortArrival, SortStops:
		return true
	default:
		return false
	}
}

// DefaultSortOption returns the recommended ordering.
func DefaultSortOption() SortOption {
	return SortOptions[0]
}

// ParseSortOption resolves a key to its SortOption.
// Returns the recommended option if the key is empty or unknown.
func ParseSortOption(key string) SortOption {
	for _, opt := range SortOptions {
		if string(opt.Key) == key {
			return opt
		}
	}
	return DefaultSortOption()
}
