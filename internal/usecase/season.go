package usecase

import (
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// SeasonFor returns the demand season of a departure by calendar month:
// Jun-Aug and Dec are peak, Jan-Feb off-peak, everything else shoulder.
func SeasonFor(departure time.Time) domain.Season {
	switch departure.Month() {
	case time.June, time.July, time.August, time.December:
		return domain.SeasonPeak
	case time.January, time.February:
		return domain.SeasonOffPeak
	default:
		return domain.SeasonShoulder
	}
}
