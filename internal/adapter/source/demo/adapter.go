// Package demo provides an offer source that fabricates a fixed set of
// demonstration offers for any route and date.
package demo

import (
	"context"
	"time"

	"github.com/flight-search/flight-value-ranking/internal/domain"
)

// SourceName is the unique identifier for the demonstration source.
const SourceName = "demo"

const dateLayout = "2006-01-02"

// Adapter implements domain.OfferSource with four canned offers:
// an AA nonstop, a UA connection via DEN, a synthetic EK itinerary via DXB
// and a DL business nonstop.
type Adapter struct{}

// NewAdapter creates a demonstration source.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Name returns the source's unique identifier.
func (a *Adapter) Name() string {
	return SourceName
}

// Search returns the demonstration offers placed on the requested route and date.
func (a *Adapter) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewSourceError(SourceName, err)
	}

	day, err := time.Parse(dateLayout, criteria.DepartureDate)
	if err != nil {
		return nil, domain.NewSourceError(SourceName, err)
	}

	at := func(dayOffset int, clock string) string {
		return day.AddDate(0, 0, dayOffset).Format(dateLayout) + "T" + clock
	}
	lastTicketing := day.AddDate(0, 0, -1).Format(dateLayout)
	from, to := criteria.Origin, criteria.Destination

	return []domain.FlightOffer{
		{
			ID:                "mock-1",
			Source:            domain.SourceGDS,
			LastTicketingDate: lastTicketing,
			Itineraries: []domain.Itinerary{{
				Duration: "PT6H30M",
				Segments: []domain.Segment{
					segment(from, at(0, "08:00:00"), to, at(0, "14:30:00"), "AA", "1234", "737", "PT6H30M"),
				},
			}},
			Price:                  price("450.00", "400.00", "50.00"),
			PricingOptions:         published(),
			ValidatingAirlineCodes: []string{"AA"},
			TravelerPricings:       adult("450.00", "400.00", domain.CabinEconomy, "Y", 1),
		},
		{
			ID:                "mock-2",
			Source:            domain.SourceGDS,
			LastTicketingDate: lastTicketing,
			Itineraries: []domain.Itinerary{{
				Duration: "PT8H15M",
				Segments: []domain.Segment{
					segment(from, at(0, "10:00:00"), "DEN", at(0, "12:00:00"), "UA", "5678", "A320", "PT2H00M"),
					segment("DEN", at(0, "14:30:00"), to, at(0, "18:15:00"), "UA", "9012", "A320", "PT3H45M"),
				},
			}},
			Price:                  price("380.00", "340.00", "40.00"),
			PricingOptions:         published(),
			ValidatingAirlineCodes: []string{"UA"},
			TravelerPricings:       adult("380.00", "340.00", domain.CabinEconomy, "T", 1),
		},
		{
			ID:                "mock-3-synthetic",
			Source:            domain.SourceSynthetic,
			IsSynthetic:       true,
			LastTicketingDate: lastTicketing,
			Itineraries: []domain.Itinerary{{
				Duration: "PT12H45M",
				Segments: []domain.Segment{
					segment(from, at(0, "09:00:00"), "DXB", at(0, "18:00:00"), "EK", "201", "A380", "PT9H00M"),
					segment("DXB", at(0, "20:30:00"), to, at(1, "01:45:00"), "EK", "415", "777", "PT5H15M"),
				},
			}},
			Price:                  price("320.00", "280.00", "40.00"),
			PricingOptions:         published(),
			ValidatingAirlineCodes: []string{"EK"},
			TravelerPricings:       adult("320.00", "280.00", domain.CabinEconomy, "V", 2),
		},
		{
			ID:                "mock-4-business",
			Source:            domain.SourceGDS,
			LastTicketingDate: lastTicketing,
			Itineraries: []domain.Itinerary{{
				Duration: "PT6H30M",
				Segments: []domain.Segment{
					segment(from, at(0, "16:00:00"), to, at(0, "22:30:00"), "DL", "2468", "A350", "PT6H30M"),
				},
			}},
			Price:                  price("1250.00", "1200.00", "50.00"),
			PricingOptions:         published(),
			ValidatingAirlineCodes: []string{"DL"},
			TravelerPricings:       adult("1250.00", "1200.00", domain.CabinBusiness, "J", 2),
		},
	}, nil
}

func segment(from, departAt, to, arriveAt, carrier, number, aircraft, duration string) domain.Segment {
	return domain.Segment{
		Departure:   domain.Endpoint{IATACode: from, At: departAt},
		Arrival:     domain.Endpoint{IATACode: to, At: arriveAt},
		CarrierCode: carrier,
		Number:      number,
		Aircraft:    domain.Aircraft{Code: aircraft},
		Duration:    duration,
	}
}

func price(total, base, fee string) domain.Price {
	return domain.Price{
		Currency: "USD",
		Total:    total,
		Base:     base,
		Fees:     []domain.Fee{{Amount: fee, Type: "SUPPLIER"}},
	}
}

func published() domain.PricingOptions {
	return domain.PricingOptions{FareType: []string{"PUBLISHED"}}
}

func adult(total, base, cabin, fareClass string, bags int) []domain.TravelerPricing {
	return []domain.TravelerPricing{{
		TravelerID:   "1",
		FareOption:   "STANDARD",
		TravelerType: "ADULT",
		Price:        domain.Price{Currency: "USD", Total: total, Base: base},
		FareDetailsBySegment: []domain.FareDetails{{
			SegmentID:           "1",
			Cabin:               cabin,
			FareBasis:           fareClass,
			Class:               fareClass,
			IncludedCheckedBags: domain.CheckedBags{Quantity: bags},
		}},
	}}
}

// Ensure Adapter implements domain.OfferSource at compile time.
var _ domain.OfferSource = (*Adapter)(nil)
