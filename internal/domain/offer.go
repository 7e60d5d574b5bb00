// Package domain contains the core business entities and rules for flight value ranking.
// These entities are source-agnostic: every offer source normalizes into them.
package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Offer source tags.
const (
	SourceGDS       = "GDS"
	SourceSynthetic = "SYNTHETIC"
)

// Cabin codes.
const (
	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"
)

// FlightOffer is one priced, bookable itinerary returned by a search.
// Offers are treated as immutable: the engine derives values alongside them.
type FlightOffer struct {
	// ID is the offer identifier assigned by the source
	ID string `json:"id"`

	// Source is the origin tag of the offer ("GDS" or "SYNTHETIC")
	Source string `json:"source"`

	// IsSynthetic marks itineraries built by creative combination rather than a published fare
	IsSynthetic bool `json:"isSynthetic,omitempty"`

	InstantTicketingRequired bool   `json:"instantTicketingRequired"`
	NonHomogeneous           bool   `json:"nonHomogeneous"`
	OneWay                   bool   `json:"oneWay"`
	LastTicketingDate        string `json:"lastTicketingDate,omitempty"`

	// Itineraries holds at least one itinerary; the first is the outbound journey
	Itineraries []Itinerary `json:"itineraries"`

	// Price is the total offer price
	Price Price `json:"price"`

	PricingOptions PricingOptions `json:"pricingOptions"`

	// ValidatingAirlineCodes lists ticketing carriers; the first one is the primary carrier
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`

	TravelerPricings []TravelerPricing `json:"travelerPricings"`

	// EstimatedValue is the value score attached by scoring (nil until scored)
	EstimatedValue *int `json:"estimatedValue,omitempty"`
}

// Itinerary is one directional journey made of connected segments.
type Itinerary struct {
	// Duration is the ISO-8601 total duration (e.g., "PT6H30M")
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Segment is a single flown leg.
type Segment struct {
	Departure     Endpoint `json:"departure"`
	Arrival       Endpoint `json:"arrival"`
	CarrierCode   string   `json:"carrierCode"`
	Number        string   `json:"number"`
	Aircraft      Aircraft `json:"aircraft"`
	Duration      string   `json:"duration"`
	NumberOfStops int      `json:"numberOfStops"`
}

// Endpoint is a departure or arrival point of a segment.
type Endpoint struct {
	// IATACode is the airport code (e.g., "JFK")
	IATACode string `json:"iataCode"`

	Terminal string `json:"terminal,omitempty"`

	// At is the local wall-clock timestamp (e.g., "2024-12-15T08:00:00")
	At string `json:"at"`
}

// Aircraft identifies the equipment flown on a segment.
type Aircraft struct {
	Code string `json:"code"`
}

// Price holds monetary amounts as decimal strings, the way sources send them.
type Price struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
	Base     string `json:"base,omitempty"`
	Fees     []Fee  `json:"fees,omitempty"`
}

// Fee is a single surcharge line of a price.
type Fee struct {
	Amount string `json:"amount"`
	Type   string `json:"type"`
}

// PricingOptions describes how the fare was priced.
type PricingOptions struct {
	FareType                []string `json:"fareType,omitempty"`
	IncludedCheckedBagsOnly bool     `json:"includedCheckedBagsOnly"`
}

// TravelerPricing is the price breakdown for one traveler.
type TravelerPricing struct {
	TravelerID           string        `json:"travelerId"`
	FareOption           string        `json:"fareOption"`
	TravelerType         string        `json:"travelerType"`
	Price                Price         `json:"price"`
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment"`
}

// FareDetails carries the fare class booked on one segment.
type FareDetails struct {
	SegmentID           string      `json:"segmentId"`
	Cabin               string      `json:"cabin"`
	FareBasis           string      `json:"fareBasis,omitempty"`
	Class               string      `json:"class,omitempty"`
	IncludedCheckedBags CheckedBags `json:"includedCheckedBags"`
}

// CheckedBags is the checked baggage allowance of a fare.
type CheckedBags struct {
	Quantity int `json:"quantity"`
}

// CashPrice returns the numeric total price. Unparsable totals yield 0.
func (o FlightOffer) CashPrice() float64 {
	return parseAmount(o.Price.Total)
}

// PrimaryCarrier returns the first validating airline code, or "" when absent.
func (o FlightOffer) PrimaryCarrier() string {
	if len(o.ValidatingAirlineCodes) == 0 {
		return ""
	}
	return o.ValidatingAirlineCodes[0]
}

// Cabin returns the cabin of the first traveler's first fare detail.
// Defaults to ECONOMY when absent.
func (o FlightOffer) Cabin() string {
	if len(o.TravelerPricings) == 0 || len(o.TravelerPricings[0].FareDetailsBySegment) == 0 {
		return CabinEconomy
	}
	// Sources disagree on case; "business" and "BUSINESS" price the same.
	cabin := strings.ToUpper(strings.TrimSpace(o.TravelerPricings[0].FareDetailsBySegment[0].Cabin))
	if cabin == "" {
		return CabinEconomy
	}
	return cabin
}

// Outbound returns the first itinerary, or an empty one when the offer has none.
func (o FlightOffer) Outbound() Itinerary {
	if len(o.Itineraries) == 0 {
		return Itinerary{}
	}
	return o.Itineraries[0]
}

// Segments returns the segments of the outbound itinerary.
func (o FlightOffer) Segments() []Segment {
	return o.Outbound().Segments
}

// FirstSegment returns the first outbound segment.
func (o FlightOffer) FirstSegment() (Segment, bool) {
	segments := o.Segments()
	if len(segments) == 0 {
		return Segment{}, false
	}
	return segments[0], true
}

// LastSegment returns the last outbound segment.
func (o FlightOffer) LastSegment() (Segment, bool) {
	segments := o.Segments()
	if len(segments) == 0 {
		return Segment{}, false
	}
	return segments[len(segments)-1], true
}

// StopCount returns the number of connections (segments - 1, never negative).
func (o FlightOffer) StopCount() int {
	n := len(o.Segments()) - 1
	if n < 0 {
		return 0
	}
	return n
}

// StopsBucket returns the filter bucket for the offer's stop count.
func (o FlightOffer) StopsBucket() StopsBucket {
	return StopsBucketFor(o.StopCount())
}

// DepartureTime returns the first segment's departure timestamp (epoch if unparsable).
func (o FlightOffer) DepartureTime() time.Time {
	seg, ok := o.FirstSegment()
	if !ok {
		return epoch
	}
	t, _ := ParseTimestamp(seg.Departure.At)
	return t
}

// ArrivalTime returns the last segment's arrival timestamp (epoch if unparsable).
func (o FlightOffer) ArrivalTime() time.Time {
	seg, ok := o.LastSegment()
	if !ok {
		return epoch
	}
	t, _ := ParseTimestamp(seg.Arrival.At)
	return t
}

// DurationMinutes returns the outbound duration in minutes.
func (o FlightOffer) DurationMinutes() int {
	return ParseDurationMinutes(o.Outbound().Duration)
}

// DurationHours returns the outbound duration in fractional hours.
func (o FlightOffer) DurationHours() float64 {
	return float64(o.DurationMinutes()) / 60
}

// Score returns the attached estimated value, or 0 when the offer has not been scored.
func (o FlightOffer) Score() int {
	if o.EstimatedValue == nil {
		return 0
	}
	return *o.EstimatedValue
}

// WithEstimatedValue returns a copy of the offer carrying the given score.
func (o FlightOffer) WithEstimatedValue(score int) FlightOffer {
	o.EstimatedValue = &score
	return o
}

// parseAmount converts a decimal string to float64, returning 0 on failure.
// NaN and infinities parse without error but are not amounts.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
