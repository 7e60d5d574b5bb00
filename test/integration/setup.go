// Package integration provides helpers and integration tests for the flight value ranking service.
// Integration tests verify that components work together correctly, including
// HTTP handlers, use cases, offer sources and the offer cache.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	httpAdapter "github.com/flight-search/flight-value-ranking/internal/adapter/http"
	"github.com/flight-search/flight-value-ranking/internal/adapter/http/middleware"
	"github.com/flight-search/flight-value-ranking/internal/adapter/http/response"
	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/usecase"
)

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.OfferHandler
}

// NewTestServer creates a test server with the full middleware stack and routes.
func NewTestServer(search usecase.OfferSearchUseCase, valuator *usecase.Valuator, sources int) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, zerolog.Nop())

	handler := httpAdapter.NewOfferHandler(search, usecase.NewValuationUseCase(valuator), sources)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// NewTestServerWithSources wires a search use case over sources with default rates.
func NewTestServerWithSources(sources []domain.OfferSource, config *usecase.Config) *TestServer {
	valuator := usecase.NewValuator(nil)
	uc := usecase.NewOfferSearchUseCase(usecase.SearchDeps{
		Sources:  sources,
		Valuator: valuator,
	}, config)
	return NewTestServer(uc, valuator, len(sources))
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
	Headers     map[string]string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch body := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(body))
	default:
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Post sends body as JSON to an /api/v1 path.
func (ts *TestServer) Post(path string, body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1" + path,
		Body:   body,
	})
}

// SearchRequest posts a search request.
func (ts *TestServer) SearchRequest(body interface{}) Response {
	return ts.Post("/flights/search", body)
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResponse parses the response body as a SearchResponse.
func (r *Response) ParseSearchResponse() (*domain.SearchResponse, error) {
	var resp domain.SearchResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body as an error detail.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var errResp response.ErrorDetail
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return &errResp, nil
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// SearchRequestBody is a helper struct for building search request bodies.
type SearchRequestBody struct {
	Origin        string                 `json:"origin"`
	Destination   string                 `json:"destination"`
	DepartureDate string                 `json:"departureDate"`
	Passengers    int                    `json:"passengers,omitempty"`
	CabinClass    string                 `json:"cabinClass,omitempty"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
	SortBy        string                 `json:"sortBy,omitempty"`
}

// SearchDate is the departure date every fixture uses.
const SearchDate = "2025-01-15"

// DefaultSearchRequest returns a valid JFK-LAX search request body.
func DefaultSearchRequest() SearchRequestBody {
	return SearchRequestBody{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: SearchDate,
		Passengers:    1,
	}
}

// DefaultSearchCriteria returns valid search criteria for testing the use case directly.
func DefaultSearchCriteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Origin:        "JFK",
		Destination:   "LAX",
		DepartureDate: SearchDate,
		Passengers:    1,
	}
}
