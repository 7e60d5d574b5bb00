// Package jsonfile provides an offer source that serves offers stored in a JSON file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/flight-search/flight-value-ranking/internal/domain"
	"github.com/flight-search/flight-value-ranking/internal/infrastructure/logger"
	"github.com/flight-search/flight-value-ranking/internal/infrastructure/retry"
)

// SourceName is the unique identifier for the file-backed source.
const SourceName = "offers_file"

// Adapter implements domain.OfferSource over a JSON file holding either an
// array of offers or an object with the offers under "data".
// The file is read on every search, so edits take effect without a restart.
type Adapter struct {
	path     string
	log      *logger.Logger
	retryCfg retry.Config
}

// NewAdapter creates a file-backed source. A nil logger discards output.
func NewAdapter(path string, log *logger.Logger) *Adapter {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithSource(SourceName)

	return &Adapter{
		path: path,
		log:  log,
		retryCfg: retry.SourceConfig.
			WithOnRetry(func(attempt int, err error) {
				log.Debug().Err(err).Int("attempt", attempt).Msg("retrying offers file read")
			}),
	}
}

// Name returns the source's unique identifier.
func (a *Adapter) Name() string {
	return SourceName
}

// Search returns the offers in the file that match the criteria route and date.
func (a *Adapter) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.FlightOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.NewSourceError(SourceName, err)
	}

	data, err := retry.Do(ctx, func() ([]byte, error) {
		data, err := os.ReadFile(a.path)
		if errors.Is(err, fs.ErrNotExist) {
			// A missing file will not appear on retry
			return nil, retry.NewPermanent(err)
		}
		return data, err
	}, a.retryCfg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, domain.NewSourceError(SourceName, ctxErr)
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewSourceError(SourceName, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err))
		}
		return nil, domain.NewRetryableSourceError(SourceName, fmt.Errorf("failed to read offers file: %w", err))
	}

	offers, err := decode(data)
	if err != nil {
		return nil, domain.NewSourceError(SourceName, fmt.Errorf("failed to parse offers file: %w", err))
	}

	result, skipped := normalize(offers, criteria)
	if skipped > 0 {
		a.log.Debug().Int("skipped", skipped).Str("path", a.path).Msg("skipped invalid offers")
	}
	return result, nil
}

// envelope is the wrapped file layout, as returned by offer search APIs.
type envelope struct {
	Data []domain.FlightOffer `json:"data"`
}

// decode accepts either a bare JSON array or an envelope object.
func decode(data []byte) ([]domain.FlightOffer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("file is empty")
	}

	if trimmed[0] == '[' {
		var offers []domain.FlightOffer
		if err := json.Unmarshal(trimmed, &offers); err != nil {
			return nil, err
		}
		return offers, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Ensure Adapter implements domain.OfferSource at compile time.
var _ domain.OfferSource = (*Adapter)(nil)
