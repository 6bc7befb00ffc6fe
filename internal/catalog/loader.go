package catalog

import (
	"context"
	"encoding/json/v2"
	"log/slog"

	domainerrors "github.com/marqueeapp/marquee-server/internal/errors"
	"github.com/marqueeapp/marquee-server/internal/validation"
	"golang.org/x/text/unicode/norm"
)

// Loader performs the one-shot catalog load: fetch, parse, validate,
// normalize. There is no retry and no caching layer of its own; a load
// has three terminal outcomes: a snapshot, a failure, or abandonment via
// context cancellation.
type Loader struct {
	source    Source
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLoader creates a loader over the given source.
func NewLoader(source Source, logger *slog.Logger) *Loader {
	return &Loader{
		source:    source,
		validator: validation.New(),
		logger:    logger,
	}
}

// Load fetches and prepares a snapshot. Any I/O error, non-success
// status, malformed JSON, or validation failure is a load failure: no
// partial catalog is ever produced.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	raw, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeUnavailable,
			"could not load catalog from %s", l.source.Describe())
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeUnavailable,
			"catalog document from %s is not valid JSON", l.source.Describe())
	}

	if err := l.validator.Validate(&doc); err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable,
			"catalog document failed validation")
	}

	l.normalize(doc.Movies)

	// The declared count is advisory; the records are the truth.
	if doc.TotalMovies != len(doc.Movies) {
		l.logger.Warn("Catalog document count disagrees with records",
			"declared", doc.TotalMovies,
			"actual", len(doc.Movies),
		)
	}

	// A canceled consumer discards the result rather than installing it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := NewSnapshot(doc.Movies, l.source.Describe())

	l.logger.Info("Catalog loaded",
		"source", l.source.Describe(),
		"movies", len(snap.Movies),
		"genres", len(snap.Options.Genres),
		"years", len(snap.Options.Years),
	)

	return snap, nil
}

// normalize prepares records for stable comparison and plain-text display:
// NFC titles, markdown descriptions.
func (l *Loader) normalize(movies []Movie) {
	for i := range movies {
		movies[i].Title = norm.NFC.String(movies[i].Title)
		movies[i].Description = htmlToMarkdown(movies[i].Description)
	}
}
