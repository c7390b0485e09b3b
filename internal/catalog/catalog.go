// Package catalog resolves the list of stock symbols offered for selection:
// the backend list when it has one, otherwise the symbol column of the local
// indicator CSV.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrEmptyCSV means the CSV has no header or no data rows.
	ErrEmptyCSV = errors.New("csv has no data rows")
	// ErrNoSymbolColumn means the CSV header has no "symbol" column.
	ErrNoSymbolColumn = errors.New("symbol column not found in csv")
	// ErrNoStocks means neither the backend nor the CSV produced a symbol.
	ErrNoStocks = errors.New("no stocks available")
)

// Origin records where a catalog came from.
type Origin int

const (
	OriginBackend Origin = iota
	OriginCSV
)

func (o Origin) String() string {
	if o == OriginCSV {
		return "csv"
	}
	return "backend"
}

// Catalog is an ordered list of symbols. Backend lists are kept exactly as
// sent; CSV lists are uppercased, deduplicated and sorted.
type Catalog struct {
	Symbols []string
	Origin  Origin
}

// Source is the network side of the catalog.
type Source interface {
	Stocks(ctx context.Context) ([]string, error)
}

// Loader applies the backend-then-CSV policy.
type Loader struct {
	source  Source
	csvPath string
	log     *zap.Logger
}

// NewLoader creates a loader. source may be nil to go straight to the CSV.
func NewLoader(source Source, csvPath string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{source: source, csvPath: csvPath, log: log}
}

// CSVPath returns the fallback file path.
func (l *Loader) CSVPath() string { return l.csvPath }

// Load rebuilds the catalog. A non-empty backend list wins and the CSV is
// not opened. Any backend failure or an empty list falls through to the
// CSV. When both come up empty the error wraps ErrNoStocks.
func (l *Loader) Load(ctx context.Context) (Catalog, error) {
	if l.source != nil {
		symbols, err := l.source.Stocks(ctx)
		switch {
		case err != nil:
			l.log.Warn("backend stock list failed, trying csv fallback", zap.Error(err))
		case len(symbols) == 0:
			l.log.Info("backend stock list empty, trying csv fallback")
		default:
			return Catalog{Symbols: symbols, Origin: OriginBackend}, nil
		}
	}

	symbols, err := ReadCSV(l.csvPath)
	if err != nil {
		l.log.Error("csv fallback failed", zap.String("path", l.csvPath), zap.Error(err))
		return Catalog{}, fmt.Errorf("%w: %v", ErrNoStocks, err)
	}
	if len(symbols) == 0 {
		return Catalog{}, fmt.Errorf("%w: csv %s has no symbols", ErrNoStocks, l.csvPath)
	}

	l.log.Info("catalog loaded from csv", zap.String("path", l.csvPath), zap.Int("symbols", len(symbols)))
	return Catalog{Symbols: symbols, Origin: OriginCSV}, nil
}
