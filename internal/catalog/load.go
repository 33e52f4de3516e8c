package catalog

import (
	"context"

	"go.uber.org/zap"
)

// Sources names where a catalog comes from. Either field may be empty.
type Sources struct {
	CUE      string
	Database string
}

// Empty reports whether no source is set.
func (s Sources) Empty() bool {
	return s.CUE == "" && s.Database == ""
}

// Load builds a catalog from every configured source. CUE declarations
// override database tables of the same name. It returns a nil catalog
// when no source is set.
func Load(ctx context.Context, src Sources, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if src.Empty() {
		logger.Debug("no catalog configured, references pass through")
		return nil, nil
	}

	c := New()
	if src.Database != "" {
		db, err := LoadSQLite(ctx, src.Database)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded database catalog",
			zap.String("path", src.Database),
			zap.Int("tables", db.Len()))
		c.Merge(db)
	}
	if src.CUE != "" {
		declared, err := LoadCUE(src.CUE)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded CUE catalog",
			zap.String("path", src.CUE),
			zap.Int("tables", declared.Len()))
		c.Merge(declared)
	}
	return c, nil
}
