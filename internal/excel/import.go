// Package excel maps the roster to and from xlsx workbooks. Import is
// additive only: rows are always inserted, never merged into existing
// records.
package excel

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/spler/influencer-hub/internal/domain"
	"github.com/spler/influencer-hub/internal/service"
	"github.com/spler/influencer-hub/internal/util"
	"github.com/spler/influencer-hub/pkg/apperr"
)

// RecordInserter is the slice of the store the importer needs.
type RecordInserter interface {
	CreateInfluencer(ctx context.Context, rec *domain.Influencer) error
}

// ThumbnailFetcher is the slice of the enricher the importer needs.
type ThumbnailFetcher interface {
	FetchThumbnailURL(ctx context.Context, url string) string
}

type Importer struct {
	store    RecordInserter
	enricher ThumbnailFetcher
	logger   *zap.Logger
}

func NewImporter(store RecordInserter, enricher ThumbnailFetcher, logger *zap.Logger) *Importer {
	return &Importer{
		store:    store,
		enricher: enricher,
		logger:   logger,
	}
}

// Import reads the first sheet of an xlsx workbook and inserts one record
// per row that has a display name. Returns the number of rows inserted.
func (im *Importer) Import(ctx context.Context, r io.Reader) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, apperr.NewValidationError("unreadable workbook", "file", err.Error())
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, apperr.NewValidationError("unreadable sheet", "file", err.Error())
	}
	if len(rows) == 0 {
		return 0, apperr.NewValidationError("workbook has no header row", "file", nil)
	}

	// Header row → column index per canonical field. Aliased headers are
	// renamed; unmapped headers pass through under their own name. The
	// first header claiming a field wins.
	fieldIndex := make(map[string]int)
	for i, header := range rows[0] {
		name := util.CleanText(header)
		if canonical, ok := domain.ImportHeaderAliases[name]; ok {
			name = canonical
		}
		if name == "" {
			continue
		}
		if _, taken := fieldIndex[name]; !taken {
			fieldIndex[name] = i
		}
	}
	if _, ok := fieldIndex[domain.ColAccountName]; !ok {
		return 0, apperr.NewValidationError("required name/account column is missing", "account_name", nil)
	}

	inserted := 0
	for rowNum, row := range rows[1:] {
		cell := func(field string) string {
			idx, ok := fieldIndex[field]
			if !ok || idx >= len(row) {
				return ""
			}
			return util.CleanText(row[idx])
		}

		rec := &domain.Influencer{
			InfluencerID:      cell(domain.ColInfluencerID),
			Platform:          cell(domain.ColPlatform),
			CategoryMain:      cell(domain.ColCategoryMain),
			CategorySub:       cell(domain.ColCategorySub),
			AccountName:       cell(domain.ColAccountName),
			ProfileURL:        cell(domain.ColProfileURL),
			InstagramUsername: cell(domain.ColInstagramUsername),
			ContactEmail:      cell(domain.ColContactEmail),
			Agency:            cell(domain.ColAgency),
			FollowersRaw:      cell(domain.ColFollowersRaw),
			FollowersNum:      util.CoerceInt(cell(domain.ColFollowersNum)),
			FollowerRange:     cell(domain.ColFollowerRange),
			VideoUsage:        cell(domain.ColVideoUsage),
			Target2030Score:   util.CoerceInt(cell(domain.ColTarget2030Score)),
			PriceBDC:          cell(domain.ColPriceBDC),
			PricePPL:          cell(domain.ColPricePPL),
			PriceShort:        cell(domain.ColPriceShort),
			PriceIG:           cell(domain.ColPriceIG),
			ThumbnailURL:      cell(domain.ColThumbnailURL),
			DMMessage:         cell(domain.ColDMMessage),
			Notes:             cell(domain.ColNotes),
		}
		if rec.AccountName == "" {
			continue
		}

		if rec.InstagramUsername == "" && rec.ProfileURL != "" {
			rec.InstagramUsername = service.ExtractInstagramUsername(rec.ProfileURL)
		}
		if rec.ThumbnailURL == "" && rec.ProfileURL != "" {
			rec.ThumbnailURL = im.enricher.FetchThumbnailURL(ctx, rec.ProfileURL)
		}

		if err := im.store.CreateInfluencer(ctx, rec); err != nil {
			return inserted, fmt.Errorf("failed to insert row %d: %w", rowNum+2, err)
		}
		inserted++
	}

	im.logger.Info("Workbook imported", zap.Int("rows", inserted))
	return inserted, nil
}
