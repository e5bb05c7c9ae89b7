package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spler/influencer-hub/internal/domain"
	"github.com/spler/influencer-hub/pkg/apperr"
)

// timeLayout is how timestamps are stored in the TEXT columns. RFC 3339
// sorts lexically, so ORDER BY updated_at DESC works on both backends.
const timeLayout = time.RFC3339Nano

const influencerColumns = `
	id, influencer_id, platform, category_main, category_sub,
	account_name, profile_url, instagram_username, contact_email, agency,
	followers_raw, followers_num, follower_range, video_usage,
	target_2030_score, price_bdc, price_ppl, price_short, price_ig,
	thumbnail_url, dm_message, notes, created_at, updated_at`

func scanInfluencer(row interface{ Scan(...any) error }) (*domain.Influencer, error) {
	var (
		rec                  domain.Influencer
		createdAt, updatedAt string
	)
	err := row.Scan(
		&rec.ID, &rec.InfluencerID, &rec.Platform, &rec.CategoryMain, &rec.CategorySub,
		&rec.AccountName, &rec.ProfileURL, &rec.InstagramUsername, &rec.ContactEmail, &rec.Agency,
		&rec.FollowersRaw, &rec.FollowersNum, &rec.FollowerRange, &rec.VideoUsage,
		&rec.Target2030Score, &rec.PriceBDC, &rec.PricePPL, &rec.PriceShort, &rec.PriceIG,
		&rec.ThumbnailURL, &rec.DMMessage, &rec.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	rec.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)
	return &rec, nil
}

// ListInfluencers returns the records matching the filter, most recently
// updated first.
func (s *Store) ListInfluencers(ctx context.Context, filter Filter) ([]*domain.Influencer, error) {
	clause, args := filter.Clause()
	query := fmt.Sprintf(`SELECT %s FROM influencers %s ORDER BY updated_at DESC`, influencerColumns, clause)

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, apperr.NewStorageError("failed to list influencers", "list", err)
	}
	defer rows.Close()

	var result []*domain.Influencer
	for rows.Next() {
		rec, err := scanInfluencer(rows)
		if err != nil {
			return nil, apperr.NewStorageError("failed to scan influencer row", "list", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.NewStorageError("failed to iterate influencers", "list", err)
	}
	return result, nil
}

// GetInfluencer fetches a single record by primary key. Returns (nil, nil)
// when the id does not exist.
func (s *Store) GetInfluencer(ctx context.Context, id int64) (*domain.Influencer, error) {
	query := fmt.Sprintf(`SELECT %s FROM influencers WHERE id = ?`, influencerColumns)
	rec, err := scanInfluencer(s.db.QueryRowContext(ctx, s.rebind(query), id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.NewStorageError("failed to get influencer", "get", err)
	}
	return rec, nil
}

// CountInfluencers counts records matching the filter.
func (s *Store) CountInfluencers(ctx context.Context, filter Filter) (int64, error) {
	clause, args := filter.Clause()
	query := fmt.Sprintf(`SELECT COUNT(*) FROM influencers %s`, clause)

	var count int64
	if err := s.db.QueryRowContext(ctx, s.rebind(query), args...).Scan(&count); err != nil {
		return 0, apperr.NewStorageError("failed to count influencers", "count", err)
	}
	return count, nil
}

const insertInfluencerSQL = `
	INSERT INTO influencers (
		influencer_id, platform, category_main, category_sub,
		account_name, profile_url, instagram_username, contact_email, agency,
		followers_raw, followers_num, follower_range, video_usage,
		target_2030_score, price_bdc, price_ppl, price_short, price_ig,
		thumbnail_url, dm_message, notes, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateInfluencer inserts a new record with the current time as both
// timestamps. The display name must be non-empty.
func (s *Store) CreateInfluencer(ctx context.Context, rec *domain.Influencer) error {
	if rec.AccountName == "" {
		return apperr.NewValidationError("account name is required", "account_name", rec.AccountName)
	}
	now := time.Now().UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx, s.rebind(insertInfluencerSQL),
		rec.InfluencerID, rec.Platform, rec.CategoryMain, rec.CategorySub,
		rec.AccountName, rec.ProfileURL, rec.InstagramUsername, rec.ContactEmail, rec.Agency,
		rec.FollowersRaw, rec.FollowersNum, rec.FollowerRange, rec.VideoUsage,
		rec.Target2030Score, rec.PriceBDC, rec.PricePPL, rec.PriceShort, rec.PriceIG,
		rec.ThumbnailURL, rec.DMMessage, rec.Notes, now, now,
	)
	if err != nil {
		return apperr.NewStorageError("failed to insert influencer", "create", err)
	}
	return nil
}

// UpdateInfluencer overwrites every field of an existing record and bumps
// updated_at. Last write wins; there is no concurrency check.
func (s *Store) UpdateInfluencer(ctx context.Context, id int64, rec *domain.Influencer) error {
	if rec.AccountName == "" {
		return apperr.NewValidationError("account name is required", "account_name", rec.AccountName)
	}
	query := `
		UPDATE influencers SET
			influencer_id = ?,
			platform = ?,
			category_main = ?,
			category_sub = ?,
			account_name = ?,
			profile_url = ?,
			instagram_username = ?,
			contact_email = ?,
			agency = ?,
			followers_raw = ?,
			followers_num = ?,
			follower_range = ?,
			video_usage = ?,
			target_2030_score = ?,
			price_bdc = ?,
			price_ppl = ?,
			price_short = ?,
			price_ig = ?,
			thumbnail_url = ?,
			dm_message = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?`
	now := time.Now().UTC().Format(timeLayout)
	_, err := s.db.ExecContext(ctx, s.rebind(query),
		rec.InfluencerID, rec.Platform, rec.CategoryMain, rec.CategorySub,
		rec.AccountName, rec.ProfileURL, rec.InstagramUsername, rec.ContactEmail, rec.Agency,
		rec.FollowersRaw, rec.FollowersNum, rec.FollowerRange, rec.VideoUsage,
		rec.Target2030Score, rec.PriceBDC, rec.PricePPL, rec.PriceShort, rec.PriceIG,
		rec.ThumbnailURL, rec.DMMessage, rec.Notes, now, id,
	)
	if err != nil {
		return apperr.NewStorageError("failed to update influencer", "update", err)
	}
	return nil
}

func (s *Store) DeleteInfluencer(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM influencers WHERE id = ?`), id)
	if err != nil {
		return apperr.NewStorageError("failed to delete influencer", "delete", err)
	}
	return nil
}

func (s *Store) DeleteAllInfluencers(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM influencers`)
	if err != nil {
		return apperr.NewStorageError("failed to delete all influencers", "delete_all", err)
	}
	return nil
}

// ApplyDMTemplate writes the template verbatim to dm_message on every record
// matching the filter and returns the affected-row count. No per-record
// substitution.
func (s *Store) ApplyDMTemplate(ctx context.Context, filter Filter, template string) (int64, error) {
	clause, args := filter.Clause()
	query := fmt.Sprintf(`UPDATE influencers SET dm_message = ? %s`, clause)

	res, err := s.db.ExecContext(ctx, s.rebind(query), append([]any{template}, args...)...)
	if err != nil {
		return 0, apperr.NewStorageError("failed to apply dm template", "dm_apply", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, apperr.NewStorageError("failed to read affected rows", "dm_apply", err)
	}
	return affected, nil
}

// DistinctValues returns the non-empty distinct values of a known column,
// for the list-view filter dropdowns. Unknown columns yield an error rather
// than interpolated SQL.
func (s *Store) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if !domain.IsColumn(column) {
		return nil, apperr.NewValidationError("unknown column", "column", column)
	}
	query := fmt.Sprintf(
		`SELECT DISTINCT %s FROM influencers WHERE %s IS NOT NULL AND %s != '' ORDER BY %s`,
		column, column, column, column,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperr.NewStorageError("failed to query distinct values", "distinct", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, apperr.NewStorageError("failed to scan distinct value", "distinct", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
