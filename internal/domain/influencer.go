package domain

import (
	"database/sql"
	"time"
)

// Influencer is one roster row. String columns are never NULL in practice
// (empty string means unset); the two numeric columns are nullable because
// spreadsheet cells and form inputs are frequently blank or junk.
type Influencer struct {
	ID                int64
	InfluencerID      string
	Platform          string
	CategoryMain      string
	CategorySub       string
	AccountName       string
	ProfileURL        string
	InstagramUsername string
	ContactEmail      string
	Agency            string
	FollowersRaw      string
	FollowersNum      sql.NullInt64
	FollowerRange     string
	VideoUsage        string
	Target2030Score   sql.NullInt64
	PriceBDC          string
	PricePPL          string
	PriceShort        string
	PriceIG           string
	ThumbnailURL      string
	DMMessage         string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Field returns the value of a named column as a display string. Used when
// exporting an arbitrary column selection.
func (i *Influencer) Field(column string) any {
	switch column {
	case ColInfluencerID:
		return i.InfluencerID
	case ColPlatform:
		return i.Platform
	case ColCategoryMain:
		return i.CategoryMain
	case ColCategorySub:
		return i.CategorySub
	case ColAccountName:
		return i.AccountName
	case ColProfileURL:
		return i.ProfileURL
	case ColInstagramUsername:
		return i.InstagramUsername
	case ColContactEmail:
		return i.ContactEmail
	case ColAgency:
		return i.Agency
	case ColFollowersRaw:
		return i.FollowersRaw
	case ColFollowersNum:
		if i.FollowersNum.Valid {
			return i.FollowersNum.Int64
		}
		return ""
	case ColFollowerRange:
		return i.FollowerRange
	case ColVideoUsage:
		return i.VideoUsage
	case ColTarget2030Score:
		if i.Target2030Score.Valid {
			return i.Target2030Score.Int64
		}
		return ""
	case ColPriceBDC:
		return i.PriceBDC
	case ColPricePPL:
		return i.PricePPL
	case ColPriceShort:
		return i.PriceShort
	case ColPriceIG:
		return i.PriceIG
	case ColThumbnailURL:
		return i.ThumbnailURL
	case ColDMMessage:
		return i.DMMessage
	case ColNotes:
		return i.Notes
	default:
		return ""
	}
}

// User is a login credential. The table is seeded once with a default
// account and never written again.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Candidate is a uniform discovery result across search adapters.
// Followers is nil when the source does not report a count.
type Candidate struct {
	Platform          string `json:"platform"`
	Name              string `json:"name"`
	URL               string `json:"url"`
	Thumbnail         string `json:"thumbnail"`
	Description       string `json:"description"`
	Followers         *int64 `json:"followers"`
	InstagramUsername string `json:"instagram_username,omitempty"`
}
