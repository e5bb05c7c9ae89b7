package domain

// Canonical column names of the influencers table, in display order.
const (
	ColInfluencerID      = "influencer_id"
	ColPlatform          = "platform"
	ColCategoryMain      = "category_main"
	ColCategorySub       = "category_sub"
	ColAccountName       = "account_name"
	ColProfileURL        = "profile_url"
	ColInstagramUsername = "instagram_username"
	ColContactEmail      = "contact_email"
	ColAgency            = "agency"
	ColFollowersRaw      = "followers_raw"
	ColFollowersNum      = "followers_num"
	ColFollowerRange     = "follower_range"
	ColVideoUsage        = "video_usage"
	ColTarget2030Score   = "target_2030_score"
	ColPriceBDC          = "price_bdc"
	ColPricePPL          = "price_ppl"
	ColPriceShort        = "price_short"
	ColPriceIG           = "price_ig"
	ColThumbnailURL      = "thumbnail_url"
	ColDMMessage         = "dm_message"
	ColNotes             = "notes"
)

// AllColumns lists every exportable column in the order spreadsheets and the
// list view present them.
var AllColumns = []string{
	ColInfluencerID,
	ColPlatform,
	ColCategoryMain,
	ColCategorySub,
	ColAccountName,
	ColProfileURL,
	ColInstagramUsername,
	ColContactEmail,
	ColAgency,
	ColFollowersRaw,
	ColFollowersNum,
	ColFollowerRange,
	ColVideoUsage,
	ColTarget2030Score,
	ColPriceBDC,
	ColPricePPL,
	ColPriceShort,
	ColPriceIG,
	ColThumbnailURL,
	ColDMMessage,
	ColNotes,
}

// ColumnLabels maps canonical column names to the Korean display labels the
// exported workbook and the UI use.
var ColumnLabels = map[string]string{
	ColInfluencerID:      "인플루언서ID",
	ColPlatform:          "플랫폼",
	ColCategoryMain:      "카테고리(대)",
	ColCategorySub:       "카테고리(소)",
	ColAccountName:       "이름/계정명",
	ColProfileURL:        "프로필URL",
	ColInstagramUsername: "인스타그램아이디",
	ColContactEmail:      "컨택이메일",
	ColAgency:            "에이전시/소속",
	ColFollowersRaw:      "팔로워/구독자(원본)",
	ColFollowersNum:      "팔로워/구독자(숫자)",
	ColFollowerRange:     "팔로워 구간",
	ColVideoUsage:        "영상 활용도(高/中/低)",
	ColTarget2030Score:   "2030 타깃 적합도(1~5)",
	ColPriceBDC:          "단가_BDC",
	ColPricePPL:          "단가_PPL",
	ColPriceShort:        "단가_Short/Shorts",
	ColPriceIG:           "단가_IG",
	ColThumbnailURL:      "썸네일",
	ColDMMessage:         "DM문구",
	ColNotes:             "비고",
}

// ImportHeaderAliases renames spreadsheet headers to canonical column names
// on import. It covers the display labels plus legacy sheet headers; any
// header not present here passes through unchanged.
var ImportHeaderAliases = map[string]string{
	"인플루언서ID":         ColInfluencerID,
	"플랫폼":             ColPlatform,
	"카테고리(대)":         ColCategoryMain,
	"카테고리(소)":         ColCategorySub,
	"이름/계정명":          ColAccountName,
	"프로필URL":          ColProfileURL,
	"인스타그램아이디":        ColInstagramUsername,
	"컨택이메일":           ColContactEmail,
	"에이전시/소속":         ColAgency,
	"팔로워/구독자(원본)":     ColFollowersRaw,
	"팔로워/구독자(숫자)":     ColFollowersNum,
	"팔로워 구간":          ColFollowerRange,
	"영상 활용도(高/中/低)":   ColVideoUsage,
	"2030 타깃 적합도(1~5)": ColTarget2030Score,
	"단가_BDC":          ColPriceBDC,
	"단가_PPL":          ColPricePPL,
	"단가_Short/Shorts": ColPriceShort,
	"단가_IG":           ColPriceIG,
	"썸네일":             ColThumbnailURL,
	"DM문구":            ColDMMessage,
	"비고":              ColNotes,
	"계정명":             ColAccountName,
	"카테고리":            ColCategoryMain,
	"주요 콘텐츠":          ColCategorySub,
	"감성 키워드":          ColNotes,
}

// IsColumn reports whether name is a known canonical column.
func IsColumn(name string) bool {
	_, ok := ColumnLabels[name]
	return ok
}
