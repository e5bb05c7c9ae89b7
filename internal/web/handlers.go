package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spler/influencer-hub/internal/domain"
	"github.com/spler/influencer-hub/internal/excel"
	"github.com/spler/influencer-hub/internal/service"
	"github.com/spler/influencer-hub/internal/store"
	"github.com/spler/influencer-hub/internal/util"
	"github.com/spler/influencer-hub/pkg/apperr"
)

// listData backs the index and search pages.
type listData struct {
	Influencers     []*domain.Influencer
	Q               string
	Platform        string
	CategoryMain    string
	CategorySub     string
	Platforms       []string
	Categories      []string
	SubCategories   []string
	AllColumns      []string
	SelectedColumns []string
}

func filterFromQuery(r *http.Request) (store.Filter, []string) {
	q := r.URL.Query()
	filter := store.NewFilter(
		q.Get("q"),
		q.Get("platform"),
		q.Get("category_main"),
		q.Get("category_sub"),
	)
	// Checkboxes submit one columns param per selection.
	return filter, store.ResolveColumns(strings.Join(q["columns"], ","))
}

func (s *Server) buildListData(r *http.Request) (*listData, error) {
	filter, columns := filterFromQuery(r)
	ctx := r.Context()

	influencers, err := s.store.ListInfluencers(ctx, filter)
	if err != nil {
		return nil, err
	}
	platforms, err := s.store.DistinctValues(ctx, domain.ColPlatform)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.DistinctValues(ctx, domain.ColCategoryMain)
	if err != nil {
		return nil, err
	}
	subCategories, err := s.store.DistinctValues(ctx, domain.ColCategorySub)
	if err != nil {
		return nil, err
	}

	return &listData{
		Influencers:     influencers,
		Q:               filter.Query,
		Platform:        filter.Platform,
		CategoryMain:    filter.CategoryMain,
		CategorySub:     filter.CategorySub,
		Platforms:       platforms,
		Categories:      categories,
		SubCategories:   subCategories,
		AllColumns:      domain.AllColumns,
		SelectedColumns: columns,
	}, nil
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	data, err := s.buildListData(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "index.html", &viewData{Title: "Influencers", Data: data})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	data, err := s.buildListData(r)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "search.html", &viewData{Title: "Search", Data: data})
}

// discoverData backs the discovery page.
type discoverData struct {
	Query    string
	Platform string
	Limit    int64
	Results  []domain.Candidate
	Errors   []string
}

func (s *Server) discover(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := util.CleanText(q.Get("q"))
	platform := util.CleanText(q.Get("platform"))

	limit := int64(service.DefaultDiscoverLimit)
	if raw := util.CleanText(q.Get("limit")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = parsed
		}
	}
	limit = service.ClampLimit(limit)

	results, errs := s.discovery.Discover(r.Context(), query, platform, limit)

	s.render(w, r, "discover.html", &viewData{
		Title: "Discover",
		Data: &discoverData{
			Query:    query,
			Platform: platform,
			Limit:    limit,
			Results:  results,
			Errors:   errs,
		},
	})
}

// editData backs the create/edit form. Influencer is nil when creating.
type editData struct {
	Influencer *domain.Influencer
}

func (s *Server) newForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "edit.html", &viewData{Title: "New influencer", Data: &editData{}})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	rec := influencerFromForm(r)
	if rec.AccountName == "" {
		s.flash(w, r, "Name/account is required.")
		http.Redirect(w, r, "/new", http.StatusSeeOther)
		return
	}
	s.enrich(r, rec)
	if err := s.store.CreateInfluencer(r.Context(), rec); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flash(w, r, "Influencer added.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) editForm(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadInfluencer(w, r)
	if !ok {
		return
	}
	s.render(w, r, "edit.html", &viewData{Title: "Edit influencer", Data: &editData{Influencer: rec}})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadInfluencer(w, r)
	if !ok {
		return
	}
	updated := influencerFromForm(r)
	if updated.AccountName == "" {
		s.flash(w, r, "Name/account is required.")
		http.Redirect(w, r, fmt.Sprintf("/edit/%d", rec.ID), http.StatusSeeOther)
		return
	}
	s.enrich(r, updated)
	if err := s.store.UpdateInfluencer(r.Context(), rec.ID, updated); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flash(w, r, "Changes saved.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadInfluencer(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteInfluencer(r.Context(), rec.ID); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flash(w, r, "Deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) deleteAll(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAllInfluencers(r.Context()); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flash(w, r, "All records deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) importForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "import.html", &viewData{Title: "Import"})
}

func (s *Server) importWorkbook(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		s.flash(w, r, "Choose an xlsx file.")
		http.Redirect(w, r, "/import", http.StatusSeeOther)
		return
	}
	defer file.Close()

	inserted, err := s.importer.Import(r.Context(), file)
	if err != nil {
		if isValidation(err) {
			s.logger.Warn("Import rejected", zap.Error(err))
			s.flash(w, r, importFlash(err))
			http.Redirect(w, r, "/import", http.StatusSeeOther)
			return
		}
		s.serverError(w, r, err)
		return
	}

	s.flash(w, r, fmt.Sprintf("Imported %d rows.", inserted))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	filter, columns := filterFromQuery(r)

	records, err := s.store.ListInfluencers(r.Context(), filter)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	buf, err := excel.Export(records, columns)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	filename := excel.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("Export write failed", zap.Error(err))
	}
}

func (s *Server) applyDMTemplate(w http.ResponseWriter, r *http.Request) {
	template := util.CleanText(r.PostFormValue("dm_template"))
	if template == "" {
		s.flash(w, r, "Enter a DM message.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	filter := store.NewFilter(
		r.PostFormValue("q"),
		r.PostFormValue("platform"),
		r.PostFormValue("category_main"),
		r.PostFormValue("category_sub"),
	)
	if filter.Empty() && r.PostFormValue("confirm_all") != "yes" {
		s.flash(w, r, "Applying to every record requires the confirmation checkbox.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	affected, err := s.store.ApplyDMTemplate(r.Context(), filter, template)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.flash(w, r, fmt.Sprintf("Applied the DM message to %d records.", affected))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func isValidation(err error) bool {
	var ve *apperr.ValidationError
	return errors.As(err, &ve)
}

func importFlash(err error) string {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		switch ve.Field {
		case "file":
			return "Could not read the xlsx file. Check the file format."
		case "account_name":
			return "The required name/account column is missing."
		}
	}
	return "Could not import the workbook."
}

// loadInfluencer resolves {id} to a record, writing a 404 when absent.
func (s *Server) loadInfluencer(w http.ResponseWriter, r *http.Request) (*domain.Influencer, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	rec, err := s.store.GetInfluencer(r.Context(), id)
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	if rec == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return rec, true
}

// influencerFromForm maps form fields onto a record, cleaning text and
// coercing the two numeric fields.
func influencerFromForm(r *http.Request) *domain.Influencer {
	form := func(name string) string {
		return util.CleanText(r.PostFormValue(name))
	}
	return &domain.Influencer{
		InfluencerID:      form("influencer_id"),
		Platform:          form("platform"),
		CategoryMain:      form("category_main"),
		CategorySub:       form("category_sub"),
		AccountName:       form("account_name"),
		ProfileURL:        form("profile_url"),
		InstagramUsername: form("instagram_username"),
		ContactEmail:      form("contact_email"),
		Agency:            form("agency"),
		FollowersRaw:      form("followers_raw"),
		FollowersNum:      util.CoerceInt(form("followers_num")),
		FollowerRange:     form("follower_range"),
		VideoUsage:        form("video_usage"),
		Target2030Score:   util.CoerceInt(form("target_2030_score")),
		PriceBDC:          form("price_bdc"),
		PricePPL:          form("price_ppl"),
		PriceShort:        form("price_short"),
		PriceIG:           form("price_ig"),
		ThumbnailURL:      form("thumbnail_url"),
		DMMessage:         form("dm_message"),
		Notes:             form("notes"),
	}
}

// enrich back-fills the Instagram handle and thumbnail from the profile URL
// when they were left blank.
func (s *Server) enrich(r *http.Request, rec *domain.Influencer) {
	if rec.ProfileURL == "" {
		return
	}
	if rec.InstagramUsername == "" {
		rec.InstagramUsername = service.ExtractInstagramUsername(rec.ProfileURL)
	}
	if rec.ThumbnailURL == "" {
		rec.ThumbnailURL = s.enricher.FetchThumbnailURL(r.Context(), rec.ProfileURL)
	}
}
