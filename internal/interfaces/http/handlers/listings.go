package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/marty-droid/laundromat-app-v3/internal/application/pipeline"
	"github.com/marty-droid/laundromat-app-v3/internal/config"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/ranking"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	apperrors "github.com/marty-droid/laundromat-app-v3/pkg/errors"
	"github.com/marty-droid/laundromat-app-v3/pkg/types/common"
)

// ListingHandler serves the ranked listings, the KPI summary, the map view,
// and the refresh trigger.
type ListingHandler struct {
	svc      *pipeline.Service
	defaults config.FilterConfig
	logger   logging.Logger
}

// NewListingHandler builds the handler. defaults supplies the dashboard's
// initial filter state; request parameters override per call.
func NewListingHandler(svc *pipeline.Service, defaults config.FilterConfig, logger logging.Logger) *ListingHandler {
	return &ListingHandler{svc: svc, defaults: defaults, logger: logger.Named("listings")}
}

// parseCriteria builds ranking criteria from the query string over the
// configured defaults. An absent neighborhoods parameter keeps the
// preselected default set; an explicit parameter replaces it entirely, so
// callers can reach non-target rows by naming "Outside Target".
func (h *ListingHandler) parseCriteria(c *gin.Context) (ranking.Criteria, error) {
	criteria := ranking.Criteria{
		Neighborhoods:  append([]string(nil), h.defaults.Neighborhoods...),
		MinScore:       h.defaults.MinScore,
		MinCapRate:     h.defaults.MinCapRate,
		RealEstateOnly: h.defaults.RealEstateOnly,
	}

	if raw := c.Query("neighborhoods"); raw != "" {
		criteria.Neighborhoods = nil
		for _, n := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(n); trimmed != "" {
				criteria.Neighborhoods = append(criteria.Neighborhoods, trimmed)
			}
		}
	}

	if raw := c.Query("min_score"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 100 {
			return criteria, apperrors.New(apperrors.ErrCodeInvalidFilter,
				"min_score must be a number in [0, 100]").WithDetail(raw)
		}
		criteria.MinScore = v
	}

	if raw := c.Query("min_cap_rate"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return criteria, apperrors.New(apperrors.ErrCodeInvalidFilter,
				"min_cap_rate must be a non-negative number").WithDetail(raw)
		}
		criteria.MinCapRate = v
	}

	if raw := c.Query("real_estate_only"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return criteria, apperrors.New(apperrors.ErrCodeInvalidFilter,
				"real_estate_only must be a boolean").WithDetail(raw)
		}
		criteria.RealEstateOnly = v
	}

	return criteria, nil
}

// List handles GET /api/v1/listings: the ranked, filtered listing set.
func (h *ListingHandler) List(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if err != nil {
		respondError(c, err)
		return
	}

	listings, err := h.svc.Query(criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings": listings,
		"count":    len(listings),
		"criteria": criteria,
	})
}

// Summary handles GET /api/v1/listings/summary: the KPI row over the
// filtered set.
func (h *ListingHandler) Summary(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.svc.Summary(criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":  summary,
		"criteria": criteria,
	})
}

// mapPoint is the map view's per-listing payload: coordinates and the
// fields the popup shows.
type mapPoint struct {
	ID               common.ID `json:"id"`
	Title            string    `json:"title"`
	Neighborhood     string    `json:"neighborhood"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Geohash          string    `json:"geohash"`
	OpportunityScore float64   `json:"opportunity_score"`
	CapRate          float64   `json:"cap_rate"`
}

// Map handles GET /api/v1/listings/map: the filtered set reduced to
// geographic points for the dashboard map.
func (h *ListingHandler) Map(c *gin.Context) {
	criteria, err := h.parseCriteria(c)
	if err != nil {
		respondError(c, err)
		return
	}

	listings, err := h.svc.Query(criteria)
	if err != nil {
		respondError(c, err)
		return
	}

	points := make([]mapPoint, 0, len(listings))
	for _, l := range listings {
		points = append(points, toMapPoint(l))
	}

	c.JSON(http.StatusOK, gin.H{"points": points, "count": len(points)})
}

func toMapPoint(l listing.Scored) mapPoint {
	return mapPoint{
		ID:               l.ID,
		Title:            l.Title,
		Neighborhood:     l.Classification.Neighborhood,
		Latitude:         l.Latitude,
		Longitude:        l.Longitude,
		Geohash:          l.Geohash,
		OpportunityScore: l.OpportunityScore,
		CapRate:          l.Financials.CapRate,
	}
}

// Refresh handles POST /api/v1/listings/refresh: re-run the pipeline against
// the configured source and swap the snapshot.
func (h *ListingHandler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	all, err := h.svc.All()
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("snapshot refreshed", logging.Int("listings", len(all)))
	c.JSON(http.StatusOK, gin.H{"refreshed": true, "count": len(all)})
}
