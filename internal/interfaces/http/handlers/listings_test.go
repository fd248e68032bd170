package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marty-droid/laundromat-app-v3/internal/application/pipeline"
	"github.com/marty-droid/laundromat-app-v3/internal/config"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
	"github.com/marty-droid/laundromat-app-v3/internal/domain/scoring"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/monitoring/logging"
	"github.com/marty-droid/laundromat-app-v3/internal/infrastructure/source"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter builds a minimal router over the static reference data. The
// snapshot is warmed unless warm is false.
func newTestRouter(t *testing.T, warm bool) *gin.Engine {
	t.Helper()

	p := pipeline.New(source.NewStaticSource(), scoring.NewDefaultScorer(), logging.NewNopLogger())
	svc := pipeline.NewService(p, nil, logging.NewNopLogger())
	if warm {
		require.NoError(t, svc.Refresh(context.Background()))
	}

	defaults := config.FilterConfig{
		Neighborhoods:  []string{"Logan Square", "Avondale", "Hermosa"},
		MinScore:       70,
		MinCapRate:     0,
		RealEstateOnly: true,
	}
	return newRouterWithDefaults(svc, defaults)
}

func newRouterWithDefaults(svc *pipeline.Service, defaults config.FilterConfig) *gin.Engine {
	h := NewListingHandler(svc, defaults, logging.NewNopLogger())

	router := gin.New()
	router.GET("/api/v1/listings", h.List)
	router.GET("/api/v1/listings/summary", h.Summary)
	router.GET("/api/v1/listings/map", h.Map)
	router.POST("/api/v1/listings/refresh", h.Refresh)
	return router
}

func doRequest(router *gin.Engine, method, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestListListings_DefaultFilters(t *testing.T) {
	router := newTestRouter(t, true)

	w := doRequest(router, http.MethodGet, "/api/v1/listings")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count    int `json:"count"`
		Listings []struct {
			Title            string  `json:"title"`
			OpportunityScore float64 `json:"opportunity_score"`
			Signals          struct {
				RealEstateIncluded bool `json:"real_estate_included"`
			} `json:"signals"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	// Defaults: min_score 70 and real-estate-only prune the reference set to
	// the three high-score real-estate deals.
	require.NotZero(t, body.Count)
	for _, l := range body.Listings {
		assert.GreaterOrEqual(t, l.OpportunityScore, 70.0)
		assert.True(t, l.Signals.RealEstateIncluded)
	}

	// Ranked: top listing is the full-match Logan Square deal.
	assert.Equal(t, 100.0, body.Listings[0].OpportunityScore)
}

func TestListListings_QueryOverrides(t *testing.T) {
	router := newTestRouter(t, true)

	// Neighborhoods stay preselected when not overridden, so the Evanston
	// listing remains excluded.
	w := doRequest(router, http.MethodGet,
		"/api/v1/listings?min_score=0&real_estate_only=false")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Count)

	// Naming every neighborhood explicitly reaches the full reference set.
	w = doRequest(router, http.MethodGet,
		"/api/v1/listings?min_score=0&real_estate_only=false"+
			"&neighborhoods=Logan%20Square,Avondale,Hermosa,Outside%20Target")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 6, body.Count)
}

func TestListListings_NeighborhoodFilter(t *testing.T) {
	router := newTestRouter(t, true)

	w := doRequest(router, http.MethodGet,
		"/api/v1/listings?min_score=0&real_estate_only=false&neighborhoods=Outside%20Target")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Listings []struct {
			Classification struct {
				Neighborhood string `json:"neighborhood"`
			} `json:"classification"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Listings)
	for _, l := range body.Listings {
		assert.Equal(t, "Outside Target", l.Classification.Neighborhood)
	}
}

func TestListListings_DefaultNeighborhoodsExcludeOutsideTarget(t *testing.T) {
	// A non-target listing with every deal signal scores exactly 70
	// (real estate 40 + motivation 20 + capacity 10) and would clear the
	// score and real-estate defaults; the preselected neighborhood set must
	// still exclude it.
	raws := []listing.Raw{{
		Title:       "Signal-Rich Suburb Deal",
		Price:       "$500,000",
		CashFlow:    "$100,000",
		Description: "Real estate included. Owner retiring. Old equipment.",
		Latitude:    0,
		Longitude:   0,
	}}
	data, err := json.Marshal(raws)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p := pipeline.New(source.NewFileSource(path), scoring.NewDefaultScorer(), logging.NewNopLogger())
	svc := pipeline.NewService(p, nil, logging.NewNopLogger())
	require.NoError(t, svc.Refresh(context.Background()))

	router := newRouterWithDefaults(svc, config.FilterConfig{
		Neighborhoods:  []string{"Logan Square", "Avondale", "Hermosa"},
		MinScore:       70,
		RealEstateOnly: true,
	})

	var body struct {
		Count int `json:"count"`
	}

	w := doRequest(router, http.MethodGet, "/api/v1/listings")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Zero(t, body.Count)

	// An explicit neighborhoods parameter replaces the preselection.
	w = doRequest(router, http.MethodGet,
		"/api/v1/listings?neighborhoods=Outside%20Target")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestListListings_InvalidFilter(t *testing.T) {
	router := newTestRouter(t, true)

	for _, url := range []string{
		"/api/v1/listings?min_score=150",
		"/api/v1/listings?min_score=abc",
		"/api/v1/listings?min_cap_rate=-3",
		"/api/v1/listings?real_estate_only=maybe",
	} {
		w := doRequest(router, http.MethodGet, url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)

		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "LST_005", body.Error.Code, url)
	}
}

func TestListListings_BeforeFirstRun(t *testing.T) {
	router := newTestRouter(t, false)

	w := doRequest(router, http.MethodGet, "/api/v1/listings")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSummary(t *testing.T) {
	router := newTestRouter(t, true)

	w := doRequest(router, http.MethodGet,
		"/api/v1/listings/summary?min_score=0&real_estate_only=false")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Summary struct {
			Count           int      `json:"count"`
			MaxScore        float64  `json:"max_score"`
			MeanCapRate     *float64 `json:"mean_cap_rate"`
			RealEstateCount int      `json:"real_estate_count"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	// Five of the six reference listings classify into a target
	// neighborhood; the preselected filter hides the Evanston one.
	assert.Equal(t, 5, body.Summary.Count)
	assert.Equal(t, 100.0, body.Summary.MaxScore)
	require.NotNil(t, body.Summary.MeanCapRate)
	assert.Equal(t, 3, body.Summary.RealEstateCount)
}

func TestSummary_EmptySubsetHasNullMeanCapRate(t *testing.T) {
	router := newTestRouter(t, true)

	w := doRequest(router, http.MethodGet,
		"/api/v1/listings/summary?neighborhoods=Nowhere")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Summary struct {
			Count       int      `json:"count"`
			MeanCapRate *float64 `json:"mean_cap_rate"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Zero(t, body.Summary.Count)
	assert.Nil(t, body.Summary.MeanCapRate)
}

func TestMap(t *testing.T) {
	router := newTestRouter(t, true)

	w := doRequest(router, http.MethodGet,
		"/api/v1/listings/map?min_score=0&real_estate_only=false")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count  int `json:"count"`
		Points []struct {
			ID           string  `json:"id"`
			Title        string  `json:"title"`
			Neighborhood string  `json:"neighborhood"`
			Latitude     float64 `json:"latitude"`
			Geohash      string  `json:"geohash"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 5, body.Count)
	for _, p := range body.Points {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Geohash)
		assert.NotZero(t, p.Latitude)
	}
}

func TestRefresh(t *testing.T) {
	router := newTestRouter(t, false)

	w := doRequest(router, http.MethodPost, "/api/v1/listings/refresh")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Refreshed bool `json:"refreshed"`
		Count     int  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Refreshed)
	assert.Equal(t, 6, body.Count)

	// The snapshot is now queryable.
	w = doRequest(router, http.MethodGet, "/api/v1/listings")
	assert.Equal(t, http.StatusOK, w.Code)
}
