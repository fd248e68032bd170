package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marty-droid/laundromat-app-v3/internal/domain/listing"
)

// runCLI executes the command tree with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRank_ReferenceDataTable(t *testing.T) {
	out, err := runCLI(t, "rank")
	require.NoError(t, err)

	assert.Contains(t, out, "Profitable Laundromat, Owner Retiring")
	assert.Contains(t, out, "Logan Square")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "Qualified targets:    6")
	assert.Contains(t, out, "Real estate included: 3")
}

func TestRank_FiltersApply(t *testing.T) {
	out, err := runCLI(t, "rank", "--min-score", "70", "--real-estate-only")
	require.NoError(t, err)

	assert.Contains(t, out, "Profitable Laundromat, Owner Retiring")
	// The non-target suburb listing never clears a 70 score floor.
	assert.NotContains(t, out, "Wash & Fold Opportunity in North Suburb")
}

func TestRank_JSONOutput(t *testing.T) {
	out, err := runCLI(t, "rank", "-o", "json")
	require.NoError(t, err)

	var body struct {
		Listings []struct {
			Title            string  `json:"title"`
			OpportunityScore float64 `json:"opportunity_score"`
		} `json:"listings"`
		Summary struct {
			Count       int      `json:"count"`
			MaxScore    float64  `json:"max_score"`
			MeanCapRate *float64 `json:"mean_cap_rate"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))

	require.Len(t, body.Listings, 6)
	assert.Equal(t, 100.0, body.Listings[0].OpportunityScore)
	assert.Equal(t, 6, body.Summary.Count)
	assert.Equal(t, 100.0, body.Summary.MaxScore)
	require.NotNil(t, body.Summary.MeanCapRate)
}

func TestRank_InputFile(t *testing.T) {
	listings := []listing.Raw{{
		Title:       "Custom Import",
		Price:       "$400,000",
		CashFlow:    "$100,000",
		Description: "Real estate included. Owner retiring.",
		Latitude:    41.910,
		Longitude:   -87.740,
	}}
	data, err := json.Marshal(listings)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := runCLI(t, "rank", "--input", path, "-o", "json")
	require.NoError(t, err)

	var body struct {
		Listings []struct {
			Title          string `json:"title"`
			Classification struct {
				Neighborhood string `json:"neighborhood"`
			} `json:"classification"`
		} `json:"listings"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Listings, 1)
	assert.Equal(t, "Custom Import", body.Listings[0].Title)
	assert.Equal(t, "Hermosa", body.Listings[0].Classification.Neighborhood)
}

func TestRank_MissingInputFile(t *testing.T) {
	_, err := runCLI(t, "rank", "--input", filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestRank_EmptyResultSummary(t *testing.T) {
	out, err := runCLI(t, "rank", "--neighborhoods", "Nowhere")
	require.NoError(t, err)

	assert.Contains(t, out, "Qualified targets:    0")
	assert.Contains(t, out, "Mean cap rate:        N/A")
}

func TestRootCommand_UnknownSubcommand(t *testing.T) {
	_, err := runCLI(t, "frobnicate")
	assert.Error(t, err)
}

func TestRootCommand_ListsSubcommands(t *testing.T) {
	out, err := runCLI(t, "--help")
	require.NoError(t, err)
	for _, sub := range []string{"rank", "serve", "worker", "migrate", "ingest"} {
		assert.Contains(t, out, sub)
	}
}
