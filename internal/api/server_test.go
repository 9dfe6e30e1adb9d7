package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/cocktailapp/cocktail-server/internal/auth"
	"github.com/cocktailapp/cocktail-server/internal/domain"
	"github.com/cocktailapp/cocktail-server/internal/metrics"
	"github.com/cocktailapp/cocktail-server/internal/ratelimit"
	"github.com/cocktailapp/cocktail-server/internal/service"
	"github.com/cocktailapp/cocktail-server/internal/store/sqldb"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testPassword = "Abc12345!"

type testServer struct {
	api     humatest.TestAPI
	server  *Server
	store   *sqldb.Store
	metrics *metrics.Metrics
	limiter *ratelimit.KeyedRateLimiter
}

type serverOption func(*testServerConfig)

type testServerConfig struct {
	authRateLimit int
}

func withAuthRateLimit(n int) serverOption {
	return func(c *testServerConfig) { c.authRateLimit = n }
}

// setupTestServer builds the full API over a temporary SQLite store seeded with a small catalog.
func setupTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	ctx := context.Background()

	cfg := testServerConfig{authRateLimit: 1000}
	for _, opt := range opts {
		opt(&cfg)
	}

	st, err := sqldb.Open(ctx, sqldb.SQLite, filepath.Join(t.TempDir(), "api.db"), testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	seedCatalog(t, st)

	issuer, err := auth.NewJWTIssuer("sssecretkey", time.Hour)
	require.NoError(t, err)

	m := metrics.New()
	services := &Services{
		Accounts:  service.NewAccountService(st, issuer, m, testLogger),
		Inventory: service.NewInventoryService(st, testLogger),
		Cocktails: service.NewCocktailService(st, nil, m, testLogger),
		Comments:  service.NewCommentService(st, testLogger),
	}

	limiter := ratelimit.PerMinute(cfg.authRateLimit)
	t.Cleanup(limiter.Stop)

	srv := NewServer(st, services, m, limiter, testLogger)

	return &testServer{
		api:     humatest.Wrap(t, srv.API()),
		server:  srv,
		store:   st,
		metrics: m,
		limiter: limiter,
	}
}

func seedCatalog(t *testing.T, st *sqldb.Store) {
	t.Helper()

	recipes := []struct {
		name, category, glass string
		alcohol               domain.Alcohol
		ingredients           []string
	}{
		{"Mojito", "Cocktail", "Highball glass", domain.Alcoholic, []string{"Light rum", "Mint", "Lime", "Sugar", "Soda water"}},
		{"Virgin Mojito", "Cocktail", "Highball glass", domain.NonAlcoholic, []string{"Mint", "Lime", "Sugar", "Soda water"}},
		{"Gin Tonic", "Ordinary Drink", "Highball glass", domain.Alcoholic, []string{"Gin", "Tonic water"}},
		{"Punch", "Punch / Party Drink", "Punch bowl", domain.OptionalAlcohol, []string{"Light rum", "Orange juice", "Pineapple juice"}},
		{"Lemonade", "Soft Drink", "Collins glass", domain.NonAlcoholic, []string{"Lime", "Sugar", "Water"}},
	}
	for _, r := range recipes {
		d := &domain.CocktailDetail{
			Cocktail: domain.Cocktail{
				Name: r.name, Category: r.category, Glass: r.glass, Alcohol: r.alcohol,
				Instructions: domain.Instructions{ENG: "Mix " + r.name, FRA: "Mélanger " + r.name},
			},
		}
		for _, ing := range r.ingredients {
			d.Measures = append(d.Measures, domain.Measure{Ingredient: ing, Quantity: "2 cl"})
		}
		require.NoError(t, st.SeedCocktail(context.Background(), d))
	}
}

// register creates an account through the API and returns its bearer header.
func (ts *testServer) register(t *testing.T, pseudo string, age int) string {
	t.Helper()
	resp := ts.api.Post("/auth/inscription", map[string]any{
		"pseudo": pseudo,
		"mdp":    testPassword,
		"age":    age,
		"langue": "FRA",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	token := gjson.Get(resp.Body.String(), "access_token").String()
	require.NotEmpty(t, token)
	return "Authorization: Bearer " + token
}

func (ts *testServer) hold(t *testing.T, bearer string, names ...string) {
	t.Helper()
	for _, n := range names {
		resp := ts.api.Put("/inventaire/ajouter", bearer, map[string]any{"nom_ingredient": n})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}
}

func (ts *testServer) cocktailID(t *testing.T, name string) int64 {
	t.Helper()
	d, err := ts.store.GetCocktailByName(context.Background(), name)
	require.NoError(t, err)
	return d.ID
}

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Equal(t, "healthy", gjson.Get(body, "status").String())
	assert.Equal(t, "healthy", gjson.Get(body, "components.database.status").String())
}

func TestHealthCheck_DatabaseDown(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.store.Close())

	resp := ts.api.Get("/health")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "unhealthy", gjson.Get(resp.Body.String(), "status").String())
}

func TestMetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Get("/health")
	resp := ts.api.Get("/metrics")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "cocktail_http_requests_total")
	assert.Contains(t, resp.Body.String(), `route="/health"`)
}

func TestRequestID(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("generated when absent", func(t *testing.T) {
		resp := ts.api.Get("/health")
		assert.Len(t, resp.Header().Get(requestIDHeader), 36)
	})

	t.Run("echoed when sent", func(t *testing.T) {
		resp := ts.api.Get("/health", "X-Request-ID: trace-42")
		assert.Equal(t, "trace-42", resp.Header().Get(requestIDHeader))
	})
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/nowhere")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
