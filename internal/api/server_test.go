package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookpage/internal/categories"
	"github.com/listenupapp/bookpage/internal/domain"
	"github.com/listenupapp/bookpage/internal/ratelimit"
	"github.com/listenupapp/bookpage/internal/service"
	"github.com/listenupapp/bookpage/internal/session"
	"github.com/listenupapp/bookpage/internal/settings"
)

type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func decode[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func newTestAPI(t *testing.T, opts Options) humatest.TestAPI {
	t.Helper()
	repo := settings.NewMemory()
	reviews := service.NewReviewService(repo, categories.New(categories.DefaultThreshold), time.Minute, nil)
	s := NewServer(reviews, service.NewSettingsService(repo, nil), opts, nil)
	return humatest.Wrap(t, s.API())
}

func createReview(t *testing.T, api humatest.TestAPI) session.View {
	t.Helper()
	resp := api.Post("/api/v1/reviews", map[string]any{
		"primary": map[string]any{
			"title":         "Hyperion",
			"authors":       []string{"Dan Simmons"},
			"publisher":     "Doubleday",
			"publishedDate": "1989-05-26",
			"pageCount":     482,
			"categories":    []string{"Science Fiction", "Sci-Fi", "Space Opera"},
		},
		"audiobook": map[string]any{
			"title":       "Hyperion",
			"description": "Read by a full cast.",
			"narrators":   []string{"Marc Vietor"},
			"asin":        "B002",
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	env := decode[session.View](t, resp.Body.Bytes())
	require.True(t, env.Success)
	require.Equal(t, EnvelopeVersion, env.Version)
	return env.Data
}

func findField(t *testing.T, v session.View, field domain.Field) session.FieldView {
	t.Helper()
	for _, f := range v.Fields {
		if f.Field == field {
			return f
		}
	}
	t.Fatalf("field %s missing", field)
	return session.FieldView{}
}

func TestHealthCheck(t *testing.T) {
	api := newTestAPI(t, Options{})

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp.Body.Bytes())
	assert.Equal(t, "healthy", env.Data.Status)
	assert.Equal(t, "no open reviews", env.Data.Components["reviews"].Message)
	assert.Equal(t, "healthy", env.Data.Components["settings_store"].Status)
}

func TestCreateAndGetReview(t *testing.T) {
	api := newTestAPI(t, Options{})
	view := createReview(t, api)

	assert.True(t, strings.HasPrefix(view.ID, "rev-"))
	assert.True(t, view.HasAudiobook)
	assert.Equal(t, domain.Audiobook, findField(t, view, domain.FieldDescription).Selected.Source)
	assert.Equal(t, "May 26, 1989", findField(t, view, domain.FieldReleaseDate).Display)
	assert.Len(t, view.Suggestions, 1)

	resp := api.Get("/api/v1/reviews/" + view.ID)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, view.ID, decode[session.View](t, resp.Body.Bytes()).Data.ID)
}

func TestGetReview_NotFound(t *testing.T) {
	api := newTestAPI(t, Options{})

	resp := api.Get("/api/v1/reviews/rev-nope")
	require.Equal(t, http.StatusNotFound, resp.Code)

	env := decode[any](t, resp.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestSelectFieldSource(t *testing.T) {
	api := newTestAPI(t, Options{})
	view := createReview(t, api)
	path := "/api/v1/reviews/" + view.ID + "/fields/"

	resp := api.Put(path+"description", map[string]any{"source_id": "original"})
	require.Equal(t, http.StatusNotFound, resp.Code, "primary record has no description")

	resp = api.Put(path+"publisher", map[string]any{"source_id": "original"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	publisher := findField(t, decode[session.View](t, resp.Body.Bytes()).Data, domain.FieldPublisher)
	assert.True(t, publisher.UserChose)

	resp = api.Put(path+"publisher", map[string]any{"source_id": "library"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decode[any](t, resp.Body.Bytes()).Code)

	resp = api.Put(path+"title", map[string]any{"source_id": "edition:4"})
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Put(path+"subtitle", map[string]any{"source_id": "original"})
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "VALIDATION", decode[any](t, resp.Body.Bytes()).Code)

	resp = api.Get("/api/v1/settings/field-defaults")
	require.Equal(t, http.StatusOK, resp.Code)
	defaults := decode[FieldDefaultsResponse](t, resp.Body.Bytes()).Data.Defaults
	assert.Equal(t, []domain.FieldDefault{{Field: domain.FieldPublisher, Source: domain.Original}}, defaults)
}

func TestAttachAudiobookAndEditions(t *testing.T) {
	api := newTestAPI(t, Options{})

	resp := api.Post("/api/v1/reviews", map[string]any{
		"primary": map[string]any{"title": "Dune", "publisher": "Chilton"},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	view := decode[session.View](t, resp.Body.Bytes()).Data
	assert.False(t, view.HasAudiobook)

	resp = api.Post("/api/v1/reviews/"+view.ID+"/audiobook", map[string]any{
		"title":   "Dune",
		"summary": "Frank Herbert's classic.",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	view = decode[session.View](t, resp.Body.Bytes()).Data
	assert.True(t, view.HasAudiobook)
	assert.Equal(t, domain.AudiobookSummary, findField(t, view, domain.FieldDescription).Selected.Source)

	resp = api.Post("/api/v1/reviews/"+view.ID+"/editions", map[string]any{
		"editions": []map[string]any{{"publisher": "Ace", "publishedDate": "1990"}},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	view = decode[session.View](t, resp.Body.Bytes()).Data
	assert.Equal(t, 1, view.EditionCount)
	assert.Len(t, findField(t, view, domain.FieldPublisher).Candidates, 2)
}

func TestCategoryRoutes(t *testing.T) {
	api := newTestAPI(t, Options{})
	view := createReview(t, api)
	base := "/api/v1/reviews/" + view.ID + "/categories/"

	resp := api.Post(base+"ignore", map[string]any{"tag": "space opera"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.NotContains(t, decode[session.View](t, resp.Body.Bytes()).Data.SelectedCategories, "Space Opera")

	resp = api.Post(base+"select", map[string]any{"tag": "Space Opera", "selected": true})
	require.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "CONFLICT", decode[any](t, resp.Body.Bytes()).Code)

	resp = api.Post(base+"unignore", map[string]any{"tag": "Space Opera"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, decode[session.View](t, resp.Body.Bytes()).Data.SelectedCategories, "Space Opera")

	pair := view.Suggestions[0]
	resp = api.Post(base+"suggestions/accept", map[string]any{"from": pair.B, "to": pair.A})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	merged := decode[session.View](t, resp.Body.Bytes()).Data
	assert.Empty(t, merged.Suggestions)
	assert.NotContains(t, merged.SelectedCategories, pair.B)

	resp = api.Post(base+"unmap", map[string]any{"tag": pair.B})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, decode[session.View](t, resp.Body.Bytes()).Data.SelectedCategories, pair.B)

	resp = api.Post(base+"map", map[string]any{"from": "Westerns", "to": "Space Opera"})
	require.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Post(base+"map", map[string]any{"from": "Space Opera", "to": "Science Fiction"})
	require.Equal(t, http.StatusOK, resp.Code)
}

func TestPublishRecordAndAbandon(t *testing.T) {
	api := newTestAPI(t, Options{})
	view := createReview(t, api)

	resp := api.Get("/api/v1/reviews/" + view.ID + "/record")
	require.Equal(t, http.StatusOK, resp.Code)

	rec := decode[domain.PublishRecord](t, resp.Body.Bytes()).Data
	assert.Equal(t, "Hyperion", rec.Title)
	assert.Equal(t, "Read by a full cast.", rec.Description)
	assert.Equal(t, 482, rec.PageCount)
	assert.Equal(t, []string{"Marc Vietor"}, rec.Narrators)
	assert.Len(t, rec.Categories, 3)

	resp = api.Delete("/api/v1/reviews/" + view.ID)
	require.Equal(t, http.StatusNoContent, resp.Code)

	resp = api.Get("/api/v1/reviews/" + view.ID + "/record")
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSettingsRoutes(t *testing.T) {
	api := newTestAPI(t, Options{})

	resp := api.Put("/api/v1/settings/field-defaults/thumbnail", map[string]any{"source_id": "audiobook"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, domain.Audiobook, decode[domain.FieldDefault](t, resp.Body.Bytes()).Data.Source)

	resp = api.Put("/api/v1/settings/prefer-audiobook-covers", map[string]any{"prefer": true})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/v1/settings/prefer-audiobook-covers")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, decode[CoversPreference](t, resp.Body.Bytes()).Data.Prefer)

	resp = api.Post("/api/v1/settings/categories/map", map[string]any{"from": "scifi", "to": "science fiction"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	mapping := decode[domain.TagMapping](t, resp.Body.Bytes()).Data
	assert.Equal(t, "Science Fiction", mapping.To)

	resp = api.Post("/api/v1/settings/categories/map", map[string]any{"from": "Science Fiction", "to": "scifi"})
	require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	resp = api.Post("/api/v1/settings/categories/ignore", map[string]any{"tag": "audiobook"})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/v1/settings/categories")
	require.Equal(t, http.StatusOK, resp.Code)
	rules := decode[domain.CategoryRules](t, resp.Body.Bytes()).Data
	assert.Equal(t, "Science Fiction", rules.Mappings[mapping.From])
	assert.True(t, rules.Ignored["Audiobook"])

	resp = api.Post("/api/v1/settings/categories/unmap", map[string]any{"tag": mapping.From})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[domain.CategoryRules](t, resp.Body.Bytes()).Data.Mappings)

	resp = api.Post("/api/v1/settings/categories/unignore", map[string]any{"tag": "Audiobook"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decode[domain.CategoryRules](t, resp.Body.Bytes()).Data.Ignored)

	resp = api.Post("/api/v1/settings/categories/map", map[string]any{"from": "Horror", "to": "horror"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.New(0.001, 1)
	t.Cleanup(limiter.Stop)
	api := newTestAPI(t, Options{Limiter: limiter})

	require.Equal(t, http.StatusOK, api.Get("/health").Code)

	resp := api.Get("/health")
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Contains(t, resp.Body.String(), "RATE_LIMITED")
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t, Options{AllowedOrigins: []string{"https://books.example"}})

	resp := api.Do(http.MethodOptions, "/api/v1/reviews",
		"Origin: https://books.example",
		"Access-Control-Request-Method: POST",
	)

	assert.Equal(t, "https://books.example", resp.Header().Get("Access-Control-Allow-Origin"))
}
