package scrape_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher/mocks"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
	scrapehandler "github.com/toonkeep/toonkeep-server/internal/service/api/handler/scrape"
	"github.com/toonkeep/toonkeep-server/internal/service/api/httputil"
)

// stubResolver 고정된 결과를 반환하는 테스트용 리졸버입니다.
type stubResolver struct {
	platform string
	hosts    []string
	result   *provider.Result
	err      error
}

func (s *stubResolver) Platform() string { return s.platform }
func (s *stubResolver) Hosts() []string  { return s.hosts }
func (s *stubResolver) Resolve(_ context.Context, _ string, _ bool) (*provider.Result, error) {
	return s.result, s.err
}

func newTestServer(t *testing.T, handler *scrapehandler.Handler) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.GET("/api/v1/scrape", handler.Scrape)
	e.GET("/api/v1/scrape/:platform", handler.ScrapePlatform)
	e.GET("/api/v1/image", handler.RelayImage)
	return e
}

func newTestRegistry(t *testing.T, resolvers ...provider.Resolver) *provider.Registry {
	t.Helper()

	registry := provider.NewRegistry()
	for _, r := range resolvers {
		require.NoError(t, registry.Register(r))
	}
	return registry
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestScrape(t *testing.T) {
	resolver := &stubResolver{
		platform: "kakao-page",
		hosts:    []string{"page.kakao.com"},
		result: &provider.Result{
			Record: provider.Record{
				Title:      "달빛조각사",
				AuthorName: "남희성",
				URL:        "https://page.kakao.com/content/100",
			},
		},
	}
	handler := scrapehandler.NewHandler(newTestRegistry(t, resolver), mocks.NewMapFetcher())
	e := newTestServer(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scrape?url=https://page.kakao.com/content/100", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "kakao-page", body["platform"])
	assert.Equal(t, "달빛조각사", body["title"])
	assert.Equal(t, "남희성", body["authorName"])
	assert.NotContains(t, body, "debug")
}

func TestScrape_MissingURL(t *testing.T) {
	handler := scrapehandler.NewHandler(newTestRegistry(t), mocks.NewMapFetcher())
	e := newTestServer(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scrape", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.NotEmpty(t, body["error"])
}

func TestScrape_UnsupportedHost(t *testing.T) {
	handler := scrapehandler.NewHandler(newTestRegistry(t), mocks.NewMapFetcher())
	e := newTestServer(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scrape?url=https://unknown.example.com/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScrape_UpstreamFailure(t *testing.T) {
	resolver := &stubResolver{
		platform: "ridibooks",
		hosts:    []string{"ridibooks.com"},
		err:      apperrors.New(apperrors.ErrUpstreamFetch, "페이지 요청에 실패했습니다"),
	}
	handler := scrapehandler.NewHandler(newTestRegistry(t, resolver), mocks.NewMapFetcher())
	e := newTestServer(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/scrape?url=https://ridibooks.com/books/1", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])
}

func TestScrapePlatform(t *testing.T) {
	resolver := &stubResolver{
		platform: "ridibooks",
		hosts:    []string{"ridibooks.com"},
		result: &provider.Result{
			Record: provider.Record{Title: "상수리나무 아래"},
		},
	}
	handler := scrapehandler.NewHandler(newTestRegistry(t, resolver), mocks.NewMapFetcher())
	e := newTestServer(t, handler)

	t.Run("등록된_플랫폼", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/scrape/ridibooks?url=https://ridibooks.com/books/1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "상수리나무 아래", decodeBody(t, rec)["title"])
	})

	t.Run("등록되지_않은_플랫폼", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/scrape/naver-webtoon?url=https://comic.naver.com/1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRelayImage(t *testing.T) {
	mockFetcher := mocks.NewMapFetcher()
	mockFetcher.SetHTML("https://cdn.example.com/cover.png", "PNG-BYTES")

	handler := scrapehandler.NewHandler(newTestRegistry(t), mockFetcher)
	e := newTestServer(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/image?url=https://cdn.example.com/cover.png", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PNG-BYTES", rec.Body.String())

	// 24시간 캐시 정책
	assert.Equal(t, "public, max-age=86400", rec.Header().Get("Cache-Control"))
}

func TestRelayImage_MissingURL(t *testing.T) {
	handler := scrapehandler.NewHandler(newTestRegistry(t), mocks.NewMapFetcher())
	e := newTestServer(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/image", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelayImage_UpstreamFailure(t *testing.T) {
	// 설정되지 않은 URL은 404를 반환한다.
	handler := scrapehandler.NewHandler(newTestRegistry(t), mocks.NewMapFetcher())
	e := newTestServer(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/image?url=https://cdn.example.com/missing.png", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])
}
