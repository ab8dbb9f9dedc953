package provider_test

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
	"github.com/toonkeep/toonkeep-server/internal/scrape/extract"
	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
)

type stubResolver struct {
	platform string
	hosts    []string
}

func (r *stubResolver) Platform() string { return r.platform }
func (r *stubResolver) Hosts() []string  { return r.hosts }
func (r *stubResolver) Resolve(_ context.Context, pageURL string, _ bool) (*provider.Result, error) {
	return &provider.Result{Record: provider.Record{URL: pageURL}}, nil
}

func TestRegistry(t *testing.T) {
	t.Run("플랫폼 ID와 호스트로 리졸버를 찾는다", func(t *testing.T) {
		registry := provider.NewRegistry()
		require.NoError(t, registry.Register(&stubResolver{platform: "ridibooks", hosts: []string{"ridibooks.com"}}))
		require.NoError(t, registry.Register(&stubResolver{platform: "kakao-page", hosts: []string{"page.kakao.com"}}))

		resolver, exists := registry.ByPlatform("ridibooks")
		require.True(t, exists)
		assert.Equal(t, "ridibooks", resolver.Platform())

		resolver, err := registry.ForURL("https://ridibooks.com/books/123")
		require.NoError(t, err)
		assert.Equal(t, "ridibooks", resolver.Platform())

		assert.Equal(t, []string{"kakao-page", "ridibooks"}, registry.Platforms())
	})

	t.Run("서브도메인도 매칭된다", func(t *testing.T) {
		registry := provider.NewRegistry()
		require.NoError(t, registry.Register(&stubResolver{platform: "ridibooks", hosts: []string{"ridibooks.com"}}))

		resolver, err := registry.ForURL("https://www.ridibooks.com/books/123")
		require.NoError(t, err)
		assert.Equal(t, "ridibooks", resolver.Platform())
	})

	t.Run("중복 등록은 에러", func(t *testing.T) {
		registry := provider.NewRegistry()
		require.NoError(t, registry.Register(&stubResolver{platform: "dup", hosts: []string{"a.com"}}))
		assert.Error(t, registry.Register(&stubResolver{platform: "dup", hosts: []string{"b.com"}}))
		assert.Error(t, registry.Register(&stubResolver{platform: "other", hosts: []string{"a.com"}}))
	})

	t.Run("지원하지 않는 호스트는 InvalidInput 에러", func(t *testing.T) {
		registry := provider.NewRegistry()

		_, err := registry.ForURL("https://unknown.example.com/page")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("URL 형식이 잘못되면 InvalidInput 에러", func(t *testing.T) {
		registry := provider.NewRegistry()

		for _, rawURL := range []string{"", "not-a-url", "ftp://example.com/x"} {
			_, err := registry.ForURL(rawURL)
			assert.Error(t, err, "url: %q", rawURL)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		}
	})
}

func TestBuildRecord(t *testing.T) {
	signals := extract.Signals{
		Title:       "나 혼자만 레벨업 | 카카오웹툰",
		AuthorName:  "작가: 추공 (판타지)",
		CoverURL:    "/images/cover.jpg",
		Genres:      []string{"판타지", "웹툰", "액션", "판타지"},
		Description: "첫 줄\r\n\n\n\n둘째 줄",
		IsAdult:     true,
	}

	record := provider.BuildRecord(
		"https://webtoon.kakao.com/content/123",
		"https://webtoon.kakao.com",
		[]string{"| 카카오웹툰"},
		signals,
	)

	assert.Equal(t, "나 혼자만 레벨업", record.Title)
	assert.Equal(t, "추공", record.AuthorName)
	assert.Equal(t, "https://webtoon.kakao.com/images/cover.jpg", record.CoverURL)
	assert.Equal(t, []string{"판타지", "액션"}, record.Genre)
	assert.Equal(t, "첫 줄\n\n둘째 줄", record.Description)
	assert.True(t, record.IsAdult)
	assert.Equal(t, "https://webtoon.kakao.com/content/123", record.URL)
}

func newTestPage(t *testing.T, html string) *fetcher.Page {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return &fetcher.Page{HTML: html, Document: doc}
}

func TestViewerLocator(t *testing.T) {
	locator := &provider.ViewerLocator{
		HrefPattern:        regexp.MustCompile(`^/content/\d+/viewer/\d+`),
		AbsoluteURLPattern: regexp.MustCompile(`https://page\.kakao\.com/content/\d+/viewer/\d+`),
		RelativeURLPattern: regexp.MustCompile(`/content/\d+/viewer/\d+`),
		Origin:             "https://page.kakao.com",
		SynthesizeURL: func(contentID, viewerID string) string {
			return "https://page.kakao.com/content/" + contentID + "/viewer/" + viewerID
		},
	}

	t.Run("1단계: anchor href 패턴", func(t *testing.T) {
		page := newTestPage(t, `<html><body><a href="/content/100/viewer/200">첫화 보기</a></body></html>`)

		url := locator.Locate(page, extract.NewPool(), "100")
		assert.Equal(t, "https://page.kakao.com/content/100/viewer/200", url)
	})

	t.Run("2단계: 절대 URL 정규식", func(t *testing.T) {
		page := newTestPage(t, `<html><body><script>var u = "https://page.kakao.com/content/100/viewer/300";</script></body></html>`)

		url := locator.Locate(page, extract.NewPool(), "100")
		assert.Equal(t, "https://page.kakao.com/content/100/viewer/300", url)
	})

	t.Run("3단계: 상대 URL 정규식", func(t *testing.T) {
		page := newTestPage(t, `<html><body><script>route("/content/100/viewer/400");</script></body></html>`)

		url := locator.Locate(page, extract.NewPool(), "100")
		assert.Equal(t, "https://page.kakao.com/content/100/viewer/400", url)
	})

	t.Run("4단계: 풀 키 탐색으로 URL 합성", func(t *testing.T) {
		page := newTestPage(t, `<html><body></body></html>`)
		pool := extract.NewPool(`{"firstEpisodeId": 54321}`)

		url := locator.Locate(page, pool, "100")
		assert.Equal(t, "https://page.kakao.com/content/100/viewer/54321", url)
	})

	t.Run("모든 단계 실패 시 빈 문자열", func(t *testing.T) {
		page := newTestPage(t, `<html><body>아무 링크 없음</body></html>`)

		assert.Empty(t, locator.Locate(page, extract.NewPool(), "100"))
	})
}

func TestFindViewerIDFromPool(t *testing.T) {
	t.Run("키 이름 우선순위에 따라 순위를 매긴다", func(t *testing.T) {
		pool := extract.NewPool(`{
			"latestEpisodeId": 99999,
			"defaultViewerId": 88888,
			"firstEpisodeId": 77777
		}`)

		assert.Equal(t, "77777", provider.FindViewerIDFromPool(pool))
	})

	t.Run("작은 숫자는 ID 후보에서 제외된다", func(t *testing.T) {
		pool := extract.NewPool(`{"firstEpisodeId": 42}`)
		assert.Empty(t, provider.FindViewerIDFromPool(pool))
	})

	t.Run("5자리 이상의 숫자 문자열도 허용된다", func(t *testing.T) {
		pool := extract.NewPool(`{"openingProductId": "123456"}`)
		assert.Equal(t, "123456", provider.FindViewerIDFromPool(pool))
	})

	t.Run("힌트 단어가 없는 키는 무시된다", func(t *testing.T) {
		pool := extract.NewPool(`{"randomBigNumber": 123456789}`)
		assert.Empty(t, provider.FindViewerIDFromPool(pool))
	})

	t.Run("접두 단어가 없는 키는 최하위 순위", func(t *testing.T) {
		pool := extract.NewPool(`{
			"episodeId": 11111,
			"latestViewerId": 22222
		}`)

		assert.Equal(t, "22222", provider.FindViewerIDFromPool(pool))
	})
}

func TestDecodeSettings(t *testing.T) {
	type platformSettings struct {
		Referer        string   `mapstructure:"referer"`
		SuffixPatterns []string `mapstructure:"suffix_patterns"`
	}

	t.Run("맵을 구조체로 디코딩한다", func(t *testing.T) {
		settings := platformSettings{Referer: "기본값"}
		err := provider.DecodeSettings(map[string]any{
			"referer":         "https://page.kakao.com/",
			"suffix_patterns": []any{"- 카카오페이지"},
		}, &settings)
		require.NoError(t, err)

		assert.Equal(t, "https://page.kakao.com/", settings.Referer)
		assert.Equal(t, []string{"- 카카오페이지"}, settings.SuffixPatterns)
	})

	t.Run("nil 맵은 기본값을 유지한다", func(t *testing.T) {
		settings := platformSettings{Referer: "기본값"}
		require.NoError(t, provider.DecodeSettings(nil, &settings))
		assert.Equal(t, "기본값", settings.Referer)
	})
}
