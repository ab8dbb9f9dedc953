// Package kakaopage 카카오페이지(page.kakao.com) 작품 페이지의 필드 리졸버를 제공합니다.
package kakaopage

import (
	"context"
	"regexp"
	"strings"

	"github.com/toonkeep/toonkeep-server/internal/scrape/extract"
	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
	"github.com/toonkeep/toonkeep-server/internal/scrape/refine"
	"github.com/toonkeep/toonkeep-server/pkg/log"
	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

const (
	// PlatformID 플랫폼 고유 식별자
	PlatformID = "kakao-page"

	// component 로깅용 컴포넌트 이름
	component = "provider.kakaopage"

	origin = "https://page.kakao.com"
)

var (
	// contentIDRegexp 작품 URL 경로에서 콘텐츠 ID를 추출하는 정규식
	contentIDRegexp = regexp.MustCompile(`/content/(\d+)`)

	// 뷰어 페이지 링크 탐색 패턴 (작품 ID/상품 ID 조합)
	viewerHrefRegexp        = regexp.MustCompile(`^/content/\d+/viewer/\d+`)
	viewerAbsoluteURLRegexp = regexp.MustCompile(`https://page\.kakao\.com/content/\d+/viewer/\d+`)
	viewerRelativeURLRegexp = regexp.MustCompile(`/content/\d+/viewer/\d+`)
)

// poolKeys 카카오페이지 렌더링 데이터의 키 후보 집합
var poolKeys = provider.PoolKeys{
	Title:       []string{"seriesTitle", "title"},
	Author:      []string{"author", "authorName"},
	AuthorList:  []string{"authors", "authorList"},
	Description: []string{"synopsis", "seriesSynopsis", "description"},
	Cover:       []string{"thumbnail", "thumbnailUrl", "coverImageUrl"},
	GenreList:   []string{"subcategoryList", "genres"},
	Genre:       []string{"category", "subcategory", "genre"},
	Keywords:    []string{"seoKeywords", "keywords", "tags"},
	Adult:       []string{"adult", "isAdult", "adultOnly"},
	AgeGrade:    []string{"ageGrade", "ageLimit"},
}

// Settings 카카오페이지 리졸버의 설정 오버레이입니다.
type Settings struct {
	Referer        string   `mapstructure:"referer"`
	SuffixPatterns []string `mapstructure:"suffix_patterns"`

	// FetchViewerPage 보조(뷰어) 페이지 보강 수행 여부
	FetchViewerPage bool `mapstructure:"fetch_viewer_page"`
}

func defaultSettings() Settings {
	return Settings{
		Referer:         origin + "/",
		SuffixPatterns:  []string{"- 카카오페이지", "| 카카오페이지"},
		FetchViewerPage: true,
	}
}

// Resolver 카카오페이지 필드 리졸버
type Resolver struct {
	fetcher  fetcher.Fetcher
	settings Settings
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ provider.Resolver = (*Resolver)(nil)

// New 새로운 카카오페이지 리졸버를 생성합니다.
// rawSettings는 설정 파일의 플랫폼별 오버레이이며 nil일 수 있습니다.
func New(f fetcher.Fetcher, rawSettings map[string]any) (*Resolver, error) {
	settings := defaultSettings()
	if err := provider.DecodeSettings(rawSettings, &settings); err != nil {
		return nil, err
	}

	return &Resolver{fetcher: f, settings: settings}, nil
}

func (r *Resolver) Platform() string {
	return PlatformID
}

func (r *Resolver) Hosts() []string {
	return []string{"page.kakao.com"}
}

// Resolve 작품 페이지에서 메타데이터 레코드를 추출합니다.
//
// 계층 우선순위: 구조화 데이터 → OG 메타 태그 → 내장 상태 풀 → 스크립트 정규식 → DOM 텍스트
// 뷰어 페이지 보강: 뷰어 페이지의 설명이 엄격히 더 길면 교체하고, 성인 플래그는 OR로 누적합니다.
// 뷰어 페이지 요청 실패는 흡수되며 주 페이지 결과가 그대로 반환됩니다.
func (r *Resolver) Resolve(ctx context.Context, pageURL string, debug bool) (*provider.Result, error) {
	page, err := fetcher.FetchPage(ctx, r.fetcher, pageURL, r.settings.Referer)
	if err != nil {
		return nil, err
	}

	var debugInfo *provider.Debug
	if debug {
		debugInfo = &provider.Debug{}
	}

	pool := extract.NewPool(
		extract.NextDataJSON(page.Document),
		extract.CacheStateJSON(page.HTML),
	)

	signals := r.collectSignals(page, pool, debugInfo)

	// 뷰어 페이지 보강 (실패는 항상 흡수)
	if r.settings.FetchViewerPage {
		r.enrichFromViewerPage(ctx, page, pool, &signals, debugInfo)
	}

	record := provider.BuildRecord(pageURL, origin, r.settings.SuffixPatterns, signals)
	return &provider.Result{Record: record, Debug: debugInfo}, nil
}

// collectSignals 모든 신호 계층을 우선순위 순서로 병합합니다.
func (r *Resolver) collectSignals(page *fetcher.Page, pool *extract.Pool, debugInfo *provider.Debug) extract.Signals {
	signals := extract.FromStructuredData(page.Document)
	signals.Merge(extract.FromMetaTags(page.Document))

	embedded := provider.SignalsFromPool(pool, poolKeys)
	embedded.OriginalAuthors, embedded.Adapters, embedded.Artists = provider.RoleAuthorsFromPool(pool)
	signals.Merge(embedded)

	// 후순위 폴백: 스크립트 정규식 계층
	signals.Merge(extract.Signals{
		AuthorName: extract.LooseString(page.HTML, "author", "writer", "authorName"),
		Genres:     textutil.ToStringSlice(extract.LooseString(page.HTML, "category", "subcategory", "genre")),
	})

	// 최후순위: DOM 텍스트 휴리스틱 (이미 확정된 제목 기준)
	if signals.AuthorName == "" {
		resolvedTitle := textutil.StripSiteSuffix(signals.Title, r.settings.SuffixPatterns)
		signals.AuthorName = extract.AuthorFromDOMText(page.Document, resolvedTitle, refine.Disqualifiers)
		if signals.AuthorName != "" {
			debugInfo.AddNote("author: dom-text-heuristic")
		}
	}
	if len(signals.Genres) == 0 {
		signals.Genres = extract.GenresFromDOMText(page.Document, "장르", refine.LayoutStopwords)
	}

	if hasAdultTitleMarker(signals.Title) {
		signals.IsAdult = true
	}

	// 저작권 크레딧 최후 수단
	if signals.AuthorName == "" {
		signals.AuthorName = extract.AuthorFromCopyright(signals.Description)
		if signals.AuthorName != "" {
			debugInfo.AddNote("author: copyright-credit")
		}
	}

	return signals
}

// enrichFromViewerPage 뷰어(첫화) 페이지를 찾아 설명/성인 플래그를 보강합니다.
func (r *Resolver) enrichFromViewerPage(ctx context.Context, page *fetcher.Page, pool *extract.Pool, signals *extract.Signals, debugInfo *provider.Debug) {
	contentID := contentIDFromURL(page.URL)

	locator := &provider.ViewerLocator{
		HrefPattern:        viewerHrefRegexp,
		AbsoluteURLPattern: viewerAbsoluteURLRegexp,
		RelativeURLPattern: viewerRelativeURLRegexp,
		Origin:             origin,
		SynthesizeURL: func(contentID, viewerID string) string {
			return origin + "/content/" + contentID + "/viewer/" + viewerID
		},
	}

	viewerURL := locator.Locate(page, pool, contentID)
	if viewerURL == "" {
		return
	}
	if debugInfo != nil {
		debugInfo.SecondaryURL = viewerURL
	}

	viewerPage, err := fetcher.FetchPage(ctx, r.fetcher, viewerURL, r.settings.Referer)
	if err != nil {
		// 보조 페이지 실패는 흡수: 주 페이지 결과만으로 진행합니다.
		log.WithComponentAndFields(component, log.Fields{
			"viewer_url": viewerURL,
			"error":      err.Error(),
		}).Debug("뷰어 페이지 보강에 실패하여 주 페이지 결과만 사용합니다")
		return
	}

	viewerSignals := extract.FromMetaTags(viewerPage.Document)
	viewerPool := extract.NewPool(
		extract.NextDataJSON(viewerPage.Document),
		extract.CacheStateJSON(viewerPage.HTML),
	)
	viewerSignals.Merge(provider.SignalsFromPool(viewerPool, poolKeys))

	if signals.OverrideDescriptionIfLonger(viewerSignals.Description) {
		debugInfo.AddNote("desc: viewer-page-override")
	}
	signals.IsAdult = signals.IsAdult || viewerSignals.IsAdult
}

// contentIDFromURL 작품 URL에서 콘텐츠 ID를 추출합니다.
func contentIDFromURL(pageURL string) string {
	match := contentIDRegexp.FindStringSubmatch(pageURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// 제목에 붙는 성인 마커 검사용 (예: "[19세 완전판]")
var adultTitleMarkerRegexp = regexp.MustCompile(`\[?19(세|금|\+)`)

// hasAdultTitleMarker 제목 문자열에 성인 마커가 포함되어 있는지 확인합니다.
func hasAdultTitleMarker(title string) bool {
	return adultTitleMarkerRegexp.MatchString(strings.TrimSpace(title))
}
