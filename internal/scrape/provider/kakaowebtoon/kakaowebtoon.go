// Package kakaowebtoon 카카오웹툰(webtoon.kakao.com) 작품 페이지의 필드 리졸버를 제공합니다.
package kakaowebtoon

import (
	"context"

	"github.com/toonkeep/toonkeep-server/internal/scrape/extract"
	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
	"github.com/toonkeep/toonkeep-server/internal/scrape/refine"
	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// PlatformID 플랫폼 고유 식별자
const PlatformID = "kakao-webtoon"

const origin = "https://webtoon.kakao.com"

// poolKeys 카카오웹툰 렌더링 데이터의 키 후보 집합
var poolKeys = provider.PoolKeys{
	Title:       []string{"title", "contentTitle", "seoTitle"},
	Author:      []string{"author", "artistName"},
	AuthorList:  []string{"authors", "artists"},
	Description: []string{"synopsis", "description", "catchphraseThreeLines"},
	Cover:       []string{"sharingThumbnailImage", "backgroundImage", "thumbnailImage", "featuredCharacterImageA"},
	GenreList:   []string{"seoKeywords", "genres"},
	Genre:       []string{"genre", "category"},
	Keywords:    []string{"seoKeywords", "keywords"},
	Adult:       []string{"adult", "isAdult"},
	AgeGrade:    []string{"ageGrade", "ageLimit"},
}

// Settings 카카오웹툰 리졸버의 설정 오버레이입니다.
type Settings struct {
	Referer        string   `mapstructure:"referer"`
	SuffixPatterns []string `mapstructure:"suffix_patterns"`
}

func defaultSettings() Settings {
	return Settings{
		Referer:        origin + "/",
		SuffixPatterns: []string{"| 카카오웹툰", "- 카카오웹툰"},
	}
}

// Resolver 카카오웹툰 필드 리졸버
type Resolver struct {
	fetcher  fetcher.Fetcher
	settings Settings
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ provider.Resolver = (*Resolver)(nil)

// New 새로운 카카오웹툰 리졸버를 생성합니다.
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
	return []string{"webtoon.kakao.com"}
}

// Resolve 작품 페이지에서 메타데이터 레코드를 추출합니다.
//
// 카카오웹툰은 주 페이지의 렌더링 데이터에 필요한 신호가 모두 포함되므로
// 보조 페이지 보강 없이 단일 페이지에서 해석합니다.
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

	signals := extract.FromStructuredData(page.Document)
	signals.Merge(extract.FromMetaTags(page.Document))

	embedded := provider.SignalsFromPool(pool, poolKeys)
	embedded.OriginalAuthors, embedded.Adapters, embedded.Artists = provider.RoleAuthorsFromPool(pool)
	signals.Merge(embedded)

	signals.Merge(extract.Signals{
		AuthorName: extract.LooseString(page.HTML, "author", "artistName", "writer"),
		Genres:     textutil.ToStringSlice(extract.LooseString(page.HTML, "genre", "category")),
	})

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
	if signals.AuthorName == "" {
		signals.AuthorName = extract.AuthorFromCopyright(signals.Description)
		if signals.AuthorName != "" {
			debugInfo.AddNote("author: copyright-credit")
		}
	}

	record := provider.BuildRecord(pageURL, origin, r.settings.SuffixPatterns, signals)
	return &provider.Result{Record: record, Debug: debugInfo}, nil
}
