package provider

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/toonkeep/toonkeep-server/internal/scrape/extract"
	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher"
	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// minPlausibleViewerID 뷰어/에피소드 ID로 인정하는 최소 숫자 크기입니다.
// 이보다 작은 숫자는 페이지 번호나 카운터일 가능성이 높습니다.
const minPlausibleViewerID = 10000

// ViewerLocator 보조(뷰어/첫화) 페이지의 링크를 찾는 단계적 탐색기입니다.
//
// 탐색 순서:
//  1. href가 알려진 경로 패턴과 일치하는 anchor
//  2. 원본 HTML에 대한 절대 URL 정규식
//  3. 원본 HTML에 대한 상대 URL 정규식 (Origin 접두)
//  4. 렌더링 데이터 풀에서 뷰어 ID 키 탐색 후 콘텐츠 ID와 결합하여 URL 합성
//
// 각 단계는 실패 시 조용히 다음 단계로 넘어가며, 모두 실패하면 빈 문자열을 반환합니다.
type ViewerLocator struct {
	// HrefPattern anchor href가 뷰어 링크인지 검증하는 패턴
	HrefPattern *regexp.Regexp

	// AbsoluteURLPattern 원본 HTML에서 절대 뷰어 URL을 찾는 패턴
	AbsoluteURLPattern *regexp.Regexp

	// RelativeURLPattern 원본 HTML에서 상대 뷰어 URL을 찾는 패턴
	RelativeURLPattern *regexp.Regexp

	// Origin 상대 URL 절대화에 사용되는 플랫폼 오리진 (예: "https://page.kakao.com")
	Origin string

	// SynthesizeURL 풀에서 찾은 뷰어 ID와 콘텐츠 ID로 뷰어 URL을 합성합니다.
	// nil이면 4단계(풀 탐색)를 건너뜁니다.
	SynthesizeURL func(contentID, viewerID string) string
}

// Locate 보조 페이지 URL을 탐색합니다. 찾지 못하면 빈 문자열을 반환합니다.
func (l *ViewerLocator) Locate(page *fetcher.Page, pool *extract.Pool, contentID string) string {
	// 1단계: anchor href 패턴 매칭
	if l.HrefPattern != nil && page.Document != nil {
		var found string
		page.Document.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			if l.HrefPattern.MatchString(href) {
				found = textutil.AbsolutizeURL(href, l.Origin)
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	// 2단계: 절대 URL 정규식
	if l.AbsoluteURLPattern != nil {
		if match := l.AbsoluteURLPattern.FindString(page.HTML); match != "" {
			return match
		}
	}

	// 3단계: 상대 URL 정규식
	if l.RelativeURLPattern != nil {
		if match := l.RelativeURLPattern.FindString(page.HTML); match != "" {
			return textutil.AbsolutizeURL(match, l.Origin)
		}
	}

	// 4단계: 렌더링 데이터 풀 키 탐색
	if l.SynthesizeURL != nil && pool != nil && contentID != "" {
		if viewerID := FindViewerIDFromPool(pool); viewerID != "" {
			return l.SynthesizeURL(contentID, viewerID)
		}
	}

	return ""
}

// 뷰어 ID 키 이름의 우선순위 접두 단어 (낮을수록 우선)
var viewerIDKeyRanks = []string{"first", "opening", "default", "represent", "latest"}

// viewerIDKeyHints 뷰어 ID 키 이름에 반드시 포함되어야 하는 단어
var viewerIDKeyHints = []string{"episode", "viewer", "product"}

// FindViewerIDFromPool 렌더링 데이터 풀에서 첫화/뷰어 ID로 추정되는 값을 찾습니다.
//
// 키 이름이 (episode|viewer|product)와 id를 모두 포함하는 항목 중,
// 값이 충분히 큰 숫자(>= 10000)이거나 5자리 이상의 숫자 문자열인 것을 후보로 수집하고,
// 키 이름의 우선순위(first > opening > default > represent > latest > 기타)로 순위를 매겨
// 최상위 후보의 ID를 반환합니다. 동순위에서는 먼저 발견된 후보가 우선합니다.
func FindViewerIDFromPool(pool *extract.Pool) string {
	bestID := ""
	bestRank := len(viewerIDKeyRanks) + 1

	pool.ForEachEntry(func(key string, value gjson.Result) bool {
		id, ok := plausibleViewerID(value)
		if !ok {
			return true
		}

		lowerKey := strings.ToLower(key)
		if !containsAny(lowerKey, viewerIDKeyHints) || !strings.Contains(lowerKey, "id") {
			return true
		}

		rank := len(viewerIDKeyRanks) // 접두 단어가 없는 키는 최하위
		for i, word := range viewerIDKeyRanks {
			if strings.Contains(lowerKey, word) {
				rank = i
				break
			}
		}

		if rank < bestRank {
			bestRank = rank
			bestID = id
		}

		// 최상위 순위를 찾았으면 더 볼 필요가 없습니다.
		return bestRank != 0
	})

	return bestID
}

// plausibleViewerID 값이 뷰어 ID로 그럴듯한지 검사하고 문자열 형태로 반환합니다.
func plausibleViewerID(value gjson.Result) (string, bool) {
	switch value.Type {
	case gjson.Number:
		n := value.Int()
		if n >= minPlausibleViewerID {
			return strconv.FormatInt(n, 10), true
		}
	case gjson.String:
		s := strings.TrimSpace(value.String())
		if len(s) >= 5 && isAllDigits(s) {
			return s, true
		}
	}
	return "", false
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
