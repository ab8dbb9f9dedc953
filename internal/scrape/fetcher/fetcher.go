// Package fetcher 대상 플랫폼 페이지를 가져오는 HTTP 클라이언트 계층을 제공합니다.
//
// Fetcher 인터페이스를 중심으로 재시도 등의 기능을 데코레이터 패턴으로 조합할 수 있도록 설계되었습니다.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
)

// component 로깅용 컴포넌트 이름
const component = "scrape.fetcher"

// maxBodyBytes 응답 본문을 읽을 때 허용하는 최대 바이트 수입니다.
// 비정상적으로 큰 응답으로 인한 메모리 고갈을 방지합니다.
const maxBodyBytes = 8 << 20 // 8MB

// Fetcher HTTP 요청을 수행하는 핵심 인터페이스입니다.
//
// 구현 시 주의사항:
//   - 반환된 응답 객체의 Body는 반드시 호출자가 닫아야 합니다.
//   - Context 취소 시 즉시 요청을 중단하고 적절한 에러를 반환해야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Page 가져온 HTML 페이지의 파싱 결과입니다.
//
// 추출 파이프라인의 각 단계가 원본 HTML 문자열(정규식 기반 단계)과
// 파싱된 DOM(goquery 기반 단계)을 모두 필요로 하므로 둘 다 보관합니다.
type Page struct {
	// URL 리다이렉트가 모두 반영된 최종 URL입니다.
	URL string

	// StatusCode HTTP 응답 상태 코드
	StatusCode int

	// HTML 문자 인코딩이 UTF-8로 정규화된 원본 HTML 텍스트
	HTML string

	// Document 파싱된 DOM 트리
	Document *goquery.Document
}

// Get 지정된 URL로 HTTP GET 요청을 전송하는 헬퍼 함수입니다.
//
// 요청 실패 시 커넥션 재사용을 위해 응답 객체의 Body를 자동으로 비우고 닫습니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	return GetWithReferer(ctx, f, url, "")
}

// GetWithReferer Referer 헤더를 포함하여 HTTP GET 요청을 전송합니다.
//
// 일부 플랫폼(CDN 포함)은 Referer가 없는 요청을 차단하므로,
// 플랫폼별 설정에 따라 Referer를 지정할 수 있습니다.
func GetWithReferer(ctx context.Context, f Fetcher, url, referer string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInvalidInput, fmt.Sprintf("HTTP 요청 객체 생성에 실패했습니다: '%s'", url))
	}
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			// 커넥션 재사용을 위해 응답 객체의 Body를 안전하게 비우고 닫음
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

// FetchPage 대상 URL의 HTML 페이지를 가져와 파싱 결과를 반환합니다.
//
// 처리 과정:
//  1. GET 요청 수행 (Referer 선택적 포함)
//  2. 상태 코드 검사 (2xx 외에는 에러)
//  3. Content-Type 기반 문자 인코딩 감지 및 UTF-8 변환
//  4. goquery DOM 파싱
func FetchPage(ctx context.Context, f Fetcher, pageURL, referer string) (*Page, error) {
	resp, err := GetWithReferer(ctx, f, pageURL, referer)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrUpstreamFetch, fmt.Sprintf("페이지 요청에 실패했습니다: '%s'", pageURL))
	}
	defer drainAndCloseBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusNotFound {
			return nil, apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("페이지를 찾을 수 없습니다(404): '%s'", pageURL))
		}
		return nil, apperrors.New(apperrors.ErrUpstreamFetch, fmt.Sprintf("페이지 요청이 실패 상태 코드를 반환했습니다(%d): '%s'", resp.StatusCode, pageURL))
	}

	// 문자 인코딩 감지: EUC-KR 등으로 서빙되는 페이지를 UTF-8로 정규화합니다.
	contentType := resp.Header.Get("Content-Type")
	reader, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), contentType)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrUpstreamFetch, fmt.Sprintf("응답 본문의 문자 인코딩 처리에 실패했습니다: '%s'", pageURL))
	}

	htmlBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrUpstreamFetch, fmt.Sprintf("응답 본문을 읽는데 실패했습니다: '%s'", pageURL))
	}

	html := string(htmlBytes)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrUpstreamFetch, fmt.Sprintf("HTML 문서 파싱에 실패했습니다: '%s'", pageURL))
	}

	finalURL := pageURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Page{
		URL:        finalURL,
		StatusCode: resp.StatusCode,
		HTML:       html,
		Document:   doc,
	}, nil
}

// drainAndCloseBody 응답 객체의 Body를 안전하게 비우고 닫습니다.
// Body를 끝까지 읽어야 HTTP 커넥션이 재사용될 수 있습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxBodyBytes))
	_ = body.Close()
}
