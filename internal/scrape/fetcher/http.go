package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
)

// defaultUserAgent 봇 차단을 우회하기 위해 일반 브라우저의 User-Agent를 사용합니다.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// HTTPFetcher 실제 HTTP 요청을 수행하는 기본 Fetcher 구현체입니다.
//
// 브라우저와 유사한 요청 헤더를 기본으로 설정하고,
// 압축된 응답(gzip/deflate/br)을 투명하게 해제합니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 새로운 HTTPFetcher 인스턴스를 생성합니다.
//
// maxRedirects 횟수를 초과하는 리다이렉트는 에러로 처리됩니다. (0: 리다이렉트 비허용)
func NewHTTPFetcher(timeout time.Duration, maxRedirects int) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("리다이렉트 허용 횟수(%d회)를 초과했습니다", maxRedirects)
				}
				return nil
			},
		},
		userAgent: defaultUserAgent,
	}
}

// Do HTTP 요청을 수행합니다.
//
// 요청에 설정되지 않은 헤더는 브라우저와 유사한 기본값으로 채워지며,
// 응답 본문은 Content-Encoding에 따라 압축이 해제된 상태로 반환됩니다.
func (f *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7")
	}

	// Accept-Encoding을 직접 지정하면 Go 표준 라이브러리의 자동 gzip 해제가 비활성화되므로,
	// 아래에서 Content-Encoding에 따라 직접 압축을 해제합니다.
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, deflate, br")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if err := decodeResponseBody(resp); err != nil {
		drainAndCloseBody(resp.Body)
		return nil, err
	}

	return resp, nil
}

// decodeResponseBody 응답의 Content-Encoding에 따라 Body를 압축 해제 리더로 교체합니다.
func decodeResponseBody(resp *http.Response) error {
	encoding := resp.Header.Get("Content-Encoding")

	var decoded io.Reader
	var closer io.Closer

	switch encoding {
	case "", "identity":
		return nil

	case "gzip":
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("gzip 압축 해제에 실패했습니다: %w", err)
		}
		decoded = gzReader
		closer = gzReader

	case "deflate":
		flateReader := flate.NewReader(resp.Body)
		decoded = flateReader
		closer = flateReader

	case "br":
		decoded = brotli.NewReader(resp.Body)

	default:
		return fmt.Errorf("지원하지 않는 Content-Encoding입니다: '%s'", encoding)
	}

	resp.Body = &decodedBody{
		reader:     decoded,
		decoder:    closer,
		underlying: resp.Body,
	}

	// 압축 해제 후에는 원본 헤더의 길이/인코딩 정보가 더 이상 유효하지 않습니다.
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return nil
}

// decodedBody 압축 해제 리더와 원본 Body를 함께 닫아주는 ReadCloser입니다.
type decodedBody struct {
	reader     io.Reader
	decoder    io.Closer // 압축 해제 리더 (없을 수 있음)
	underlying io.Closer // 원본 응답 Body
}

func (b *decodedBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

func (b *decodedBody) Close() error {
	var firstErr error
	if b.decoder != nil {
		firstErr = b.decoder.Close()
	}
	if err := b.underlying.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
