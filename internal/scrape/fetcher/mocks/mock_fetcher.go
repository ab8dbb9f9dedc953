// Package mocks fetcher 패키지를 사용하는 테스트를 위한 Mock 구현체들을 제공합니다.
package mocks

import (
	"bytes"
	"io"
	"net/http"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher"
)

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ fetcher.Fetcher = (*MockFetcher)(nil)
var _ fetcher.Fetcher = (*MapFetcher)(nil)

// MockFetcher Fetcher 인터페이스의 Mock 구현체 (testify/mock 기반)
//
// 메서드 호출 횟수나 인자 검증 등 정교한 Mock 동작 제어가 필요한 단위 테스트에 사용합니다.
type MockFetcher struct {
	mock.Mock
}

// NewMockFetcher 새로운 MockFetcher 인스턴스를 생성합니다.
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

func (m *MockFetcher) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

// NewMockResponse 주어진 body와 status code를 가진 새로운 http.Response를 생성합니다.
func NewMockResponse(body string, statusCode int) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

// NewMockHTMLResponse Content-Type이 HTML로 설정된 200 OK 응답을 생성합니다.
func NewMockHTMLResponse(html string) *http.Response {
	resp := NewMockResponse(html, http.StatusOK)
	resp.Header.Set("Content-Type", "text/html; charset=utf-8")
	return resp
}

// MapFetcher URL별 응답/에러를 설정할 수 있는 수동 Mock Fetcher (Thread-Safe)
//
// 플랫폼 리졸버 테스트처럼 여러 URL에 대한 응답 시나리오를 구성할 때 사용합니다.
// 설정되지 않은 URL 요청은 404 Not Found를 반환합니다.
type MapFetcher struct {
	mu        sync.Mutex
	responses map[string]mapResponse
	errors    map[string]error
	requests  []string
}

type mapResponse struct {
	body       string
	statusCode int
}

// NewMapFetcher 새로운 MapFetcher를 생성합니다.
func NewMapFetcher() *MapFetcher {
	return &MapFetcher{
		responses: make(map[string]mapResponse),
		errors:    make(map[string]error),
	}
}

// SetHTML 특정 URL에 대한 HTML 성공 응답(200 OK)을 설정합니다.
func (m *MapFetcher) SetHTML(url, html string) {
	m.SetResponse(url, html, http.StatusOK)
}

// SetResponse 특정 URL에 대한 응답 Body와 Status Code를 설정합니다.
func (m *MapFetcher) SetResponse(url, body string, statusCode int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[url] = mapResponse{body: body, statusCode: statusCode}
}

// SetError 특정 URL에 대한 에러를 설정합니다.
func (m *MapFetcher) SetError(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[url] = err
}

// Do Mock HTTP 요청을 수행합니다.
func (m *MapFetcher) Do(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	url := req.URL.String()

	m.mu.Lock()
	m.requests = append(m.requests, url)
	errVal := m.errors[url]
	respVal, hasResponse := m.responses[url]
	m.mu.Unlock()

	if errVal != nil {
		return nil, errVal
	}

	if hasResponse {
		resp := NewMockResponse(respVal.body, respVal.statusCode)
		resp.Header.Set("Content-Type", "text/html; charset=utf-8")
		resp.Request = req
		return resp, nil
	}

	resp := NewMockResponse("", http.StatusNotFound)
	resp.Request = req
	return resp, nil
}

// RequestedURLs 요청된 URL 목록을 순서대로 반환합니다.
func (m *MapFetcher) RequestedURLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	urls := make([]string, len(m.requests))
	copy(urls, m.requests)
	return urls
}

// CallCount 특정 URL이 호출된 횟수를 반환합니다.
func (m *MapFetcher) CallCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, u := range m.requests {
		if u == url {
			count++
		}
	}
	return count
}
