// Package response API 응답 본문의 JSON 모델을 정의합니다.
//
// 모든 응답은 ok 필드를 포함합니다. 성공 시 ok=true와 함께 데이터 필드가,
// 실패 시 ok=false와 함께 error 메시지가 내려갑니다.
package response

import (
	"github.com/toonkeep/toonkeep-server/internal/notion"
	"github.com/toonkeep/toonkeep-server/internal/pkg/version"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
)

// ErrorResponse 실패 응답 모델입니다.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// NewError 실패 응답을 생성합니다.
func NewError(message string) ErrorResponse {
	return ErrorResponse{OK: false, Error: message}
}

// ScrapeResponse 스크래핑 성공 응답 모델입니다.
// 추출 레코드의 필드들이 최상위에 펼쳐집니다.
type ScrapeResponse struct {
	OK       bool   `json:"ok"`
	Platform string `json:"platform"`
	provider.Record
	Debug *provider.Debug `json:"debug,omitempty"`
}

// NewScrape 스크래핑 성공 응답을 생성합니다.
func NewScrape(platform string, result *provider.Result) ScrapeResponse {
	return ScrapeResponse{
		OK:       true,
		Platform: platform,
		Record:   result.Record,
		Debug:    result.Debug,
	}
}

// PageCreatedResponse 페이지 생성 성공 응답 모델입니다.
type PageCreatedResponse struct {
	OK bool `json:"ok"`

	// ID 생성된 페이지의 식별자
	ID string `json:"id"`

	// URL 생성된 페이지의 URL
	URL string `json:"url"`

	// DroppedKeywords 대상 스키마에 옵션이 없어 제외된 키워드 목록
	DroppedKeywords []string `json:"droppedKeywords,omitempty"`
}

// NewPageCreated 페이지 생성 성공 응답을 생성합니다.
func NewPageCreated(page *notion.CreatedPage, droppedKeywords []string) PageCreatedResponse {
	return PageCreatedResponse{
		OK:              true,
		ID:              page.ID,
		URL:             page.URL,
		DroppedKeywords: droppedKeywords,
	}
}

// HealthResponse 서비스 상태 확인 응답 모델입니다.
type HealthResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// VersionResponse 빌드 정보 응답 모델입니다.
type VersionResponse struct {
	OK bool `json:"ok"`
	version.Info
}
