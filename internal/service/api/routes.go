package api

import (
	"github.com/labstack/echo/v4"

	pagehandler "github.com/toonkeep/toonkeep-server/internal/service/api/handler/page"
	scrapehandler "github.com/toonkeep/toonkeep-server/internal/service/api/handler/scrape"
	"github.com/toonkeep/toonkeep-server/internal/service/api/handler/system"
)

// RegisterRoutes API 서비스의 모든 라우트를 등록합니다.
//
// 엔드포인트 구성:
//   - 시스템: 서비스 상태 확인(/healthz) 및 버전 정보(/version)
//   - 스크래핑: 플랫폼 자동 판별(/api/v1/scrape) 및 명시 지정(/api/v1/scrape/:platform)
//   - 페이지 생성: 스크래핑 기반(/api/v1/pages) 및 수동 입력(/api/v1/records)
//   - 이미지 중계: /api/v1/image
func RegisterRoutes(e *echo.Echo, systemHandler *system.Handler, scrapeHandler *scrapehandler.Handler, pageHandler *pagehandler.Handler) {
	e.GET("/healthz", systemHandler.HealthCheck)
	e.GET("/version", systemHandler.Version)

	v1 := e.Group("/api/v1")
	v1.GET("/scrape", scrapeHandler.Scrape)
	v1.GET("/scrape/:platform", scrapeHandler.ScrapePlatform)
	v1.GET("/image", scrapeHandler.RelayImage)
	v1.POST("/pages", pageHandler.CreateFromURL)
	v1.POST("/records", pageHandler.CreateRecord)
}
