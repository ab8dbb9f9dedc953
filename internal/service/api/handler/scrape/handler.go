// Package scrape 스크래핑 및 이미지 중계 엔드포인트를 제공합니다.
package scrape

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
	"github.com/toonkeep/toonkeep-server/internal/service/api/constants"
	"github.com/toonkeep/toonkeep-server/internal/service/api/httputil"
	"github.com/toonkeep/toonkeep-server/internal/service/api/model/response"
	applog "github.com/toonkeep/toonkeep-server/pkg/log"
	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

const (
	// maxImageBytes 이미지 중계 시 허용하는 최대 바이트 수
	maxImageBytes = 10 << 20 // 10MB

	// imageCacheControl 중계된 이미지의 캐시 정책 (24시간)
	imageCacheControl = "public, max-age=86400"
)

// Handler 스크래핑 엔드포인트의 핸들러입니다.
type Handler struct {
	registry *provider.Registry
	fetcher  fetcher.Fetcher
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(registry *provider.Registry, f fetcher.Fetcher) *Handler {
	return &Handler{
		registry: registry,
		fetcher:  f,
	}
}

// Scrape 대상 URL의 호스트로 플랫폼을 판별하여 메타데이터를 추출합니다.
//
// GET /api/v1/scrape?url=&debug=
func (h *Handler) Scrape(c echo.Context) error {
	pageURL := strings.TrimSpace(c.QueryParam(constants.QueryParamURL))
	if pageURL == "" {
		return httputil.NewBadRequestError(constants.ErrMsgURLRequired)
	}

	resolver, err := h.registry.ForURL(pageURL)
	if err != nil {
		return err
	}

	return h.resolve(c, resolver, pageURL)
}

// ScrapePlatform 플랫폼을 명시적으로 지정하여 메타데이터를 추출합니다.
//
// GET /api/v1/scrape/:platform?url=
func (h *Handler) ScrapePlatform(c echo.Context) error {
	pageURL := strings.TrimSpace(c.QueryParam(constants.QueryParamURL))
	if pageURL == "" {
		return httputil.NewBadRequestError(constants.ErrMsgURLRequired)
	}

	platform := c.Param("platform")
	resolver, exists := h.registry.ByPlatform(platform)
	if !exists {
		return apperrors.New(apperrors.ErrNotFound,
			fmt.Sprintf("등록되지 않은 플랫폼입니다: '%s' (지원: %s)", platform, strings.Join(h.registry.Platforms(), ", ")))
	}

	return h.resolve(c, resolver, pageURL)
}

// resolve 리졸버를 실행하고 표준 성공 응답을 반환합니다.
func (h *Handler) resolve(c echo.Context, resolver provider.Resolver, pageURL string) error {
	debug := textutil.ToBool(c.QueryParam(constants.QueryParamDebug))

	result, err := resolver.Resolve(c.Request().Context(), pageURL, debug)
	if err != nil {
		return err
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"platform": resolver.Platform(),
		"url":      pageURL,
		"title":    result.Record.Title,
	}).Info("스크래핑 완료")

	return c.JSON(http.StatusOK, response.NewScrape(resolver.Platform(), result))
}

// RelayImage 외부 이미지를 중계합니다.
//
// GET /api/v1/image?url=
//
// 일부 플랫폼의 CDN은 외부 도메인에서의 직접 참조를 차단하므로,
// 서버가 대신 가져와 24시간 캐시 정책과 함께 전달합니다.
func (h *Handler) RelayImage(c echo.Context) error {
	imageURL := strings.TrimSpace(c.QueryParam(constants.QueryParamURL))
	if imageURL == "" {
		return httputil.NewBadRequestError(constants.ErrMsgURLRequired)
	}

	resp, err := fetcher.Get(c.Request().Context(), h.fetcher, imageURL)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrUpstreamFetch, fmt.Sprintf("이미지 요청에 실패했습니다: '%s'", imageURL))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.New(apperrors.ErrUpstreamFetch,
			fmt.Sprintf("이미지 요청이 실패 상태 코드를 반환했습니다(%d): '%s'", resp.StatusCode, imageURL))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrUpstreamFetch, fmt.Sprintf("이미지 본문을 읽는데 실패했습니다: '%s'", imageURL))
	}

	// Content-Type: 원본 헤더 우선, 없으면 본문에서 추정
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	c.Response().Header().Set("Cache-Control", imageCacheControl)
	return c.Blob(http.StatusOK, contentType, body)
}
