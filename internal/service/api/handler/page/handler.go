// Package page 스크래핑 결과 또는 수동 입력으로 Notion 페이지를 생성하는 엔드포인트를 제공합니다.
package page

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/toonkeep/toonkeep-server/internal/config"
	"github.com/toonkeep/toonkeep-server/internal/notion"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
	"github.com/toonkeep/toonkeep-server/internal/service/api/constants"
	"github.com/toonkeep/toonkeep-server/internal/service/api/httputil"
	"github.com/toonkeep/toonkeep-server/internal/service/api/model/response"
	applog "github.com/toonkeep/toonkeep-server/pkg/log"
	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// ClientFactory Notion 토큰으로 Client를 생성하는 팩토리 함수입니다.
// 토큰은 요청 시점에 검증되므로 Client도 요청 시점에 생성합니다.
type ClientFactory func(token string) notion.Client

// DefaultClientFactory 실제 Notion API Client를 생성합니다.
func DefaultClientFactory(token string) notion.Client {
	return notion.NewAPIClient(token)
}

// Handler 페이지 생성 엔드포인트의 핸들러입니다.
type Handler struct {
	registry  *provider.Registry
	notionCfg *config.NotionConfig
	newClient ClientFactory
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(registry *provider.Registry, notionCfg *config.NotionConfig, newClient ClientFactory) *Handler {
	return &Handler{
		registry:  registry,
		notionCfg: notionCfg,
		newClient: newClient,
	}
}

// createRequest 페이지 생성 요청 본문입니다.
//
// url 외의 필드는 모두 선택 사항이며, 지정된 필드는 스크래핑 결과를 덮어씁니다.
// genre는 문자열("판타지, 로맨스") 또는 문자열 배열을 모두 허용합니다.
type createRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Publisher   string   `json:"publisher"`
	Genre       any      `json:"genre"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"desc"`
}

// CreateFromURL 대상 URL을 스크래핑한 결과로 Notion 페이지를 생성합니다.
// 요청 본문에 지정된 필드는 스크래핑 결과보다 우선합니다.
//
// POST /api/v1/pages
func (h *Handler) CreateFromURL(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgInvalidBody)
	}

	pageURL := strings.TrimSpace(req.URL)
	if pageURL == "" {
		return httputil.NewBadRequestError(constants.ErrMsgURLRequired)
	}

	resolver, err := h.registry.ForURL(pageURL)
	if err != nil {
		return err
	}

	result, err := resolver.Resolve(c.Request().Context(), pageURL, false)
	if err != nil {
		return err
	}

	record := result.Record
	overlayRequest(&record, &req)

	return h.create(c, record)
}

// CreateRecord 스크래핑 없이 요청 본문의 값만으로 Notion 페이지를 생성합니다.
//
// POST /api/v1/records
func (h *Handler) CreateRecord(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgInvalidBody)
	}

	if strings.TrimSpace(req.Title) == "" {
		return httputil.NewBadRequestError(constants.ErrMsgTitleRequired)
	}

	var record provider.Record
	overlayRequest(&record, &req)
	record.URL = strings.TrimSpace(req.URL)

	return h.create(c, record)
}

// create 레코드를 대상 스키마로 정규화하여 페이지를 생성합니다.
func (h *Handler) create(c echo.Context, record provider.Record) error {
	if err := h.notionCfg.Verify(); err != nil {
		return err
	}

	ctx := c.Request().Context()
	client := h.newClient(h.notionCfg.Token)

	schema, err := client.DescribeSchema(ctx, h.notionCfg.DatabaseID)
	if err != nil {
		return err
	}

	normalized, err := notion.NewNormalizer(schema).Normalize(record)
	if err != nil {
		return err
	}

	page, err := client.CreatePage(ctx, h.notionCfg.DatabaseID, normalized.Input)
	if err != nil {
		return err
	}

	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"title":            record.Title,
		"page_id":          page.ID,
		"dropped_keywords": normalized.DroppedKeywords,
	}).Info("Notion 페이지 생성 완료")

	return c.JSON(http.StatusOK, response.NewPageCreated(page, normalized.DroppedKeywords))
}

// overlayRequest 요청 본문에 지정된 필드로 레코드를 덮어씁니다.
func overlayRequest(record *provider.Record, req *createRequest) {
	if title := strings.TrimSpace(req.Title); title != "" {
		record.Title = title
	}
	if author := strings.TrimSpace(req.Author); author != "" {
		record.AuthorName = author
	}
	if publisher := strings.TrimSpace(req.Publisher); publisher != "" {
		record.PublisherName = publisher
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		record.Description = desc
	}
	if genres := textutil.ToStringSlice(req.Genre); len(genres) > 0 {
		record.Genre = genres
	}
	if len(req.Keywords) > 0 {
		record.Keywords = textutil.Dedupe(req.Keywords)
	}
}
