// Package system 서비스 상태 확인과 버전 정보 엔드포인트를 제공합니다.
package system

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/toonkeep/toonkeep-server/internal/pkg/version"
	"github.com/toonkeep/toonkeep-server/internal/service/api/model/response"
)

// Handler 시스템 엔드포인트의 핸들러입니다.
type Handler struct {
	buildInfo version.Info
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(buildInfo version.Info) *Handler {
	return &Handler{buildInfo: buildInfo}
}

// HealthCheck 서비스의 동작 상태를 반환합니다.
func (h *Handler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, response.HealthResponse{
		OK:     true,
		Status: "healthy",
	})
}

// Version 빌드 정보를 반환합니다.
func (h *Handler) Version(c echo.Context) error {
	return c.JSON(http.StatusOK, response.VersionResponse{
		OK:   true,
		Info: h.buildInfo,
	})
}
