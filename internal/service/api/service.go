// Package api 스크래핑/페이지 생성 API 서버의 생명주기를 관리합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/toonkeep/toonkeep-server/internal/config"
	"github.com/toonkeep/toonkeep-server/internal/pkg/version"
	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
	"github.com/toonkeep/toonkeep-server/internal/service"
	"github.com/toonkeep/toonkeep-server/internal/service/api/constants"
	pagehandler "github.com/toonkeep/toonkeep-server/internal/service/api/handler/page"
	scrapehandler "github.com/toonkeep/toonkeep-server/internal/service/api/handler/scrape"
	"github.com/toonkeep/toonkeep-server/internal/service/api/handler/system"
	applog "github.com/toonkeep/toonkeep-server/pkg/log"
)

// shutdownTimeout Graceful Shutdown 시 최대 대기 시간
const shutdownTimeout = 5 * time.Second

// Service 스크래핑 API 서버의 생명주기를 관리하는 서비스입니다.
//
// 역할:
//   - Echo 기반 HTTP 서버 시작 및 종료
//   - 미들웨어 체인과 라우트 설정
//   - Graceful Shutdown 지원 (5초 타임아웃)
//
// 서비스는 고루틴으로 실행되며, context 취소로 종료 신호를 받습니다.
type Service struct {
	appConfig *config.AppConfig
	registry  *provider.Registry
	fetcher   fetcher.Fetcher
	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ service.Service = (*Service)(nil)

// NewService Service 인스턴스를 생성합니다.
func NewService(appConfig *config.AppConfig, registry *provider.Registry, f fetcher.Fetcher, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic("appConfig는 nil일 수 없습니다")
	}
	if registry == nil {
		panic("registry는 nil일 수 없습니다")
	}
	if f == nil {
		panic("fetcher는 nil일 수 없습니다")
	}

	return &Service{
		appConfig: appConfig,
		registry:  registry,
		fetcher:   f,
		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다.
//
// 이 함수는 즉시 반환되며, 실제 서버는 고루틴에서 실행됩니다.
// serviceStopCtx 취소 시 Graceful Shutdown을 수행합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info("API 서비스를 시작합니다")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn("API 서비스가 이미 실행 중입니다")
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info("API 서비스가 시작되었습니다")

	return nil
}

// runServiceLoop 서비스의 메인 실행 루프입니다.
// 서버 설정, HTTP 서버 시작, Shutdown 대기를 순차적으로 수행합니다.
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버 인스턴스를 생성하고 핸들러와 라우트를 설정합니다.
func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.NewHandler(s.buildInfo)
	scrapeHandler := scrapehandler.NewHandler(s.registry, s.fetcher)
	pageHandler := pagehandler.NewHandler(s.registry, &s.appConfig.Notion, pagehandler.DefaultClientFactory)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:          s.appConfig.Debug,
		AllowOrigins:   s.appConfig.Server.AllowOrigins,
		RequestTimeout: s.appConfig.Server.RequestTimeoutDuration(),
	})

	RegisterRoutes(e, systemHandler, scrapeHandler, pageHandler)

	return e
}

// startHTTPServer HTTP 서버를 시작합니다.
// 이 함수는 블로킹되며, 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.Server.ListenPort
	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": port,
	}).Debug("HTTP 서버를 시작합니다")

	err := e.Start(fmt.Sprintf(":%d", port))

	s.handleServerError(err)
}

// handleServerError HTTP 서버 종료 시 발생한 에러를 처리합니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	// http.ErrServerClosed: Graceful Shutdown 완료
	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info("HTTP 서버가 정상 종료되었습니다")
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.Server.ListenPort,
		"error": err,
	}).Error("HTTP 서버가 비정상 종료되었습니다")
}

// waitForShutdown 종료 신호를 대기하고 Graceful Shutdown을 수행합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info("API 서비스를 종료합니다")
	case <-httpServerDone:
		// HTTP 서버가 예기치 않게 종료됨 (포트 바인딩 실패 등)
		// 이미 종료되었으므로 Shutdown 호출 없이 상태만 정리
		applog.WithComponent(constants.ComponentService).Error("HTTP 서버가 예기치 않게 종료되었습니다")

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error("HTTP 서버 Shutdown 중 오류가 발생했습니다")
	}

	<-httpServerDone

	s.cleanup()
}

// cleanup 서비스 종료 후 상태를 정리합니다.
func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info("API 서비스가 종료되었습니다")
}
