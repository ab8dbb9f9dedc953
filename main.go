package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/toonkeep/toonkeep-server/internal/config"
	"github.com/toonkeep/toonkeep-server/internal/pkg/version"
	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider/kakaopage"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider/kakaowebtoon"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider/ridibooks"
	"github.com/toonkeep/toonkeep-server/internal/service"
	"github.com/toonkeep/toonkeep-server/internal/service/api"
	applog "github.com/toonkeep/toonkeep-server/pkg/log"
)

// 빌드 정보 변수 (ldflags로 주입됨)
var (
	Version     = "dev"     // Git 커밋 해시
	BuildDate   = "unknown" // 빌드 날짜
	BuildNumber = "0"       // 빌드 번호
)

const banner = `
  _____                     _  __
 |_   _|___    ___   _ __  | |/ /  ___   ___  _ __
   | | / _ \  / _ \ | '_ \ | ' /  / _ \ / _ \| '_ \
   | || (_) || (_) || | | || . \ |  __/|  __/| |_) |
   |_| \___/  \___/ |_| |_||_|\_\ \___| \___|| .__/
                                             |_|     v%s
--------------------------------------------------------------------------------
`

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	// 환경설정 정보를 읽어들인다.
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 로그를 초기화한다.
	logOptions := applog.NewProductionConfig(config.AppName)
	if appConfig.Debug {
		logOptions = applog.NewDevelopmentConfig(config.AppName)
	}
	logCloser, err := applog.Setup(logOptions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "로그 초기화 실패: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logCloser.Close() }()

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	fmt.Printf(banner, Version)

	// 빌드 정보 등록 및 출력
	buildInfo := version.Info{
		Version:     Version,
		BuildDate:   BuildDate,
		BuildNumber: BuildNumber,
		GoVersion:   runtime.Version(),
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
	}
	version.Set(buildInfo)
	log.Infof("빌드 정보 - 버전: %s, 빌드 날짜: %s, 빌드 번호: %s", Version, BuildDate, BuildNumber)
	log.Infof("Go 버전: %s, OS/Arch: %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	// HTTP 클라이언트 체인을 구성한다. (기본 클라이언트 + 재시도)
	httpFetcher := fetcher.NewHTTPFetcher(
		appConfig.HTTPClient.FetchTimeoutDuration(),
		appConfig.HTTPClient.MaxRedirects,
	)
	retryFetcher := fetcher.NewRetryFetcher(
		httpFetcher,
		appConfig.HTTPClient.MaxRetries,
		appConfig.HTTPClient.RetryDelayDuration(),
	)

	// 플랫폼 리졸버를 등록한다.
	registry, err := buildRegistry(retryFetcher, appConfig.Platforms)
	if err != nil {
		log.Fatalf("플랫폼 리졸버 등록 실패: %v", err)
	}
	log.Infof("등록된 플랫폼: %v", registry.Platforms())

	apiService := api.NewService(appConfig, registry, retryFetcher, buildInfo)

	// Set up cancellation context and waitgroup
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWaiter := &sync.WaitGroup{}

	// 서비스를 시작한다.
	services := []service.Service{apiService}
	for _, s := range services {
		serviceStopWaiter.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWaiter); err != nil {
			log.Errorf("서비스 시작 실패: %v", err)
			cancel() // 다른 서비스들도 종료
			serviceStopWaiter.Wait()
			log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	<-termC // Blocks here until interrupted

	// Handle shutdown
	log.Info("Shutdown signal received")
	cancel()                 // Signal cancellation to context.Context
	serviceStopWaiter.Wait() // Block here until are workers are done
}

// buildRegistry 지원하는 모든 플랫폼 리졸버를 생성하여 등록합니다.
// platformSettings의 각 항목은 해당 플랫폼 리졸버의 설정 오버레이로 전달됩니다.
func buildRegistry(f fetcher.Fetcher, platformSettings map[string]map[string]any) (*provider.Registry, error) {
	registry := provider.NewRegistry()

	kakaoWebtoon, err := kakaowebtoon.New(f, platformSettings[kakaowebtoon.PlatformID])
	if err != nil {
		return nil, err
	}
	kakaoPage, err := kakaopage.New(f, platformSettings[kakaopage.PlatformID])
	if err != nil {
		return nil, err
	}
	ridi, err := ridibooks.New(f, platformSettings[ridibooks.PlatformID])
	if err != nil {
		return nil, err
	}

	for _, resolver := range []provider.Resolver{kakaoWebtoon, kakaoPage, ridi} {
		if err := registry.Register(resolver); err != nil {
			return nil, err
		}
	}

	return registry, nil
}
