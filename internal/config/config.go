// Package config 애플리케이션 환경설정의 로드와 유효성 검증을 담당합니다.
//
// 설정은 기본값 → JSON 설정 파일 → 환경 변수 순으로 로드되며, 뒤에 로드된 값이 우선합니다.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "toonkeep-server"

	// DefaultFilename 애플리케이션 초기화 시 참조하는 기본 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// DefaultListenPort HTTP 서버의 기본 포트입니다.
	DefaultListenPort = 8080

	// DefaultMaxRetries HTTP 요청 실패 시 최대 재시도 횟수 기본값
	DefaultMaxRetries = 2

	// DefaultRetryDelay 재시도 사이의 대기 시간 기본값
	DefaultRetryDelay = "1s"

	// DefaultFetchTimeout 대상 페이지 요청의 타임아웃 기본값
	DefaultFetchTimeout = "15s"

	// DefaultMaxRedirects 리다이렉트 추적 허용 횟수 기본값
	DefaultMaxRedirects = 5
)

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug      bool             `json:"debug"`
	Server     ServerConfig     `json:"server"`
	HTTPClient HTTPClientConfig `json:"http_client"`
	Notion     NotionConfig     `json:"notion"`

	// Platforms 플랫폼별 설정 오버레이입니다. (키: 플랫폼 ID)
	// 각 플랫폼 리졸버가 provider.DecodeSettings를 통해 자신의 설정 구조체로 디코딩합니다.
	Platforms map[string]map[string]any `json:"platforms"`
}

// ServerConfig HTTP 서버의 바인딩 및 CORS 설정 구조체
type ServerConfig struct {
	ListenPort     int      `json:"listen_port" validate:"min=1,max=65535"`
	RequestTimeout string   `json:"request_timeout"`
	AllowOrigins   []string `json:"allow_origins"`
}

func (c *ServerConfig) validate() error {
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, fmt.Sprintf("요청 타임아웃(request_timeout) 설정이 올바르지 않습니다: '%s' (예: 30s)", c.RequestTimeout))
	}
	return nil
}

// RequestTimeoutDuration 파싱된 요청 타임아웃을 반환합니다.
func (c *ServerConfig) RequestTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// HTTPClientConfig 대상 페이지 요청에 사용되는 HTTP 클라이언트 설정 구조체
type HTTPClientConfig struct {
	MaxRetries   int    `json:"max_retries"`
	RetryDelay   string `json:"retry_delay"`
	FetchTimeout string `json:"fetch_timeout"`
	MaxRedirects int    `json:"max_redirects" validate:"min=0,max=10"`
}

func (c *HTTPClientConfig) validate() error {
	if _, err := time.ParseDuration(c.RetryDelay); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, fmt.Sprintf("HTTP 재시도 대기 시간(retry_delay) 설정이 올바르지 않습니다: '%s' (예: 1s, 500ms)", c.RetryDelay))
	}
	if _, err := time.ParseDuration(c.FetchTimeout); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, fmt.Sprintf("HTTP 요청 타임아웃(fetch_timeout) 설정이 올바르지 않습니다: '%s' (예: 15s)", c.FetchTimeout))
	}
	return nil
}

// RetryDelayDuration 파싱된 재시도 대기 시간을 반환합니다.
func (c *HTTPClientConfig) RetryDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.RetryDelay)
	if err != nil {
		return time.Second
	}
	return d
}

// FetchTimeoutDuration 파싱된 요청 타임아웃을 반환합니다.
func (c *HTTPClientConfig) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// NotionConfig 대상 Notion 데이터베이스 접근 정보를 담는 설정 구조체
//
// 토큰과 데이터베이스 ID는 서버 기동 시점이 아닌, 페이지 생성 요청 시점에 검증됩니다.
// 스크래핑 전용 엔드포인트는 Notion 설정 없이도 동작해야 하기 때문입니다.
type NotionConfig struct {
	Token      string `json:"token"`
	DatabaseID string `json:"database_id"`
}

// Verify 페이지 생성에 필요한 필수 값이 모두 설정되어 있는지 확인합니다.
func (c *NotionConfig) Verify() error {
	if strings.TrimSpace(c.Token) == "" {
		return apperrors.New(apperrors.ErrConfigInvalid, "Notion API 토큰(notion.token)이 설정되지 않았습니다")
	}
	if strings.TrimSpace(c.DatabaseID) == "" {
		return apperrors.New(apperrors.ErrConfigInvalid, "Notion 데이터베이스 ID(notion.database_id)가 설정되지 않았습니다")
	}
	return nil
}

// validate 설정 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate(v *validator.Validate) error {
	if err := v.Struct(c.Server); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, "서버(server) 설정이 유효하지 않습니다")
	}
	if err := c.Server.validate(); err != nil {
		return err
	}

	if err := v.Struct(c.HTTPClient); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInvalidInput, "HTTP 클라이언트(http_client) 설정이 유효하지 않습니다")
	}
	if err := c.HTTPClient.validate(); err != nil {
		return err
	}

	return nil
}

// Load 기본 설정 파일을 읽어 AppConfig 객체를 생성합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
//
// 설정 파일이 존재하지 않는 경우에는 에러가 아니며, 기본값과 환경 변수만으로 동작합니다.
// (컨테이너 환경에서는 환경 변수만으로 모든 설정을 주입하는 것을 권장합니다)
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	err := k.Load(confmap.Provider(map[string]interface{}{
		"server.listen_port":        DefaultListenPort,
		"server.request_timeout":    "60s",
		"server.allow_origins":      []string{"*"},
		"http_client.max_retries":   DefaultMaxRetries,
		"http_client.retry_delay":   DefaultRetryDelay,
		"http_client.fetch_timeout": DefaultFetchTimeout,
		"http_client.max_redirects": DefaultMaxRedirects,
	}, "."), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrConfigInvalid, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기, 파일이 없으면 건너뜀)
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if !os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.ErrConfigInvalid, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
		}
	}

	// 3. 환경 변수 로드 (최우선 순위, JSON 설정 덮어쓰기)
	// 접두사: TOONKEEP_
	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	// 예: TOONKEEP_NOTION__TOKEN -> notion.token
	// 예: TOONKEEP_NOTION__DATABASE_ID -> notion.database_id
	if err := k.Load(env.Provider("TOONKEEP_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "TOONKEEP_")
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrConfigInvalid, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 언마샬링
	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &appConfig,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrConfigInvalid, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 5. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(validator.New()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrConfigInvalid, "설정의 유효성 검증에 실패했습니다")
	}

	return &appConfig, nil
}
