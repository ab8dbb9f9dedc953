// Package constants API 서비스 전반에서 사용되는 상수를 정의합니다.
package constants

import "time"

// 로깅용 컴포넌트 이름
const (
	ComponentService      = "api.service"
	ComponentMiddleware   = "api.middleware"
	ComponentErrorHandler = "api.error_handler"
	ComponentHandler      = "api.handler"
)

// 서버 설정 기본값
const (
	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간
	DefaultRequestTimeout = 60 * time.Second

	// DefaultReadTimeout 요청 본문 읽기 제한
	DefaultReadTimeout = 30 * time.Second

	// DefaultReadHeaderTimeout 요청 헤더 읽기 제한
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 제한
	DefaultWriteTimeout = 90 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 제한
	DefaultIdleTimeout = 120 * time.Second

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP별 버스트 허용량
	DefaultRateLimitBurst = 40

	// DefaultMaxBodySize 요청 본문 최대 크기
	DefaultMaxBodySize = "1M"
)

// 쿼리 파라미터 이름
const (
	// QueryParamURL 대상 페이지 URL
	QueryParamURL = "url"

	// QueryParamDebug 진단 정보 포함 여부
	QueryParamDebug = "debug"
)

// 에러 메시지
const (
	ErrMsgInternalServer  = "서버 내부 오류가 발생했습니다"
	ErrMsgNotFound        = "요청하신 리소스를 찾을 수 없습니다"
	ErrMsgTooManyRequests = "요청 횟수가 제한을 초과했습니다. 잠시 후 다시 시도해 주세요"
	ErrMsgURLRequired     = "필수 파라미터가 누락되었습니다: url"
	ErrMsgTitleRequired   = "필수 필드가 누락되었습니다: title"
	ErrMsgInvalidBody     = "요청 본문을 해석할 수 없습니다"
)
