package fetcher

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
	applog "github.com/toonkeep/toonkeep-server/pkg/log"
)

const (
	// maxAllowedRetries 허용 가능한 최대 재시도 횟수입니다.
	maxAllowedRetries = 5

	// maxRetryDelay 지수 백오프 증가 시의 대기 시간 상한입니다.
	maxRetryDelay = 30 * time.Second
)

// RetryFetcher HTTP 요청 실패 시 자동으로 재시도를 수행하는 미들웨어입니다.
//
// 재시도 전략:
//   - 지수 백오프(Exponential Backoff): 재시도 간격을 2배씩 증가시켜 서버 부하 분산
//   - Jitter: 무작위 지연을 추가하여 동시 다발적인 재시도 방지
//   - 컨텍스트 취소 감지: 대기 중 요청이 취소되면 즉시 중단
//
// 재시도 대상:
//   - 네트워크 오류 (타임아웃, 연결 실패 등)
//   - 5xx 서버 에러, 429 Too Many Requests, 408 Request Timeout
//
// 비멱등 메서드(POST, PATCH)는 데이터 중복 생성 위험이 있으므로 재시도하지 않습니다.
type RetryFetcher struct {
	delegate   Fetcher
	maxRetries int
	retryDelay time.Duration
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher 새로운 RetryFetcher 인스턴스를 생성합니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, retryDelay time.Duration) *RetryFetcher {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if maxRetries > maxAllowedRetries {
		maxRetries = maxAllowedRetries
	}
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	return &RetryFetcher{
		delegate:   delegate,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// Do HTTP 요청을 수행하며, 실패 시 설정된 정책에 따라 자동으로 재시도합니다.
func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	effectiveMaxRetries := f.maxRetries
	if !isIdempotentMethod(req.Method) {
		effectiveMaxRetries = 0
	}

	var lastErr error
	var lastStatusCode int

	for i := 0; i <= effectiveMaxRetries; i++ {
		if i > 0 {
			// 지수 백오프 + Full Jitter: 0 ~ (retryDelay * 2^(i-1)) 범위의 무작위 대기
			delay := f.retryDelay * time.Duration(1<<(i-1))
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
			if delay > 0 {
				delay = time.Duration(rand.Int63n(int64(delay) + 1))
			}
			if delay < time.Millisecond {
				delay = f.retryDelay
			}

			applog.WithComponentAndFields(component, applog.Fields{
				"url":         req.URL.String(),
				"retry":       i,
				"max_retries": effectiveMaxRetries,
				"delay":       delay.String(),
				"last_status": lastStatusCode,
			}).Warn("일시적 오류로 인해 요청을 재시도합니다")

			timer := time.NewTimer(delay)
			select {
			case <-req.Context().Done():
				timer.Stop()
				return nil, req.Context().Err()
			case <-timer.C:
			}
		}

		resp, err := f.delegate.Do(req)

		if err != nil {
			// 컨텍스트 취소/타임아웃은 재시도해도 성공할 수 없으므로 즉시 중단합니다.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || req.Context().Err() != nil {
				return nil, err
			}

			lastErr = err
			lastStatusCode = 0
			continue
		}

		if isRetriableStatus(resp.StatusCode) && i < effectiveMaxRetries {
			lastErr = nil
			lastStatusCode = resp.StatusCode

			// 커넥션 재사용을 위해 응답 객체의 Body를 안전하게 비우고 닫음
			drainAndCloseBody(resp.Body)
			continue
		}

		return resp, nil
	}

	return nil, apperrors.Wrap(lastErr, apperrors.ErrUpstreamFetch,
		"최대 재시도 횟수를 초과했습니다")
}

// isRetriableStatus 재시도 대상 상태 코드인지 여부를 반환합니다.
func isRetriableStatus(statusCode int) bool {
	if statusCode == http.StatusTooManyRequests || statusCode == http.StatusRequestTimeout {
		return true
	}
	if statusCode >= 500 {
		// 501, 505는 영구적인 문제이므로 재시도해도 성공할 가능성이 낮음
		switch statusCode {
		case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported:
			return false
		}
		return true
	}
	return false
}

// isIdempotentMethod 지정된 HTTP 메서드가 멱등한지(재시도가 안전한지) 여부를 반환합니다.
func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}
