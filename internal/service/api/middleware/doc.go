// Package middleware Echo 서버에 적용되는 애플리케이션 미들웨어를 제공합니다.
//
// 제공 미들웨어:
//   - PanicRecovery: panic 복구 및 스택 트레이스 로깅
//   - HTTPLogger: 구조화된 HTTP 요청/응답 로깅
//   - RateLimiting: IP 기반 Token Bucket 요청 제한
//   - Logger: Echo 내부 로그를 애플리케이션 로거로 통합하는 어댑터
package middleware
