// Package errors 애플리케이션 전용 에러 타입과 에러 분류 체계를 제공합니다.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType 에러의 종류를 나타내는 타입
type ErrorType string

const (
	// 일반적인 에러 타입
	ErrUnknown      ErrorType = "Unknown"
	ErrInvalidInput ErrorType = "InvalidInput"
	ErrNotFound     ErrorType = "NotFound"
	ErrInternal     ErrorType = "Internal"

	// Domain Specific Errors
	ErrConfigInvalid   ErrorType = "ConfigInvalid"   // 필수 환경설정 누락/불일치
	ErrUpstreamFetch   ErrorType = "UpstreamFetch"   // 대상 페이지 요청 실패
	ErrSchemaMismatch  ErrorType = "SchemaMismatch"  // 대상 데이터베이스 스키마 불일치
	ErrDestinationFail ErrorType = "DestinationFail" // 대상 데이터베이스 기록 실패
)

// AppError 애플리케이션 전용 에러 구조체
type AppError struct {
	Type    ErrorType // 에러 종류
	Message string    // 사용자에게 보여줄 메시지
	Cause   error     // 원인 에러 (Wrapping)
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, msg string) error {
	return &AppError{
		Type:    errType,
		Message: msg,
	}
}

// Wrap 기존 에러를 감싸서 새로운 에러를 생성합니다.
func Wrap(err error, errType ErrorType, msg string) error {
	return &AppError{
		Type:    errType,
		Message: msg,
		Cause:   err,
	}
}

// Is 에러 타입이 일치하는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// GetType 에러 타입을 반환합니다. AppError가 아니거나 nil이면 ErrUnknown을 반환합니다.
func GetType(err error) ErrorType {
	if err == nil {
		return ErrUnknown
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrUnknown
}

// Cause 원인 에러를 반환합니다.
func Cause(err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Cause
	}
	return nil
}

// HTTPStatus 에러 타입에 대응하는 HTTP 상태 코드를 반환합니다.
//
// 요청 경계(핸들러)에서만 호출됩니다. 추출 파이프라인 내부의 함수들은
// 에러를 반환하지 않으므로 이 매핑을 거치지 않습니다.
func HTTPStatus(err error) int {
	switch GetType(err) {
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUpstreamFetch, ErrDestinationFail:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
