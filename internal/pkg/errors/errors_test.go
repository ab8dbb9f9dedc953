package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, ErrUpstreamFetch, "대상 페이지 요청이 실패했습니다")

	assert.True(t, Is(err, ErrUpstreamFetch))
	assert.False(t, Is(err, ErrInvalidInput))
	assert.Equal(t, cause, Cause(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetType(t *testing.T) {
	assert.Equal(t, ErrUnknown, GetType(nil))
	assert.Equal(t, ErrUnknown, GetType(fmt.Errorf("plain error")))
	assert.Equal(t, ErrSchemaMismatch, GetType(New(ErrSchemaMismatch, "제목 속성을 찾을 수 없습니다")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected int
	}{
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{ErrUpstreamFetch, http.StatusBadGateway},
		{ErrDestinationFail, http.StatusBadGateway},
		{ErrConfigInvalid, http.StatusInternalServerError},
		{ErrSchemaMismatch, http.StatusInternalServerError},
		{ErrInternal, http.StatusInternalServerError},
		{ErrUnknown, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errType), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(New(tt.errType, "테스트 에러")))
		})
	}

	// AppError가 아닌 일반 에러는 500으로 처리된다.
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("plain")))
}
