package provider

import (
	"context"
)

// Resolver 하나의 플랫폼을 담당하는 필드 리졸버 인터페이스입니다.
//
// 구현체는 요청 단위로 상태를 가지지 않아야 하며(stateless),
// 추출 실패는 에러가 아니라 빈 필드로 표현해야 합니다.
// 에러는 주 페이지 요청 실패 등 복구 불가능한 경우에만 반환합니다.
type Resolver interface {
	// Platform 플랫폼의 고유 식별자를 반환합니다. (예: "kakao-webtoon")
	Platform() string

	// Hosts 이 리졸버가 처리하는 호스트 이름 목록을 반환합니다.
	Hosts() []string

	// Resolve 대상 URL의 페이지를 가져와 메타데이터 레코드를 추출합니다.
	// debug가 true이면 결과에 중간 신호 정보가 포함됩니다.
	Resolve(ctx context.Context, pageURL string, debug bool) (*Result, error)
}
