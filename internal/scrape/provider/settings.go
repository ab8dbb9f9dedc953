package provider

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
)

// DecodeSettings 설정 파일의 플랫폼별 오버레이(map)를 플랫폼 고유 설정 구조체로 디코딩합니다.
//
// 각 플랫폼 리졸버는 자신의 설정 구조체(mapstructure 태그)를 정의하고,
// 생성 시점에 이 함수로 디코딩하여 기본값 위에 덮어씁니다.
// raw가 nil이면 아무것도 변경하지 않습니다.
func DecodeSettings(raw map[string]any, out any) error {
	if raw == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrConfigInvalid, "플랫폼 설정 디코더 생성에 실패했습니다")
	}

	if err := decoder.Decode(raw); err != nil {
		return apperrors.Wrap(err, apperrors.ErrConfigInvalid, fmt.Sprintf("플랫폼 설정 디코딩에 실패했습니다: %v", raw))
	}

	return nil
}
