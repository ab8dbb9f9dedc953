package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSpace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"빈 문자열", "", ""},
		{"앞뒤 공백", "  hello  ", "hello"},
		{"연속된 공백 축약", "hello   world", "hello world"},
		{"탭과 개행 포함", "hello\t\n world", "hello world"},
		{"한글 텍스트", "  나  혼자만   레벨업  ", "나 혼자만 레벨업"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSpace(tt.input))
		})
	}
}

func TestNormalizeMultiline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"CRLF 변환", "첫 줄\r\n둘째 줄", "첫 줄\n둘째 줄"},
		{"3개 이상의 개행 축약", "첫 줄\n\n\n\n둘째 줄", "첫 줄\n\n둘째 줄"},
		{"2개의 개행은 유지", "첫 줄\n\n둘째 줄", "첫 줄\n\n둘째 줄"},
		{"앞뒤 공백 제거", "\n\n본문\n\n", "본문"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeMultiline(tt.input))
		})
	}
}

func TestAbsolutizeURL(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		origin   string
		expected string
	}{
		{"빈 입력", "", "https://page.kakao.com", ""},
		{"절대 URL 유지", "https://cdn.example.com/a.jpg", "https://page.kakao.com", "https://cdn.example.com/a.jpg"},
		{"프로토콜 상대 URL", "//cdn.example.com/a.jpg", "https://page.kakao.com", "https://cdn.example.com/a.jpg"},
		{"루트 상대 경로", "/images/cover.jpg", "https://page.kakao.com", "https://page.kakao.com/images/cover.jpg"},
		{"origin 끝 슬래시 중복 방지", "/images/cover.jpg", "https://page.kakao.com/", "https://page.kakao.com/images/cover.jpg"},
		{"기타 입력은 그대로", "images/cover.jpg", "https://page.kakao.com", "images/cover.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AbsolutizeURL(tt.rawURL, tt.origin))
		})
	}
}

func TestToBool(t *testing.T) {
	assert.True(t, ToBool(true))
	assert.True(t, ToBool(1))
	assert.True(t, ToBool(float64(19)))
	assert.True(t, ToBool("true"))
	assert.True(t, ToBool("TRUE"))
	assert.True(t, ToBool("1"))
	assert.True(t, ToBool("y"))
	assert.True(t, ToBool("Yes"))

	assert.False(t, ToBool(false))
	assert.False(t, ToBool(0))
	assert.False(t, ToBool(float64(0)))
	assert.False(t, ToBool("false"))
	assert.False(t, ToBool("no"))
	assert.False(t, ToBool(""))
	assert.False(t, ToBool(nil))
	assert.False(t, ToBool([]string{"true"}))
}

func TestToStringSlice(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []string
	}{
		{"문자열 슬라이스", []string{"판타지", " 액션 ", ""}, []string{"판타지", "액션"}},
		{"any 슬라이스", []any{"로맨스", float64(19), true}, []string{"로맨스", "19", "true"}},
		{"쉼표 구분 문자열", "판타지, 액션,드라마", []string{"판타지", "액션", "드라마"}},
		{"파이프 구분 문자열", "판타지|액션", []string{"판타지", "액션"}},
		{"중복 제거", []string{"판타지", "액션", "판타지"}, []string{"판타지", "액션"}},
		{"지원하지 않는 타입", 42, nil},
		{"빈 문자열", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToStringSlice(tt.input))
		})
	}
}

func TestDedupe(t *testing.T) {
	// 첫 등장 순서가 유지되어야 한다.
	assert.Equal(t, []string{"b", "a", "c"}, Dedupe([]string{"b", "a", "b", "c", "a"}))
	assert.Nil(t, Dedupe(nil))
	assert.Nil(t, Dedupe([]string{}))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitAndTrim("a, , b,c", ","))
	assert.Nil(t, SplitAndTrim("", ","))
	assert.Nil(t, SplitAndTrim("  ,  ", ","))
}

func TestStripSiteSuffix(t *testing.T) {
	suffixes := []string{"| 카카오웹툰", "- 카카오페이지", "- 리디북스", "- 리디"}

	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"접미사 없음", "나 혼자만 레벨업", "나 혼자만 레벨업"},
		{"파이프 접미사", "나 혼자만 레벨업 | 카카오웹툰", "나 혼자만 레벨업"},
		{"대시 접미사", "상수리나무 아래 - 리디북스", "상수리나무 아래"},
		{"짧은 접미사", "상수리나무 아래 - 리디", "상수리나무 아래"},
		{"중첩 접미사", "달빛조각사 - 리디북스 - 리디", "달빛조각사"},
		{"빈 문자열", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripSiteSuffix(tt.title, suffixes))
		})
	}
}

// 멱등성: 한 번 제거된 제목에 다시 적용해도 결과가 변하지 않아야 한다.
func TestStripSiteSuffixIdempotent(t *testing.T) {
	suffixes := []string{"| 카카오웹툰", "- 카카오페이지", "- 리디"}

	inputs := []string{
		"나 혼자만 레벨업 | 카카오웹툰",
		"상수리나무 아래 - 리디 - 리디",
		"제목 없음",
		"",
	}

	for _, input := range inputs {
		once := StripSiteSuffix(input, suffixes)
		twice := StripSiteSuffix(once, suffixes)
		assert.Equal(t, once, twice, "input: %q", input)
	}
}

func TestFoldWidth(t *testing.T) {
	assert.Equal(t, "ABC19", FoldWidth("ＡＢＣ１９"))
	assert.Equal(t, "한글", FoldWidth("한글"))
}
