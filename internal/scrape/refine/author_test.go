package refine_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toonkeep/toonkeep-server/internal/scrape/refine"
)

func TestBuildAuthorLine(t *testing.T) {
	tests := []struct {
		name     string
		set      refine.CandidateSet
		expected string
	}{
		{
			name:     "역할 라벨과 괄호 장르 제거",
			set:      refine.CandidateSet{RawAuthor: "작가: 추공 (드라마)", Title: "바람의 나라"},
			expected: "추공",
		},
		{
			name:     "영문 역할 라벨 제거",
			set:      refine.CandidateSet{RawAuthor: "Author: Foo (Drama)", Title: "Bar"},
			expected: "Foo",
		},
		{
			name:     "구분자로 연결된 복수 작가",
			set:      refine.CandidateSet{RawAuthor: "추공, 장성락", Title: "나 혼자만 레벨업"},
			expected: "추공, 장성락",
		},
		{
			name:     "장르 어휘 토큰 제거",
			set:      refine.CandidateSet{RawAuthor: "로맨스 | 김수지", Title: "상수리나무 아래"},
			expected: "김수지",
		},
		{
			name:     "제목 반복 토큰 제거",
			set:      refine.CandidateSet{RawAuthor: "달빛조각사 / 남희성", Title: "달빛조각사"},
			expected: "남희성",
		},
		{
			name:     "모든 토큰이 걸러지면 최소 정제 폴백 사용",
			set:      refine.CandidateSet{RawAuthor: "작가: 로맨스", Title: "어떤 제목"},
			expected: "로맨스",
		},
		{
			name:     "빈 입력은 빈 출력",
			set:      refine.CandidateSet{RawAuthor: "", Title: "제목"},
			expected: "",
		},
		{
			name: "역할 세그먼트 조립",
			set: refine.CandidateSet{
				RawAuthor:       "추공",
				Title:           "나 혼자만 레벨업",
				OriginalAuthors: []string{"추공"},
				Artists:         []string{"장성락", "이진환"},
			},
			expected: "추공 · 원작: 추공 · 그림: 장성락, 이진환",
		},
		{
			name: "기본 작가 없이 역할 세그먼트만 구성",
			set: refine.CandidateSet{
				RawAuthor: "",
				Adapters:  []string{"김용"},
				Artists:   []string{"문정후"},
			},
			expected: "글: 김용 · 그림: 문정후",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, refine.BuildAuthorLine(tt.set))
		})
	}
}

// 원시 작가 문자열이 비어있지 않으면 출력도 비어있지 않아야 한다.
// (단, 원시 문자열이 제목과 동일한 경우는 제외)
func TestBuildAuthorLine_NonEmptyGuarantee(t *testing.T) {
	rawAuthors := []string{
		"추공",
		"작가: 홍길동",
		"로맨스",       // 장르 어휘만 있어도 폴백이 동작해야 함
		"글: 김용 (무협)", // 역할 라벨 + 괄호
		"a, b | c · d / e",
	}

	for _, raw := range rawAuthors {
		result := refine.BuildAuthorLine(refine.CandidateSet{RawAuthor: raw, Title: "전혀 다른 제목"})
		assert.NotEmpty(t, result, "raw: %q", raw)
	}
}

// 원시 작가 문자열이 제목과 동일하면 기본 작가 부분은 제목이 되어서는 안 된다.
func TestBuildAuthorLine_TitleExclusion(t *testing.T) {
	title := "나 혼자만 레벨업"

	result := refine.BuildAuthorLine(refine.CandidateSet{RawAuthor: title, Title: title})
	assert.Empty(t, result)

	// 역할 세그먼트가 있으면 세그먼트만으로 구성된다.
	result = refine.BuildAuthorLine(refine.CandidateSet{
		RawAuthor: title,
		Title:     title,
		Artists:   []string{"장성락"},
	})
	assert.Equal(t, "그림: 장성락", result)
}

// 출력에 단독 장르 어휘 토큰이 포함되어서는 안 된다.
func TestBuildAuthorLine_NoGenreTokens(t *testing.T) {
	result := refine.BuildAuthorLine(refine.CandidateSet{
		RawAuthor: "판타지, 추공, 액션",
		Title:     "어떤 제목",
	})

	for _, token := range strings.Split(result, ", ") {
		assert.NotEqual(t, "판타지", token)
		assert.NotEqual(t, "액션", token)
	}
	assert.Equal(t, "추공", result)
}

func TestCleanGenres(t *testing.T) {
	tests := []struct {
		name     string
		genres   []string
		expected []string
	}{
		{"정상 장르 유지", []string{"로맨스", "판타지"}, []string{"로맨스", "판타지"}},
		{"배제 단어 제거", []string{"웹툰", "무협", "연재"}, []string{"무협"}},
		{"중복 제거", []string{"액션", "액션", "드라마"}, []string{"액션", "드라마"}},
		{"전각 문자 정규화", []string{"ＢＬ"}, []string{"BL"}},
		{"빈 입력", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, refine.CleanGenres(tt.genres))
		})
	}
}
