// Package refine 잡음이 섞인 원시 작가 문자열을 구조화된 크레딧 라인으로 정제합니다.
//
// 플랫폼에서 추출된 작가 신호에는 장르 어휘, 제목 반복, 역할 라벨 등이 섞여 들어오므로,
// 이를 걸러내고 역할 주석이 달린 작가 라인(원작/글/그림)을 재조립합니다.
package refine

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// parentheticalRegexp 괄호로 감싼 구간을 찾는 정규식 (반각/전각 모두)
var parentheticalRegexp = regexp.MustCompile(`\([^)]*\)|（[^）]*）|\[[^\]]*\]`)

// CandidateSet 작가 라인 조립에 필요한 원시 신호 묶음입니다.
//
// 요청마다 추출된 신호로부터 생성되어 한 번 소비되고 버려집니다.
type CandidateSet struct {
	RawAuthor string // 원시 작가 문자열 (잡음 포함 가능)
	Title     string // 이미 확정된 작품 제목 (제목 반복 제거에 사용)

	// 역할별 작가 목록 (내장 상태 계층에서 수집된 경우에만 채워짐)
	OriginalAuthors []string // 원작
	Adapters        []string // 글/각색
	Artists         []string // 그림
}

// BuildAuthorLine 원시 신호를 정제하여 최종 작가 라인을 조립합니다.
//
// 알고리즘:
//  1. 최소 정제 폴백 계산: 선두 역할 라벨 제거 + 공백 정리
//  2. 안전 필터링: 괄호 구간 제거 → 구분자 분리 → 장르어/제목 반복/역할 라벨/과도하게 긴 토큰 제거
//  3. 필터링 결과가 있으면 ", "로 연결, 없으면 1의 폴백 사용 (비어있지 않은 출력 보장)
//  4. 역할별 작가 목록을 "라벨: 이름들" 세그먼트로 렌더링하여 " · "로 연결
//
// 원시 작가 문자열이 제목과 동일한 경우는 예외로, 기본 작가 부분을 비우고
// 역할 세그먼트만으로 라인을 구성합니다. (제목이 작가로 표기되는 오류 방지)
func BuildAuthorLine(set CandidateSet) string {
	fallback := minimalClean(set.RawAuthor)

	base := strings.Join(safeFilter(set.RawAuthor, set.Title), ", ")
	if base == "" {
		base = fallback
	}

	// 기본 작가 부분이 제목과 사실상 동일하면 버립니다.
	if base != "" && normalizeForComparison(base) == normalizeForComparison(set.Title) {
		base = ""
	}

	segments := make([]string, 0, 4)
	if base != "" {
		segments = append(segments, base)
	}
	segments = appendRoleSegment(segments, RoleLabelOriginal, set.OriginalAuthors)
	segments = appendRoleSegment(segments, RoleLabelAdapter, set.Adapters)
	segments = appendRoleSegment(segments, RoleLabelArtist, set.Artists)

	return strings.Join(segments, " · ")
}

// CleanGenres 추출된 장르 목록에서 카테고리 라벨 잡음을 제거하고 정규화합니다.
func CleanGenres(genres []string) []string {
	var cleaned []string

	for _, genre := range genres {
		genre = textutil.NormalizeSpace(textutil.FoldWidth(genre))
		if genre == "" || isDisqualifier(genre) {
			continue
		}
		cleaned = append(cleaned, genre)
	}

	return textutil.Dedupe(cleaned)
}

// minimalClean 최소한의 정제만 수행한 폴백 작가 문자열을 반환합니다.
func minimalClean(rawAuthor string) string {
	s := leadingRoleLabelRegexp.ReplaceAllString(strings.TrimSpace(rawAuthor), "")
	return textutil.NormalizeSpace(s)
}

// safeFilter 원시 작가 문자열에서 안전하게 필터링된 작가명 후보 목록을 생성합니다.
func safeFilter(rawAuthor, title string) []string {
	// 괄호 구간은 장르/부가 설명인 경우가 대부분이므로 먼저 제거합니다.
	s := parentheticalRegexp.ReplaceAllString(rawAuthor, " ")

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == '·' || r == '/'
	})

	normalizedTitle := normalizeForComparison(title)

	var result []string
	for _, token := range tokens {
		token = minimalClean(token)
		if token == "" {
			continue
		}
		if isGenreWord(token) {
			continue
		}
		if isTitleEcho(token, normalizedTitle) {
			continue
		}
		if isBareRoleLabel(token) {
			continue
		}
		if utf8.RuneCountInString(token) > maxAuthorTokenLength {
			// 이름이라기에는 너무 길다 (설명문일 가능성)
			continue
		}
		result = append(result, token)
	}

	return textutil.Dedupe(result)
}

// appendRoleSegment 역할별 작가 목록이 비어있지 않으면 "라벨: 이름들" 세그먼트를 추가합니다.
func appendRoleSegment(segments []string, label string, names []string) []string {
	var cleaned []string
	for _, name := range names {
		name = textutil.NormalizeSpace(name)
		if name != "" {
			cleaned = append(cleaned, name)
		}
	}
	cleaned = textutil.Dedupe(cleaned)

	if len(cleaned) == 0 {
		return segments
	}
	return append(segments, label+": "+strings.Join(cleaned, ", "))
}

// isGenreWord 토큰이 장르/카테고리 어휘이거나 장르 접미 패턴과 일치하는지 확인합니다.
func isGenreWord(token string) bool {
	for _, word := range GenreWords {
		if strings.EqualFold(token, word) {
			return true
		}
	}
	return genreSuffixRegexp.MatchString(token) && utf8.RuneCountInString(token) <= 6
}

// isTitleEcho 토큰이 제목과 동일하거나 포함 관계에 있는지 확인합니다.
func isTitleEcho(token, normalizedTitle string) bool {
	if normalizedTitle == "" {
		return false
	}

	normalizedToken := normalizeForComparison(token)
	if normalizedToken == "" {
		return false
	}

	return normalizedToken == normalizedTitle ||
		strings.Contains(normalizedTitle, normalizedToken) ||
		strings.Contains(normalizedToken, normalizedTitle)
}

// isBareRoleLabel 토큰이 단독 역할 라벨인지 확인합니다.
func isBareRoleLabel(token string) bool {
	for _, label := range RoleLabels {
		if strings.EqualFold(token, label) {
			return true
		}
	}
	return false
}

// isDisqualifier 토큰이 배제 단어와 일치하는지 확인합니다.
func isDisqualifier(token string) bool {
	for _, word := range Disqualifiers {
		if token == word {
			return true
		}
	}
	return false
}

// normalizeForComparison 비교용 정규화: 소문자 변환 후 공백과 문장부호를 제거합니다.
func normalizeForComparison(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
