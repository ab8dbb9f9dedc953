// Package textutil 스크래핑된 텍스트의 정규화를 위한 순수 유틸리티 함수들을 제공합니다.
package textutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

var (
	// 3개 이상의 연속된 개행을 찾는 정규식
	multiNewlineRegexp = regexp.MustCompile(`\n{3,}`)

	// URL 스킴(scheme) 존재 여부를 판별하는 정규식
	schemeRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
)

// NormalizeSpace 문자열의 앞뒤 공백을 제거하고 연속된 공백을 하나로 축약합니다.
// 예: "  hello   world  " -> "hello world"
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeMultiline 여러 줄 텍스트를 정규화합니다.
// CRLF를 LF로 변환하고, 3개 이상의 연속된 개행을 2개로 축약하며, 앞뒤 공백을 제거합니다.
func NormalizeMultiline(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = multiNewlineRegexp.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// AbsolutizeURL 상대 URL을 절대 URL로 변환합니다.
//
// 변환 규칙:
//   - 빈 입력은 빈 문자열을 반환
//   - 이미 스킴이 있는 URL은 그대로 반환
//   - "//"로 시작하면 "https:"를 접두
//   - "/"로 시작하면 baseOrigin을 접두
//   - 그 외에는 입력을 그대로 반환 (최선 노력)
func AbsolutizeURL(rawURL, baseOrigin string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	if schemeRegexp.MatchString(rawURL) {
		return rawURL
	}
	if strings.HasPrefix(rawURL, "//") {
		return "https:" + rawURL
	}
	if strings.HasPrefix(rawURL, "/") {
		return strings.TrimSuffix(baseOrigin, "/") + rawURL
	}
	return rawURL
}

// ToBool 임의의 값을 bool로 변환합니다.
// 불리언, 0이 아닌 숫자, "true"/"1"/"y"/"yes"(대소문자 무시) 문자열을 true로 취급합니다.
func ToBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "y", "yes":
			return true
		}
	}
	return false
}

// ToStringSlice 임의의 값을 문자열 슬라이스로 변환합니다.
//
// 실제 슬라이스라면 각 요소를 문자열화하여 앞뒤 공백을 제거한 후 빈 요소를 버리고,
// 구분자(쉼표 또는 파이프)가 포함된 문자열이라면 분리합니다. 그 외에는 빈 슬라이스를 반환합니다.
// 결과는 첫 등장 순서를 유지하며 중복이 제거됩니다.
func ToStringSlice(v any) []string {
	var items []string

	switch t := v.(type) {
	case []string:
		items = t
	case []any:
		for _, e := range t {
			items = append(items, stringify(e))
		}
	case string:
		items = strings.FieldsFunc(t, func(r rune) bool {
			return r == ',' || r == '|'
		})
	default:
		return nil
	}

	var result []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}

	return Dedupe(result)
}

// Dedupe 첫 등장 순서를 유지하면서 중복된 항목을 제거합니다.
func Dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}

// SplitAndTrim 주어진 구분자로 문자열을 분리한 후, 각 항목의 앞뒤 공백을 제거하고 빈 문자열을 제외한 슬라이스를 반환합니다.
// 결과가 없거나 입력 문자열이 비어있는 경우 nil을 반환합니다.
func SplitAndTrim(s, sep string) []string {
	tokens := strings.Split(s, sep)

	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token != "" {
			result = append(result, token)
		}
	}

	if len(result) == 0 {
		return nil
	}

	return result
}

// StripSiteSuffix 제목 끝에 붙는 사이트 장식 문구를 제거합니다.
//
// 접미사 목록을 순서대로 검사하여 대소문자 구분 없이 제거하고, 제거할 때마다 앞뒤 공백을 정리합니다.
// 더 이상 제거할 접미사가 없을 때까지 반복하므로 멱등성이 보장됩니다.
func StripSiteSuffix(title string, suffixes []string) string {
	title = strings.TrimSpace(title)

	for {
		removed := false
		for _, suffix := range suffixes {
			suffix = strings.TrimSpace(suffix)
			if suffix == "" {
				continue
			}
			if len(title) >= len(suffix) &&
				strings.EqualFold(title[len(title)-len(suffix):], suffix) {
				title = strings.TrimSpace(title[:len(title)-len(suffix)])
				removed = true
			}
		}
		if !removed {
			break
		}
	}

	return title
}

// FoldWidth 전각 문자를 반각으로 변환합니다. (예: "ＡＢＣ１９" -> "ABC19")
func FoldWidth(s string) string {
	return width.Narrow.String(s)
}

// stringify JSON 디코딩 결과로 나올 수 있는 값들을 사람이 읽을 수 있는 문자열로 변환합니다.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
