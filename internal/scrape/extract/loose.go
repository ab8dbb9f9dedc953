package extract

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// 구조화/메타/내장 상태 계층이 모두 실패했을 때 사용되는 후순위 폴백 추출기입니다.
// HTML을 파싱하지 않고 원본 텍스트에 대해 `"<key>":"<value>"` 형태의 단순 정규식을 적용합니다.

var (
	looseRegexpCache   = make(map[string]*regexp.Regexp)
	looseRegexpCacheMu sync.Mutex
)

// looseStringRegexp `"<key>"\s*:\s*"<value>"` 패턴의 정규식을 반환합니다. (키별 캐싱)
func looseStringRegexp(key string) *regexp.Regexp {
	looseRegexpCacheMu.Lock()
	defer looseRegexpCacheMu.Unlock()

	cacheKey := "s:" + key
	if re, ok := looseRegexpCache[cacheKey]; ok {
		return re
	}

	re := regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	looseRegexpCache[cacheKey] = re
	return re
}

// looseArrayRegexp `"<key>"\s*:\s*[...]` 패턴의 정규식을 반환합니다. (키별 캐싱)
func looseArrayRegexp(key string) *regexp.Regexp {
	looseRegexpCacheMu.Lock()
	defer looseRegexpCacheMu.Unlock()

	cacheKey := "a:" + key
	if re, ok := looseRegexpCache[cacheKey]; ok {
		return re
	}

	re := regexp.MustCompile(`"` + regexp.QuoteMeta(key) + `"\s*:\s*\[([^\]]*)\]`)
	looseRegexpCache[cacheKey] = re
	return re
}

// LooseString 원본 HTML 텍스트에서 후보 키들과 일치하는 첫 번째 문자열 값을 추출합니다.
// 키 후보는 선언된 순서대로 우선합니다.
func LooseString(html string, keys ...string) string {
	for _, key := range keys {
		match := looseStringRegexp(key).FindStringSubmatch(html)
		if match == nil {
			continue
		}
		if s := textutil.NormalizeSpace(unescapeJSONString(match[1])); s != "" {
			return s
		}
	}
	return ""
}

// LooseStringArray 원본 HTML 텍스트에서 후보 키들과 일치하는 첫 번째 문자열 배열을 추출합니다.
func LooseStringArray(html string, keys ...string) []string {
	for _, key := range keys {
		match := looseArrayRegexp(key).FindStringSubmatch(html)
		if match == nil {
			continue
		}

		var items []string
		for _, quoted := range quotedStringRegexp.FindAllStringSubmatch(match[1], -1) {
			if s := textutil.NormalizeSpace(unescapeJSONString(quoted[1])); s != "" {
				items = append(items, s)
			}
		}
		if deduped := textutil.Dedupe(items); len(deduped) > 0 {
			return deduped
		}
	}
	return nil
}

// quotedStringRegexp 배열 본문에서 따옴표로 감싼 문자열 요소를 찾는 정규식
var quotedStringRegexp = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

// unescapeJSONString JSON 문자열 리터럴의 이스케이프(\uXXXX, \n 등)를 해제합니다.
// 해제에 실패하면 입력을 그대로 반환합니다. (최선 노력)
func unescapeJSONString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return unquoted
	}
	return s
}
