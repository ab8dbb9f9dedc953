package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// maxPoolNodes 풀에 수집할 수 있는 최대 객체 노드 수입니다.
// 비정상적으로 깊거나 큰 내장 JSON으로 인한 무한 탐색을 방지합니다.
const maxPoolNodes = 10000

// Pool 내장 상태 JSON 트리들을 깊이 우선으로 평탄화한 객체 노드 풀입니다.
//
// 렌더링 데이터 블롭(__NEXT_DATA__)과 클라이언트 캐시 상태 블롭을 하나의 풀로 합쳐,
// 키 이름 후보 집합 기반의 대소문자 무시 탐색을 수행합니다.
type Pool struct {
	nodes []gjson.Result
}

// NewPool 주어진 JSON 블롭들을 파싱하여 새로운 풀을 생성합니다.
// 파싱에 실패한 블롭은 조용히 건너뜁니다.
func NewPool(blobs ...string) *Pool {
	pool := &Pool{}
	budget := maxPoolNodes

	for _, blob := range blobs {
		blob = strings.TrimSpace(blob)
		if blob == "" || !gjson.Valid(blob) {
			continue
		}
		collectObjects(gjson.Parse(blob), &pool.nodes, &budget)
	}

	return pool
}

// collectObjects JSON 트리를 깊이 우선으로 순회하며 모든 객체 노드를 수집합니다.
func collectObjects(node gjson.Result, nodes *[]gjson.Result, budget *int) {
	if *budget <= 0 {
		return
	}

	if node.IsObject() {
		*budget--
		*nodes = append(*nodes, node)
	}

	if node.IsObject() || node.IsArray() {
		node.ForEach(func(_, child gjson.Result) bool {
			collectObjects(child, nodes, budget)
			return *budget > 0
		})
	}
}

// Size 풀에 수집된 객체 노드 수를 반환합니다.
func (p *Pool) Size() int {
	return len(p.nodes)
}

// FindFirstString 후보 키 집합과 일치하는 첫 번째 비어있지 않은 문자열 값을 반환합니다.
//
// 키 후보는 선언된 순서대로 우선하며, 같은 키에 대해서는 문서 순서가 빠른 노드가 우선합니다.
// 키 비교는 대소문자를 무시합니다.
func (p *Pool) FindFirstString(keys ...string) string {
	for _, key := range keys {
		for _, node := range p.nodes {
			value, found := lookupKey(node, key)
			if !found {
				continue
			}
			if value.Type == gjson.String {
				if s := textutil.NormalizeSpace(value.String()); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// FindFirstBool 후보 키 집합과 일치하는 첫 번째 불리언 유사 값을 반환합니다.
//
// 실제 불리언, 0/1 숫자, "true"/"false"/"1"/"0" 문자열을 허용합니다.
// 두 번째 반환값은 값을 찾았는지 여부입니다.
func (p *Pool) FindFirstBool(keys ...string) (bool, bool) {
	for _, key := range keys {
		for _, node := range p.nodes {
			value, found := lookupKey(node, key)
			if !found {
				continue
			}
			if b, ok := asBool(value); ok {
				return b, true
			}
		}
	}
	return false, false
}

// FindStringArray 후보 키 집합과 일치하는 첫 번째 비어있지 않은 문자열 배열을 반환합니다.
//
// 배열 요소는 문자열이거나 name/title/label 필드를 가진 객체여야 하며,
// 결과는 첫 등장 순서를 유지하며 중복이 제거됩니다.
func (p *Pool) FindStringArray(keys ...string) []string {
	for _, key := range keys {
		for _, node := range p.nodes {
			value, found := lookupKey(node, key)
			if !found || !value.IsArray() {
				continue
			}
			if items := arrayStrings(value); len(items) > 0 {
				return items
			}
		}
	}
	return nil
}

// ForEachEntry 풀의 모든 객체 노드를 문서 순서대로 순회하며, 각 키/값 쌍에 대해 fn을 호출합니다.
// fn이 false를 반환하면 순회를 중단합니다.
func (p *Pool) ForEachEntry(fn func(key string, value gjson.Result) bool) {
	for _, node := range p.nodes {
		stopped := false
		node.ForEach(func(k, v gjson.Result) bool {
			if !fn(k.String(), v) {
				stopped = true
				return false
			}
			return true
		})
		if stopped {
			return
		}
	}
}

// ForEachObject 풀의 모든 객체 노드를 문서 순서대로 순회합니다.
// fn이 false를 반환하면 순회를 중단합니다.
func (p *Pool) ForEachObject(fn func(node gjson.Result) bool) {
	for _, node := range p.nodes {
		if !fn(node) {
			return
		}
	}
}

// LookupKey 객체 노드에서 대소문자를 무시하고 키와 일치하는 값을 찾습니다.
func LookupKey(node gjson.Result, key string) (gjson.Result, bool) {
	return lookupKey(node, key)
}

// lookupKey 객체 노드에서 대소문자를 무시하고 키와 일치하는 값을 찾습니다.
func lookupKey(node gjson.Result, key string) (gjson.Result, bool) {
	var result gjson.Result
	var found bool

	node.ForEach(func(k, v gjson.Result) bool {
		if strings.EqualFold(k.String(), key) {
			result = v
			found = true
			return false
		}
		return true
	})

	return result, found
}

// asBool 불리언 유사 값을 bool로 변환합니다.
func asBool(value gjson.Result) (bool, bool) {
	switch value.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	case gjson.Number:
		n := value.Int()
		if n == 0 || n == 1 {
			return n == 1, true
		}
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(value.String())) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
	}
	return false, false
}

// arrayStrings 배열의 각 요소를 문자열화하여 정리된 슬라이스로 반환합니다.
func arrayStrings(value gjson.Result) []string {
	var items []string

	for _, elem := range value.Array() {
		var s string
		switch {
		case elem.Type == gjson.String:
			s = elem.String()
		case elem.IsObject():
			for _, nameKey := range []string{"name", "title", "label"} {
				if v, found := lookupKey(elem, nameKey); found && v.Type == gjson.String {
					s = v.String()
					break
				}
			}
		}

		s = textutil.NormalizeSpace(s)
		if s != "" {
			items = append(items, s)
		}
	}

	return textutil.Dedupe(items)
}

// cacheStateRegexp 클라이언트 캐시 상태 블롭의 시작 위치를 찾는 정규식
var cacheStateRegexp = regexp.MustCompile(`window\.__(?:INITIAL_STATE|APOLLO_STATE|CACHE_STATE)__\s*=\s*`)

// NextDataJSON 페이지에 내장된 렌더링 데이터 블롭(__NEXT_DATA__)을 반환합니다.
// 블롭이 없으면 빈 문자열을 반환합니다.
func NextDataJSON(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("script#__NEXT_DATA__").First().Text())
}

// CacheStateJSON 원본 HTML에서 클라이언트 캐시 상태 블롭을 찾아 반환합니다.
//
// `window.__XXX_STATE__ = {...}` 형태의 할당문에서 중괄호 균형을 맞춰
// JSON 객체 부분만 잘라냅니다. 블롭이 없으면 빈 문자열을 반환합니다.
func CacheStateJSON(html string) string {
	loc := cacheStateRegexp.FindStringIndex(html)
	if loc == nil {
		return ""
	}
	return balancedJSONObject(html[loc[1]:])
}

// balancedJSONObject 문자열 시작 부분의 중괄호 균형이 맞는 JSON 객체를 잘라 반환합니다.
// 문자열 리터럴 내부의 중괄호와 이스케이프를 고려합니다.
func balancedJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
