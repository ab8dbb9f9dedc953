package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// FromStructuredData 페이지에 내장된 JSON-LD 구조화 데이터 블록에서 신호를 추출합니다.
//
// 여러 블록이 존재하는 경우 문서 순서가 빠른 블록이 우선하며,
// 이미 채워진 필드는 이후 블록이 덮어쓰지 않습니다.
// 파싱에 실패한 블록은 조용히 건너뜁니다.
func FromStructuredData(doc *goquery.Document) Signals {
	var signals Signals

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" || !gjson.Valid(raw) {
			return
		}

		root := gjson.Parse(raw)

		// 루트가 배열이거나 @graph로 감싸진 경우, 각 요소를 독립된 블록으로 처리합니다.
		blocks := []gjson.Result{root}
		if root.IsArray() {
			blocks = root.Array()
		} else if graph := root.Get("@graph"); graph.IsArray() {
			blocks = graph.Array()
		}

		for _, block := range blocks {
			mergeStructuredBlock(&signals, block)
		}
	})

	return signals
}

// mergeStructuredBlock 하나의 JSON-LD 블록에서 필드를 추출하여 병합합니다.
func mergeStructuredBlock(signals *Signals, block gjson.Result) {
	if !block.IsObject() {
		return
	}

	var blockSignals Signals
	blockSignals.Title = textutil.NormalizeSpace(block.Get("name").String())
	blockSignals.Description = textutil.NormalizeMultiline(block.Get("description").String())
	blockSignals.CoverURL = firstStringOf(block.Get("image"))
	blockSignals.Genres = stringValuesOf(block.Get("genre"))
	blockSignals.AuthorName = structuredAuthorNames(block.Get("author"))

	if publisher := block.Get("publisher"); publisher.Exists() {
		blockSignals.PublisherName = structuredAuthorNames(publisher)
	}

	signals.Merge(blockSignals)
}

// structuredAuthorNames JSON-LD의 author 값을 ", "로 연결된 이름 문자열로 변환합니다.
//
// 허용되는 형태: 문자열, name 필드를 가진 객체, 이들의 배열
func structuredAuthorNames(value gjson.Result) string {
	var names []string

	appendName := func(v gjson.Result) {
		var name string
		switch {
		case v.Type == gjson.String:
			name = v.String()
		case v.IsObject():
			name = v.Get("name").String()
		}
		name = textutil.NormalizeSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}

	if value.IsArray() {
		for _, v := range value.Array() {
			appendName(v)
		}
	} else {
		appendName(value)
	}

	return strings.Join(textutil.Dedupe(names), ", ")
}

// firstStringOf 문자열 또는 배열 값에서 첫 번째 비어있지 않은 문자열을 반환합니다.
func firstStringOf(value gjson.Result) string {
	if value.Type == gjson.String {
		return strings.TrimSpace(value.String())
	}
	if value.IsArray() {
		for _, v := range value.Array() {
			if s := strings.TrimSpace(v.String()); s != "" && v.Type == gjson.String {
				return s
			}
		}
	}
	return ""
}

// stringValuesOf 문자열 또는 배열 값을 문자열 슬라이스로 변환합니다.
func stringValuesOf(value gjson.Result) []string {
	if value.Type == gjson.String {
		return textutil.ToStringSlice(value.String())
	}
	if value.IsArray() {
		var items []string
		for _, v := range value.Array() {
			if v.Type == gjson.String {
				items = append(items, v.String())
			}
		}
		return textutil.ToStringSlice(items)
	}
	return nil
}
