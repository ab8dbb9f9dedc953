package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// FromMetaTags Open Graph 및 일반 메타 태그에서 신호를 추출합니다.
//
// og:description이 없는 경우 일반 description 메타 태그로 대체합니다.
// (goquery가 파싱된 DOM을 사용하므로 속성 선언 순서에 영향받지 않습니다)
func FromMetaTags(doc *goquery.Document) Signals {
	return Signals{
		Title:       textutil.NormalizeSpace(metaContent(doc, "og:title")),
		Description: textutil.NormalizeMultiline(FirstNonEmpty(
			func() string { return metaContent(doc, "og:description") },
			func() string { return metaContent(doc, "description") },
		)),
		CoverURL: metaContent(doc, "og:image"),
	}
}

// metaContent property 또는 name 속성이 일치하는 메타 태그의 content 값을 반환합니다.
func metaContent(doc *goquery.Document, key string) string {
	var content string

	doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		property, _ := sel.Attr("property")
		name, _ := sel.Attr("name")
		if property != key && name != key {
			return true
		}

		if v, ok := sel.Attr("content"); ok && v != "" {
			content = v
			return false
		}
		return true
	})

	return content
}
