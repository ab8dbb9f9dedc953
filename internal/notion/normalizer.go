package notion

import (
	"fmt"
	"sort"

	"github.com/jomei/notionapi"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
)

// MaxRichTextLength Notion rich_text 블록 하나에 담을 수 있는 최대 문자 수입니다.
const MaxRichTextLength = 2000

// AdultMarkerKeyword 성인 신호 감지 시 키워드에 추가를 시도하는 고정 마커입니다.
//
// 이 마커는 대상 스키마에 동일한 옵션이 미리 정의되어 있는 경우에만 실제로 추가되며,
// 옵션이 없으면 추가되지 않고 droppedKeywords로 보고됩니다. (새 옵션을 만들지 않음)
const AdultMarkerKeyword = "19"

// 각 필드를 연결할 프로퍼티 이름 후보 (선언 순서대로 우선)
var (
	urlPropertyNames       = []string{"URL", "Url", "url", "링크"}
	authorPropertyNames    = []string{"작가", "Author", "저자"}
	publisherPropertyNames = []string{"출판사", "Publisher"}
	descPropertyNames      = []string{"설명", "소개", "줄거리", "Description"}
	genrePropertyNames     = []string{"장르", "Genre"}
	keywordPropertyNames   = []string{"키워드", "태그", "Keywords", "Tags"}
	adultPropertyNames     = []string{"성인", "19금", "Adult"}
)

// Normalizer 일반 추출 레코드를 특정 데이터베이스 스키마의 프로퍼티 값으로 매핑합니다.
type Normalizer struct {
	schema Schema
}

// NewNormalizer 조회된 스키마 기반의 새로운 Normalizer를 생성합니다.
func NewNormalizer(schema Schema) *Normalizer {
	return &Normalizer{schema: schema}
}

// NormalizeResult 정규화 결과입니다.
type NormalizeResult struct {
	Input *CreateInput

	// DroppedKeywords 스키마에 옵션이 없어 제외된 키워드/장르 후보 목록
	DroppedKeywords []string
}

// Normalize 추출 레코드를 대상 스키마의 페이지 생성 입력으로 변환합니다.
//
// 매핑 규칙:
//   - 제목: title 타입 프로퍼티 (발견 실패 시 SchemaMismatch 에러)
//   - URL: url 타입 프로퍼티
//   - 작가/출판사/설명: rich_text 타입 프로퍼티 (설명은 최대 길이로 절단, 전문은 본문 블록)
//   - 장르+키워드: multi_select 프로퍼티, 스키마에 미리 정의된 옵션만 허용
//     (없는 옵션은 조용히 제외하고 DroppedKeywords로 보고)
//   - 성인 플래그: checkbox 프로퍼티
//   - 커버: 외부 참조 커버 이미지
func (n *Normalizer) Normalize(record provider.Record) (*NormalizeResult, error) {
	titleProperty, found := n.findByType("title")
	if !found {
		return nil, apperrors.New(apperrors.ErrSchemaMismatch,
			fmt.Sprintf("대상 데이터베이스에 제목(title) 타입 프로퍼티가 없습니다 (보유 프로퍼티: %v)", n.schema.PropertyNames()))
	}

	properties := notionapi.Properties{
		titleProperty: notionapi.TitleProperty{
			Title: []notionapi.RichText{newRichText(truncateRunes(record.Title, MaxRichTextLength))},
		},
	}

	if name, ok := n.findProperty(urlPropertyNames, "url"); ok && record.URL != "" {
		properties[name] = notionapi.URLProperty{URL: record.URL}
	}
	if name, ok := n.findProperty(authorPropertyNames, "rich_text"); ok && record.AuthorName != "" {
		properties[name] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{newRichText(truncateRunes(record.AuthorName, MaxRichTextLength))},
		}
	}
	if name, ok := n.findProperty(publisherPropertyNames, "rich_text"); ok && record.PublisherName != "" {
		properties[name] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{newRichText(truncateRunes(record.PublisherName, MaxRichTextLength))},
		}
	}

	var childParagraphs []string
	if record.Description != "" {
		if name, ok := n.findProperty(descPropertyNames, "rich_text"); ok {
			properties[name] = notionapi.RichTextProperty{
				RichText: []notionapi.RichText{newRichText(truncateRunes(record.Description, MaxRichTextLength))},
			}
		}

		// 프로퍼티 길이 제한을 넘는 설명은 전문을 본문 문단 블록으로 보존합니다.
		if len([]rune(record.Description)) > MaxRichTextLength {
			childParagraphs = splitRunes(record.Description, MaxRichTextLength)
		}
	}

	var dropped []string

	if name, ok := n.findProperty(genrePropertyNames, "multi_select"); ok && len(record.Genre) > 0 {
		kept, droppedGenres := FilterToExistingOptions(n.schema[name].SelectOptions, record.Genre)
		dropped = append(dropped, droppedGenres...)
		if len(kept) > 0 {
			properties[name] = newMultiSelectProperty(kept)
		}
	}

	keywordCandidates := record.Keywords
	if record.IsAdult {
		keywordCandidates = append(append([]string{}, keywordCandidates...), AdultMarkerKeyword)
	}
	if name, ok := n.findProperty(keywordPropertyNames, "multi_select"); ok && len(keywordCandidates) > 0 {
		kept, droppedKeywords := FilterToExistingOptions(n.schema[name].SelectOptions, keywordCandidates)
		dropped = append(dropped, droppedKeywords...)
		if len(kept) > 0 {
			properties[name] = newMultiSelectProperty(kept)
		}
	} else if record.IsAdult {
		// 키워드 프로퍼티 자체가 없으면 성인 마커도 추가할 수 없습니다.
		dropped = append(dropped, AdultMarkerKeyword)
	}

	if name, ok := n.findProperty(adultPropertyNames, "checkbox"); ok {
		properties[name] = notionapi.CheckboxProperty{Checkbox: record.IsAdult}
	}

	return &NormalizeResult{
		Input: &CreateInput{
			Properties:      properties,
			CoverURL:        record.CoverURL,
			ChildParagraphs: childParagraphs,
		},
		DroppedKeywords: dropped,
	}, nil
}

// findProperty 이름 후보와 타입이 모두 일치하는 프로퍼티를 찾습니다.
// 이름 후보에 없으면 같은 타입의 프로퍼티 중 이름순으로 첫 번째를 반환합니다.
func (n *Normalizer) findProperty(nameCandidates []string, propType string) (string, bool) {
	for _, name := range nameCandidates {
		if spec, exists := n.schema[name]; exists && spec.Type == propType {
			return name, true
		}
	}
	return n.findByType(propType)
}

// findByType 지정된 타입의 프로퍼티를 이름순으로 탐색하여 첫 번째를 반환합니다.
// (맵 순회 순서에 의존하지 않도록 정렬하여 결정적으로 동작합니다)
func (n *Normalizer) findByType(propType string) (string, bool) {
	names := make([]string, 0, len(n.schema))
	for name := range n.schema {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if n.schema[name].Type == propType {
			return name, true
		}
	}
	return "", false
}

// FilterToExistingOptions 스키마에 미리 정의된 옵션만 남기고 나머지를 제외합니다.
//
// 후보 순서를 유지하며, 제외된 후보 목록을 함께 반환합니다.
// 스키마 옵션이 비어있으면 모든 후보가 제외됩니다. (새 옵션을 만들지 않음)
func FilterToExistingOptions(schemaOptions, candidates []string) (kept, dropped []string) {
	optionSet := make(map[string]bool, len(schemaOptions))
	for _, option := range schemaOptions {
		optionSet[option] = true
	}

	kept = []string{}
	for _, candidate := range candidates {
		if optionSet[candidate] {
			kept = append(kept, candidate)
		} else {
			dropped = append(dropped, candidate)
		}
	}

	return kept, dropped
}

// newMultiSelectProperty 옵션 이름 목록으로 MultiSelectProperty를 생성합니다.
func newMultiSelectProperty(names []string) notionapi.MultiSelectProperty {
	options := make([]notionapi.Option, 0, len(names))
	for _, name := range names {
		options = append(options, notionapi.Option{Name: name})
	}
	return notionapi.MultiSelectProperty{MultiSelect: options}
}

// truncateRunes 문자열을 최대 길이(룬 기준)로 절단합니다.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// splitRunes 문자열을 최대 길이(룬 기준)의 조각들로 분할합니다.
func splitRunes(s string, max int) []string {
	runes := []rune(s)

	var chunks []string
	for len(runes) > 0 {
		n := max
		if len(runes) < n {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}
