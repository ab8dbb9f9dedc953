package notion_test

import (
	"strings"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toonkeep/toonkeep-server/internal/notion"
	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider"
)

func testSchema() notion.Schema {
	return notion.Schema{
		"이름":  {Type: "title"},
		"URL": {Type: "url"},
		"작가":  {Type: "rich_text"},
		"설명":  {Type: "rich_text"},
		"장르":  {Type: "multi_select", SelectOptions: []string{"판타지", "로맨스"}},
		"키워드": {Type: "multi_select", SelectOptions: []string{"Fantasy", "Drama", "19"}},
		"성인":  {Type: "checkbox"},
	}
}

func TestNormalize(t *testing.T) {
	normalizer := notion.NewNormalizer(testSchema())

	result, err := normalizer.Normalize(provider.Record{
		Title:       "달빛조각사",
		URL:         "https://page.kakao.com/content/100",
		AuthorName:  "남희성",
		Description: "게임 판타지의 전설",
		CoverURL:    "https://cdn.example.com/cover.jpg",
		Genre:       []string{"판타지"},
		Keywords:    []string{"Fantasy"},
		IsAdult:     false,
	})
	require.NoError(t, err)

	properties := result.Input.Properties

	title, ok := properties["이름"].(notionapi.TitleProperty)
	require.True(t, ok)
	require.Len(t, title.Title, 1)
	assert.Equal(t, "달빛조각사", title.Title[0].Text.Content)

	url, ok := properties["URL"].(notionapi.URLProperty)
	require.True(t, ok)
	assert.Equal(t, "https://page.kakao.com/content/100", url.URL)

	author, ok := properties["작가"].(notionapi.RichTextProperty)
	require.True(t, ok)
	assert.Equal(t, "남희성", author.RichText[0].Text.Content)

	genre, ok := properties["장르"].(notionapi.MultiSelectProperty)
	require.True(t, ok)
	require.Len(t, genre.MultiSelect, 1)
	assert.Equal(t, "판타지", genre.MultiSelect[0].Name)

	adult, ok := properties["성인"].(notionapi.CheckboxProperty)
	require.True(t, ok)
	assert.False(t, adult.Checkbox)

	assert.Equal(t, "https://cdn.example.com/cover.jpg", result.Input.CoverURL)
	assert.Empty(t, result.Input.ChildParagraphs)
	assert.Empty(t, result.DroppedKeywords)
}

func TestNormalize_TitlePropertyMissing(t *testing.T) {
	normalizer := notion.NewNormalizer(notion.Schema{
		"설명": {Type: "rich_text"},
	})

	_, err := normalizer.Normalize(provider.Record{Title: "어떤 작품"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrSchemaMismatch))

	// 진단을 위해 보유 프로퍼티 이름이 함께 노출된다.
	assert.Contains(t, err.Error(), "설명")
}

func TestNormalize_UnknownOptionsDropped(t *testing.T) {
	schema := notion.Schema{
		"이름":  {Type: "title"},
		"키워드": {Type: "multi_select", SelectOptions: []string{"Fantasy", "Drama"}},
	}
	normalizer := notion.NewNormalizer(schema)

	result, err := normalizer.Normalize(provider.Record{
		Title:    "어떤 작품",
		Keywords: []string{"Fantasy", "19", "Drama"},
	})
	require.NoError(t, err)

	keywords, ok := result.Input.Properties["키워드"].(notionapi.MultiSelectProperty)
	require.True(t, ok)

	// 스키마에 없는 옵션은 조용히 제외되고, 순서는 유지된다.
	require.Len(t, keywords.MultiSelect, 2)
	assert.Equal(t, "Fantasy", keywords.MultiSelect[0].Name)
	assert.Equal(t, "Drama", keywords.MultiSelect[1].Name)

	// 제외된 후보는 보고된다.
	assert.Equal(t, []string{"19"}, result.DroppedKeywords)
}

func TestNormalize_AdultMarkerKeyword(t *testing.T) {
	t.Run("옵션이_미리_정의된_경우_추가", func(t *testing.T) {
		normalizer := notion.NewNormalizer(testSchema())

		result, err := normalizer.Normalize(provider.Record{
			Title:    "성인 작품",
			Keywords: []string{"Fantasy"},
			IsAdult:  true,
		})
		require.NoError(t, err)

		keywords, ok := result.Input.Properties["키워드"].(notionapi.MultiSelectProperty)
		require.True(t, ok)
		require.Len(t, keywords.MultiSelect, 2)
		assert.Equal(t, "19", keywords.MultiSelect[1].Name)
	})

	t.Run("옵션이_없는_경우_제외_보고", func(t *testing.T) {
		normalizer := notion.NewNormalizer(notion.Schema{
			"이름":  {Type: "title"},
			"키워드": {Type: "multi_select", SelectOptions: []string{"Fantasy"}},
		})

		result, err := normalizer.Normalize(provider.Record{
			Title:   "성인 작품",
			IsAdult: true,
		})
		require.NoError(t, err)

		_, exists := result.Input.Properties["키워드"]
		assert.False(t, exists)
		assert.Equal(t, []string{notion.AdultMarkerKeyword}, result.DroppedKeywords)
	})
}

func TestNormalize_LongDescription(t *testing.T) {
	normalizer := notion.NewNormalizer(testSchema())

	longDescription := strings.Repeat("가", notion.MaxRichTextLength+500)
	result, err := normalizer.Normalize(provider.Record{
		Title:       "긴 설명 작품",
		Description: longDescription,
	})
	require.NoError(t, err)

	// 프로퍼티는 최대 길이로 절단된다.
	desc, ok := result.Input.Properties["설명"].(notionapi.RichTextProperty)
	require.True(t, ok)
	assert.Len(t, []rune(desc.RichText[0].Text.Content), notion.MaxRichTextLength)

	// 전문은 본문 문단 블록으로 보존된다.
	require.Len(t, result.Input.ChildParagraphs, 2)
	assert.Len(t, []rune(result.Input.ChildParagraphs[0]), notion.MaxRichTextLength)
	assert.Len(t, []rune(result.Input.ChildParagraphs[1]), 500)
}

func TestNormalize_EmptyOptionSchema(t *testing.T) {
	normalizer := notion.NewNormalizer(notion.Schema{
		"이름": {Type: "title"},
		"장르": {Type: "multi_select"},
	})

	result, err := normalizer.Normalize(provider.Record{
		Title: "어떤 작품",
		Genre: []string{"판타지", "로맨스"},
	})
	require.NoError(t, err)

	// 옵션이 비어있으면 모든 후보가 제외된다.
	_, exists := result.Input.Properties["장르"]
	assert.False(t, exists)
	assert.Equal(t, []string{"판타지", "로맨스"}, result.DroppedKeywords)
}

func TestFilterToExistingOptions(t *testing.T) {
	tests := []struct {
		name            string
		options         []string
		candidates      []string
		expectedKept    []string
		expectedDropped []string
	}{
		{
			name:            "일부만_일치",
			options:         []string{"Fantasy", "Drama"},
			candidates:      []string{"Fantasy", "19", "Drama"},
			expectedKept:    []string{"Fantasy", "Drama"},
			expectedDropped: []string{"19"},
		},
		{
			name:            "모두_일치",
			options:         []string{"판타지", "로맨스"},
			candidates:      []string{"로맨스", "판타지"},
			expectedKept:    []string{"로맨스", "판타지"},
			expectedDropped: nil,
		},
		{
			name:            "옵션_없음",
			options:         nil,
			candidates:      []string{"판타지"},
			expectedKept:    []string{},
			expectedDropped: []string{"판타지"},
		},
		{
			name:            "후보_없음",
			options:         []string{"판타지"},
			candidates:      nil,
			expectedKept:    []string{},
			expectedDropped: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, dropped := notion.FilterToExistingOptions(tt.options, tt.candidates)
			assert.Equal(t, tt.expectedKept, kept)
			assert.Equal(t, tt.expectedDropped, dropped)
		})
	}
}
