package ridibooks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toonkeep/toonkeep-server/internal/scrape/fetcher/mocks"
	"github.com/toonkeep/toonkeep-server/internal/scrape/provider/ridibooks"
)

const bookURL = "https://ridibooks.com/books/777000001"

const bookHTML = `<html><head>
<meta property="og:title" content="상수리나무 아래 - 리디북스">
<meta property="og:description" content="짧은 메타 설명">
<script type="application/ld+json">{
	"@type": "Book",
	"name": "상수리나무 아래",
	"description": "저주받은 기사 리프탄과 막시밀리안의 이야기를 그린 로맨스 판타지 대작",
	"image": ["https://img.ridicdn.net/cover/777000001/xxlarge"],
	"genre": "로판",
	"author": [{"name": "김수지"}, {"name": "P"}]
}</script>
</head><body>
<script id="__NEXT_DATA__" type="application/json">{
	"props": {"pageProps": {"book": {
		"adultsOnly": true,
		"authors": [
			{"name": "김수지", "role": "author"},
			{"name": "P", "role": "illustrator"}
		],
		"categories": [{"name": "로맨스 판타지"}]
	}}}
}</script>
</body></html>`

func TestResolve(t *testing.T) {
	mockFetcher := mocks.NewMapFetcher()
	mockFetcher.SetHTML(bookURL, bookHTML)

	resolver, err := ridibooks.New(mockFetcher, nil)
	require.NoError(t, err)

	result, err := resolver.Resolve(context.Background(), bookURL, false)
	require.NoError(t, err)

	record := result.Record

	// 제목: 구조화 데이터가 최우선 (접미사 없는 원형)
	assert.Equal(t, "상수리나무 아래", record.Title)

	// 설명: 구조화 데이터의 긴 설명이 메타 태그보다 우선
	assert.Equal(t, "저주받은 기사 리프탄과 막시밀리안의 이야기를 그린 로맨스 판타지 대작", record.Description)

	// 커버: 배열 형태 image의 첫 요소
	assert.Equal(t, "https://img.ridicdn.net/cover/777000001/xxlarge", record.CoverURL)

	// 장르: 구조화 데이터 genre
	assert.Equal(t, []string{"로판"}, record.Genre)

	// 성인 플래그: 렌더링 데이터의 adultsOnly
	assert.True(t, record.IsAdult)

	// 작가: 기본 작가 + 역할 세그먼트
	assert.Contains(t, record.AuthorName, "김수지")
	assert.Contains(t, record.AuthorName, "그림: P")
}

func TestResolve_SuffixStripping(t *testing.T) {
	mockFetcher := mocks.NewMapFetcher()
	mockFetcher.SetHTML(bookURL, `<html><head>
		<meta property="og:title" content="달빛조각사 - 리디북스 - 리디">
	</head><body></body></html>`)

	resolver, err := ridibooks.New(mockFetcher, nil)
	require.NoError(t, err)

	result, err := resolver.Resolve(context.Background(), bookURL, false)
	require.NoError(t, err)

	// 중첩된 접미사가 모두 제거된다.
	assert.Equal(t, "달빛조각사", result.Record.Title)
}

func TestResolve_SettingsOverlay(t *testing.T) {
	mockFetcher := mocks.NewMapFetcher()
	mockFetcher.SetHTML(bookURL, `<html><head>
		<meta property="og:title" content="어떤 작품 @ 커스텀">
	</head><body></body></html>`)

	resolver, err := ridibooks.New(mockFetcher, map[string]any{
		"suffix_patterns": []any{"@ 커스텀"},
	})
	require.NoError(t, err)

	result, err := resolver.Resolve(context.Background(), bookURL, false)
	require.NoError(t, err)

	assert.Equal(t, "어떤 작품", result.Record.Title)
}

func TestPlatformIdentity(t *testing.T) {
	resolver, err := ridibooks.New(mocks.NewMapFetcher(), nil)
	require.NoError(t, err)

	assert.Equal(t, "ridibooks", resolver.Platform())
	assert.Equal(t, []string{"ridibooks.com"}, resolver.Hosts())
}
