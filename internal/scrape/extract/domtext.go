package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// 렌더링된 페이지 텍스트에 대한 최후순위 휴리스틱 추출기입니다.
// 마크업 구조가 전혀 도움이 되지 않을 때만 사용되며, 업스트림 마크업 변경에 취약하므로
// 고정된 픽스처 페이지 기반의 회귀 테스트와 함께 관리되어야 합니다.

// maxGenreTokens 카테고리 라벨 뒤에서 장르로 수집할 최대 토큰 수
const maxGenreTokens = 3

// maxGenreTokenLength 장르 토큰으로 인정하는 최대 길이 (룬 기준)
const maxGenreTokenLength = 6

// AuthorFromDOMText 페이지의 평탄화된 텍스트에서 작가명 후보를 추출합니다.
//
// 휴리스틱: 이미 확정된 제목을 포함하는 가장 짧은 줄을 찾고,
// 그 줄에서 제목 뒤에 이어지는 부분 문자열을 작가명 후보로 취급합니다.
// 후보가 비어있거나 배제 단어(사이트/카테고리 라벨)를 포함하면 버립니다.
func AuthorFromDOMText(doc *goquery.Document, title string, disqualifiers []string) string {
	title = textutil.NormalizeSpace(title)
	if title == "" {
		return ""
	}

	var shortestLine string
	for _, line := range pageTextLines(doc) {
		if !strings.Contains(line, title) {
			continue
		}
		if shortestLine == "" || len(line) < len(shortestLine) {
			shortestLine = line
		}
	}
	if shortestLine == "" {
		return ""
	}

	idx := strings.Index(shortestLine, title)
	candidate := textutil.NormalizeSpace(shortestLine[idx+len(title):])
	if candidate == "" {
		return ""
	}

	for _, word := range disqualifiers {
		if strings.Contains(candidate, word) {
			return ""
		}
	}

	return candidate
}

// GenresFromDOMText 페이지 텍스트에서 카테고리 라벨 뒤에 이어지는 장르 토큰들을 추출합니다.
//
// 라벨(예: "장르") 바로 뒤의 1~3개의 짧은 토큰을 장르 후보로 수집하며,
// 레이아웃 단어 스톱리스트에 포함된 토큰은 제외합니다.
func GenresFromDOMText(doc *goquery.Document, label string, stopwords []string) []string {
	if label == "" {
		return nil
	}

	stopSet := make(map[string]bool, len(stopwords))
	for _, word := range stopwords {
		stopSet[word] = true
	}

	for _, line := range pageTextLines(doc) {
		idx := strings.Index(line, label)
		if idx < 0 {
			continue
		}

		var genres []string
		for _, token := range strings.Fields(line[idx+len(label):]) {
			token = strings.Trim(token, ",·|/:")
			if token == "" || stopSet[token] {
				continue
			}
			if utf8.RuneCountInString(token) > maxGenreTokenLength {
				break
			}
			genres = append(genres, token)
			if len(genres) == maxGenreTokens {
				break
			}
		}

		if len(genres) > 0 {
			return textutil.Dedupe(genres)
		}
	}

	return nil
}

// pageTextLines 페이지 본문의 텍스트를 정규화된 줄 단위로 반환합니다.
func pageTextLines(doc *goquery.Document) []string {
	body := doc.Find("body")
	if body.Length() == 0 {
		return nil
	}

	rawLines := strings.Split(body.Text(), "\n")
	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		line = textutil.NormalizeSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
