// Package provider 플랫폼별 필드 리졸버와 그 공통 기반을 제공합니다.
//
// 각 플랫폼 리졸버는 추출기들을 신뢰도 순서대로 실행하고(먼저 채워진 값 우선),
// 보조 뷰어 페이지 보강 등 플랫폼 고유의 오버라이드 규칙을 적용하여
// 하나의 병합된 레코드를 만듭니다.
package provider

import (
	"github.com/toonkeep/toonkeep-server/internal/scrape/extract"
	"github.com/toonkeep/toonkeep-server/internal/scrape/refine"
	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// Record 추출 파이프라인의 정규화된 최종 출력입니다.
//
// 대상 데이터베이스 스키마와 무관한 일반 형태이며,
// 스키마 매핑은 notion 패키지의 Normalizer가 담당합니다.
type Record struct {
	Title         string   `json:"title"`
	CoverURL      string   `json:"coverUrl"`
	AuthorName    string   `json:"authorName"`
	PublisherName string   `json:"publisherName,omitempty"`
	Genre         []string `json:"genre"`
	Keywords      []string `json:"keywords"`
	Description   string   `json:"desc"`
	IsAdult       bool     `json:"isAdult"`
	URL           string   `json:"url"`
}

// Debug 디버그 플래그가 켜진 경우에만 응답에 포함되는 중간 신호 정보입니다.
// 안정적인 계약의 일부가 아니며, 진단 목적으로만 사용됩니다.
type Debug struct {
	SecondaryURL string   `json:"secondaryUrl,omitempty"` // 선택된 보조(뷰어) 페이지 URL
	Notes        []string `json:"notes,omitempty"`        // 계층별 매칭 기록
}

// AddNote 디버그 기록을 추가합니다.
func (d *Debug) AddNote(note string) {
	if d == nil {
		return
	}
	d.Notes = append(d.Notes, note)
}

// Result 리졸버의 최종 결과입니다.
type Result struct {
	Record Record
	Debug  *Debug // 디버그 모드가 아니면 nil
}

// BuildRecord 병합된 신호를 정규화된 레코드로 변환합니다.
//
/// 수행 작업:
//   - 제목의 플랫폼 접미사 제거
//   - 커버 URL 절대화
//   - 작가 라인 정제 (장르어/제목 반복/역할 라벨 제거 후 역할 세그먼트 조립)
//   - 장르/키워드 정리 및 중복 제거
//   - 설명 다중행 정규화
func BuildRecord(pageURL, origin string, suffixes []string, signals extract.Signals) Record {
	title := textutil.StripSiteSuffix(signals.Title, suffixes)

	authorName := refine.BuildAuthorLine(refine.CandidateSet{
		RawAuthor:       signals.AuthorName,
		Title:           title,
		OriginalAuthors: signals.OriginalAuthors,
		Adapters:        signals.Adapters,
		Artists:         signals.Artists,
	})

	return Record{
		Title:         title,
		CoverURL:      textutil.AbsolutizeURL(signals.CoverURL, origin),
		AuthorName:    authorName,
		PublisherName: textutil.NormalizeSpace(signals.PublisherName),
		Genre:         refine.CleanGenres(signals.Genres),
		Keywords:      textutil.Dedupe(signals.Keywords),
		Description:   textutil.NormalizeMultiline(signals.Description),
		IsAdult:       signals.IsAdult,
		URL:           pageURL,
	}
}
