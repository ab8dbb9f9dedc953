// Package extract HTML 페이지에서 작품 메타데이터 신호를 수집하는 계층별 추출기를 제공합니다.
//
// 각 추출기는 하나의 신호 계층(구조화 데이터, 메타 태그, 내장 상태 JSON,
// 스크립트 정규식, DOM 텍스트 휴리스틱)만을 담당하는 순수 함수이며,
// 데이터를 찾지 못한 경우 에러 대신 빈 필드를 반환합니다.
package extract

import (
	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// Signals 하나의 신호 계층이 페이지에서 수집한 부분 필드 집합입니다.
//
// 리졸버가 계층 우선순위에 따라 여러 Signals를 병합하여 최종 레코드를 만듭니다.
type Signals struct {
	Title         string
	AuthorName    string
	PublisherName string
	Description   string
	CoverURL      string
	Genres        []string
	Keywords      []string
	IsAdult       bool

	// 역할별 작가 목록 (내장 상태 계층에서만 수집됨)
	OriginalAuthors []string // 원작
	Adapters        []string // 각색/글
	Artists         []string // 그림
}

// Merge 다른 계층의 신호를 현재 신호에 병합합니다.
//
// 병합 규칙:
//   - 문자열/슬라이스 필드: 이미 값이 있으면 유지 (먼저 수집된 계층 우선)
//   - IsAdult: 단조 증가 (한 번 true가 되면 이후 계층이 해제할 수 없음)
func (s *Signals) Merge(other Signals) {
	if s.Title == "" {
		s.Title = other.Title
	}
	if s.AuthorName == "" {
		s.AuthorName = other.AuthorName
	}
	if s.PublisherName == "" {
		s.PublisherName = other.PublisherName
	}
	if s.Description == "" {
		s.Description = other.Description
	}
	if s.CoverURL == "" {
		s.CoverURL = other.CoverURL
	}
	if len(s.Genres) == 0 {
		s.Genres = textutil.Dedupe(other.Genres)
	}
	if len(s.Keywords) == 0 {
		s.Keywords = textutil.Dedupe(other.Keywords)
	}
	if len(s.OriginalAuthors) == 0 {
		s.OriginalAuthors = other.OriginalAuthors
	}
	if len(s.Adapters) == 0 {
		s.Adapters = other.Adapters
	}
	if len(s.Artists) == 0 {
		s.Artists = other.Artists
	}

	s.IsAdult = s.IsAdult || other.IsAdult
}

// OverrideDescriptionIfLonger 더 긴 설명이 주어진 경우에만 설명을 교체합니다.
// 보조 페이지(뷰어)에서 수집된 설명이 "더 나은"(엄격히 더 긴) 경우의 예외 규칙입니다.
func (s *Signals) OverrideDescriptionIfLonger(desc string) bool {
	desc = textutil.NormalizeMultiline(desc)
	if desc != "" && len(desc) > len(s.Description) {
		s.Description = desc
		return true
	}
	return false
}

// FirstNonEmpty 후보 함수들을 순서대로 평가하여 처음으로 비어있지 않은 문자열을 반환합니다.
//
// 계층 우선순위를 데이터 수준의 결정으로 유지하기 위한 조합자입니다.
func FirstNonEmpty(candidates ...func() string) string {
	for _, candidate := range candidates {
		if v := candidate(); v != "" {
			return v
		}
	}
	return ""
}

// FirstNonEmptySlice 후보 함수들을 순서대로 평가하여 처음으로 비어있지 않은 슬라이스를 반환합니다.
func FirstNonEmptySlice(candidates ...func() []string) []string {
	for _, candidate := range candidates {
		if v := candidate(); len(v) > 0 {
			return v
		}
	}
	return nil
}
