package provider

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/toonkeep/toonkeep-server/internal/scrape/extract"
	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// PoolKeys 내장 상태 풀 탐색에 사용하는 플랫폼별 키 후보 집합입니다.
// 각 필드의 키 후보는 선언된 순서대로 우선합니다.
type PoolKeys struct {
	Title       []string
	Author      []string // 단일 문자열 작가 필드
	AuthorList  []string // 작가 배열 필드
	Description []string
	Cover       []string
	GenreList   []string // 장르 배열 필드
	Genre       []string // 단일 문자열 장르 필드 (구분자 분리)
	Keywords    []string
	Adult       []string // 불리언 유사 성인 플래그 필드
	AgeGrade    []string // "19" 문자열 검사용 연령 등급 필드
}

// SignalsFromPool 내장 상태 풀에서 키 후보 집합 기반으로 신호를 수집합니다.
func SignalsFromPool(pool *extract.Pool, keys PoolKeys) extract.Signals {
	var signals extract.Signals

	signals.Title = pool.FindFirstString(keys.Title...)
	signals.Description = pool.FindFirstString(keys.Description...)
	signals.CoverURL = pool.FindFirstString(keys.Cover...)
	signals.Keywords = pool.FindStringArray(keys.Keywords...)

	signals.AuthorName = extract.FirstNonEmpty(
		func() string { return pool.FindFirstString(keys.Author...) },
		func() string { return strings.Join(pool.FindStringArray(keys.AuthorList...), ", ") },
	)

	signals.Genres = extract.FirstNonEmptySlice(
		func() []string { return pool.FindStringArray(keys.GenreList...) },
		func() []string { return textutil.ToStringSlice(pool.FindFirstString(keys.Genre...)) },
	)

	if adult, found := pool.FindFirstBool(keys.Adult...); found && adult {
		signals.IsAdult = true
	}
	if grade := pool.FindFirstString(keys.AgeGrade...); strings.Contains(grade, "19") {
		signals.IsAdult = true
	}

	return signals
}

// RoleAuthorsFromPool 풀에서 name/role 필드를 가진 작가 객체들을 역할별로 분류합니다.
//
// 반환 순서: 원작, 글/각색, 그림
func RoleAuthorsFromPool(pool *extract.Pool) (originals, adapters, artists []string) {
	pool.ForEachObject(func(node gjson.Result) bool {
		nameValue, hasName := extract.LookupKey(node, "name")
		roleValue, hasRole := extract.LookupKey(node, "role")
		if !hasName || !hasRole {
			return true
		}

		name := textutil.NormalizeSpace(nameValue.String())
		if name == "" {
			return true
		}

		role := strings.ToLower(strings.TrimSpace(roleValue.String()))
		switch {
		case strings.Contains(role, "original") || role == "원작":
			originals = append(originals, name)
		case strings.Contains(role, "illust") || strings.Contains(role, "paint") ||
			strings.Contains(role, "artist") || role == "그림":
			artists = append(artists, name)
		case strings.Contains(role, "writ") || strings.Contains(role, "author") ||
			strings.Contains(role, "adapt") || role == "글" || role == "각색":
			adapters = append(adapters, name)
		}

		return true
	})

	return textutil.Dedupe(originals), textutil.Dedupe(adapters), textutil.Dedupe(artists)
}
