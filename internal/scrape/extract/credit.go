package extract

import (
	"regexp"
	"strings"

	"github.com/toonkeep/toonkeep-server/pkg/textutil"
)

// copyrightCreditRegexp 설명 텍스트의 저작권 크레딧 줄(© 작가명 / ...)을 찾는 정규식
var copyrightCreditRegexp = regexp.MustCompile(`©\s*([^/\n©]+?)\s*/`)

// AuthorFromCopyright 설명 텍스트의 저작권 크레딧 줄에서 작가명 후보를 추출합니다.
//
// "© 홍길동, 김철수 / 출판사" 형태에서 "©"와 "/" 사이의 텍스트를
// ", "로 연결된 후보 목록으로 반환합니다. 다른 모든 계층이 실패했을 때의 최후 수단입니다.
func AuthorFromCopyright(desc string) string {
	match := copyrightCreditRegexp.FindStringSubmatch(desc)
	if match == nil {
		return ""
	}

	names := textutil.SplitAndTrim(match[1], ",")
	return strings.Join(textutil.Dedupe(names), ", ")
}
