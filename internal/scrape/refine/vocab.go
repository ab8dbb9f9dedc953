package refine

import "regexp"

// 추출 로직과 분리된 도메인 어휘 데이터 테이블입니다.
// 어휘 추가 시 필터링 로직을 건드리지 않고 이 테이블만 확장합니다.

// GenreWords 작가명 후보에서 제외해야 하는 장르/카테고리 어휘
var GenreWords = []string{
	"로맨스", "판타지", "무협", "드라마", "액션", "스릴러", "미스터리",
	"공포", "일상", "개그", "스포츠", "학원", "순정", "성인",
	"로판", "현판", "회귀", "BL", "GL", "SF",
	"웹툰", "웹소설", "소설", "만화", "코믹",
}

// genreSuffixRegexp 장르 접미 패턴 (예: "학원물", "회귀물", "현대판타지")
var genreSuffixRegexp = regexp.MustCompile(`(물|판타지|로맨스|무협)$`)

// RoleLabels 작가명 앞뒤에 붙는 역할 라벨
var RoleLabels = []string{
	"글", "그림", "원작", "각색", "작가", "저자", "지은이", "글쓴이",
	"Author", "Writer", "Artist",
}

// leadingRoleLabelRegexp 문자열 선두의 역할 라벨(예: "작가:", "글 :")을 찾는 정규식
var leadingRoleLabelRegexp = regexp.MustCompile(`^(글|그림|원작|각색|작가|저자|지은이|글쓴이|Author|Writer|Artist)\s*[:：]\s*`)

// Disqualifiers DOM 텍스트 휴리스틱에서 작가명 후보를 배제하는 사이트/카테고리 라벨
var Disqualifiers = []string{
	"웹툰", "소설", "연재", "완결", "무료", "매주", "업데이트",
}

// LayoutStopwords 장르 토큰 수집 시 제외하는 레이아웃 단어
var LayoutStopwords = []string{
	"전체", "더보기", "홈", "메뉴", "검색", "로그인", "목록",
}

// 역할 세그먼트 렌더링에 사용되는 라벨
const (
	RoleLabelOriginal = "원작"
	RoleLabelAdapter  = "글"
	RoleLabelArtist   = "그림"
)

// maxAuthorTokenLength 작가명 토큰으로 인정하는 최대 길이
// 이보다 길면 이름이 아니라 문장(설명문)일 가능성이 높습니다.
const maxAuthorTokenLength = 50
