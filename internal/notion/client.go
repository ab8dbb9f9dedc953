// Package notion 대상 Notion 데이터베이스에 대한 스키마 조회와 페이지 생성을 담당합니다.
//
// Client 인터페이스 뒤에 실제 API 구현을 두어, 추출 파이프라인과
// 대상 저장소의 결합을 느슨하게 유지합니다.
package notion

import (
	"context"
	"fmt"
	"sort"

	"github.com/jomei/notionapi"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
)

// PropertySpec 대상 데이터베이스의 프로퍼티 하나에 대한 스키마 정보입니다.
type PropertySpec struct {
	// Type 프로퍼티 타입 (예: "title", "url", "rich_text", "multi_select", "checkbox", "files")
	Type string

	// SelectOptions multi_select 타입인 경우, 스키마에 미리 정의된 옵션 이름 목록
	SelectOptions []string
}

// Schema 프로퍼티 이름에서 스키마 정보로의 매핑입니다.
type Schema map[string]PropertySpec

// PropertyNames 프로퍼티 이름 목록을 정렬하여 반환합니다. (진단 메시지용)
func (s Schema) PropertyNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateInput 페이지 생성 요청의 입력입니다.
type CreateInput struct {
	// Properties Notion 프로퍼티 값 매핑
	Properties notionapi.Properties

	// CoverURL 외부 참조 방식의 커버 이미지 URL (빈 문자열: 커버 없음)
	CoverURL string

	// ChildParagraphs 본문에 추가할 문단 블록들 (프로퍼티 길이 제한을 넘는 설명 전문 등)
	ChildParagraphs []string
}

// CreatedPage 생성된 페이지의 식별 정보입니다.
type CreatedPage struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Client Notion 데이터베이스와의 상호작용 인터페이스입니다.
type Client interface {
	// DescribeSchema 데이터베이스의 프로퍼티 스키마를 조회합니다.
	DescribeSchema(ctx context.Context, databaseID string) (Schema, error)

	// CreatePage 데이터베이스에 새 페이지를 생성하고 생성된 페이지의 식별 정보를 반환합니다.
	CreatePage(ctx context.Context, databaseID string, input *CreateInput) (*CreatedPage, error)
}

// APIClient 실제 Notion API를 호출하는 Client 구현체입니다.
type APIClient struct {
	client *notionapi.Client
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Client = (*APIClient)(nil)

// NewAPIClient 새로운 APIClient 인스턴스를 생성합니다.
func NewAPIClient(token string) *APIClient {
	return &APIClient{
		client: notionapi.NewClient(notionapi.Token(token)),
	}
}

// DescribeSchema 데이터베이스의 프로퍼티 스키마를 조회합니다.
func (c *APIClient) DescribeSchema(ctx context.Context, databaseID string) (Schema, error) {
	database, err := c.client.Database.Get(ctx, notionapi.DatabaseID(databaseID))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDestinationFail,
			fmt.Sprintf("Notion 데이터베이스 스키마 조회에 실패했습니다: '%s'", databaseID))
	}

	schema := make(Schema, len(database.Properties))
	for name, config := range database.Properties {
		spec := PropertySpec{Type: string(config.GetType())}

		if multiSelect, ok := config.(*notionapi.MultiSelectPropertyConfig); ok {
			for _, option := range multiSelect.MultiSelect.Options {
				spec.SelectOptions = append(spec.SelectOptions, option.Name)
			}
		}

		schema[name] = spec
	}

	return schema, nil
}

// CreatePage 데이터베이스에 새 페이지를 생성합니다.
func (c *APIClient) CreatePage(ctx context.Context, databaseID string, input *CreateInput) (*CreatedPage, error) {
	request := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: input.Properties,
	}

	if input.CoverURL != "" {
		// 커버는 업로드가 아닌 외부 참조로 설정합니다.
		request.Cover = &notionapi.Image{
			Type:     notionapi.FileTypeExternal,
			External: &notionapi.FileObject{URL: input.CoverURL},
		}
	}

	for _, paragraph := range input.ChildParagraphs {
		request.Children = append(request.Children, newParagraphBlock(paragraph))
	}

	page, err := c.client.Page.Create(ctx, request)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrDestinationFail, "Notion 페이지 생성에 실패했습니다")
	}

	return &CreatedPage{ID: string(page.ID), URL: page.URL}, nil
}

// newParagraphBlock 문단 블록을 생성합니다.
func newParagraphBlock(text string) notionapi.Block {
	return &notionapi.ParagraphBlock{
		BasicBlock: notionapi.BasicBlock{
			Object: notionapi.ObjectTypeBlock,
			Type:   notionapi.BlockTypeParagraph,
		},
		Paragraph: notionapi.Paragraph{
			RichText: []notionapi.RichText{newRichText(text)},
		},
	}
}

// newRichText 일반 텍스트 RichText 객체를 생성합니다.
func newRichText(text string) notionapi.RichText {
	return notionapi.RichText{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: text},
	}
}
