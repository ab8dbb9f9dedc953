package provider

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	apperrors "github.com/toonkeep/toonkeep-server/internal/pkg/errors"
)

// Registry 플랫폼 리졸버들을 등록하고 URL 호스트 기반으로 찾아주는 저장소입니다.
type Registry struct {
	mu        sync.RWMutex
	resolvers map[string]Resolver // 키: 플랫폼 ID
	byHost    map[string]Resolver // 키: 호스트 이름
}

// NewRegistry 새로운 Registry 인스턴스를 생성합니다.
func NewRegistry() *Registry {
	return &Registry{
		resolvers: make(map[string]Resolver),
		byHost:    make(map[string]Resolver),
	}
}

// Register 리졸버를 등록합니다. 플랫폼 ID 또는 호스트가 중복되면 에러를 반환합니다.
func (r *Registry) Register(resolver Resolver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	platform := resolver.Platform()
	if _, exists := r.resolvers[platform]; exists {
		return apperrors.New(apperrors.ErrInternal, fmt.Sprintf("이미 등록된 플랫폼입니다: '%s'", platform))
	}

	for _, host := range resolver.Hosts() {
		host = strings.ToLower(host)
		if _, exists := r.byHost[host]; exists {
			return apperrors.New(apperrors.ErrInternal, fmt.Sprintf("이미 다른 플랫폼에 등록된 호스트입니다: '%s'", host))
		}
		r.byHost[host] = resolver
	}

	r.resolvers[platform] = resolver
	return nil
}

// ByPlatform 플랫폼 ID로 리졸버를 찾습니다.
func (r *Registry) ByPlatform(platform string) (Resolver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resolver, exists := r.resolvers[platform]
	return resolver, exists
}

// ForURL 대상 URL의 호스트를 기준으로 적합한 리졸버를 찾습니다.
//
// 호스트는 정확히 일치하거나, 등록된 호스트의 서브도메인(예: www.)이어야 합니다.
func (r *Registry) ForURL(rawURL string) (Resolver, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, apperrors.New(apperrors.ErrInvalidInput, fmt.Sprintf("유효한 URL이 아닙니다: '%s'", rawURL))
	}

	host := strings.ToLower(parsed.Hostname())

	r.mu.RLock()
	defer r.mu.RUnlock()

	if resolver, exists := r.byHost[host]; exists {
		return resolver, nil
	}

	// 서브도메인 매칭 (예: www.ridibooks.com -> ridibooks.com)
	for registeredHost, resolver := range r.byHost {
		if strings.HasSuffix(host, "."+registeredHost) {
			return resolver, nil
		}
	}

	return nil, apperrors.New(apperrors.ErrInvalidInput, fmt.Sprintf("지원하지 않는 플랫폼입니다: '%s'", host))
}

// Platforms 등록된 플랫폼 ID 목록을 정렬하여 반환합니다.
func (r *Registry) Platforms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]string, 0, len(r.resolvers))
	for platform := range r.resolvers {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	return platforms
}
