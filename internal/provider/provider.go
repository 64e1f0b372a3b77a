package provider

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/newthinker/navscope/internal/core"
)

// Provider fetches scheme metadata and NAV history
type Provider interface {
	Name() string

	SchemeDetails(ctx context.Context, code string) (*core.FundMetadata, error)
	SchemeHistory(ctx context.Context, code string) ([]core.RawPoint, error)
}

// CatalogSource lists every scheme a provider knows about
type CatalogSource interface {
	Name() string

	Schemes(ctx context.Context) ([]core.Scheme, error)
}

// validCode matches AMFI scheme codes like 119551
var validCode = regexp.MustCompile(`^[0-9]{1,10}$`)

// ValidateCode checks and trims a scheme code
func ValidateCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", core.WrapError(core.ErrInvalidCode, fmt.Errorf("code cannot be empty"))
	}
	if !validCode.MatchString(code) {
		return "", core.WrapError(core.ErrInvalidCode, fmt.Errorf("%q is not numeric", code))
	}
	return code, nil
}
