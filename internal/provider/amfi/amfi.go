package amfi

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newthinker/navscope/internal/core"
	"github.com/newthinker/navscope/internal/provider"
)

const DefaultURL = "https://www.amfiindia.com/spages/NAVAll.txt"

// NAVAll.txt columns
const (
	colCode = 0
	colName = 3
	numCols = 6
)

// Catalog implements provider.CatalogSource from AMFI's daily NAVAll.txt
type Catalog struct {
	client *http.Client
	url    string
}

// New creates a new AMFI catalog source
func New(url string, timeout time.Duration) *Catalog {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Catalog{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (c *Catalog) Name() string {
	return "amfi"
}

// Schemes downloads and parses the scheme list
func (c *Catalog) Schemes(ctx context.Context) ([]core.Scheme, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrProviderFailed, fmt.Errorf("fetching catalog: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrProviderFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	schemes, err := Parse(resp.Body)
	if err != nil {
		return nil, core.WrapError(core.ErrProviderFailed, err)
	}
	return schemes, nil
}

// Parse reads NAVAll.txt. Scheme rows are semicolon separated:
//
//	code;isin growth;isin reinvestment;name;nav;date
//
// Header, fund house and category lines are skipped. Order is kept and
// the first row wins for a repeated code.
func Parse(r io.Reader) ([]core.Scheme, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var schemes []core.Scheme
	seen := make(map[string]struct{})

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing catalog: %w", err)
		}
		if len(record) < numCols {
			continue
		}

		code, err := provider.ValidateCode(record[colCode])
		if err != nil {
			continue // header row
		}
		name := strings.Join(strings.Fields(record[colName]), " ")
		if name == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		schemes = append(schemes, core.Scheme{Code: code, Name: name})
	}

	return schemes, nil
}
