package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/sweetshop-backend/pkg/errors"
	"resty.dev/v3"
)

const defaultHTTPTimeout = 10 * time.Second

// HTTPOptions configures an HTTPSource.
type HTTPOptions struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// HTTPSource reads the catalog from a remote REST API that speaks the
// {"data": ...} envelope served under /api/v1.
type HTTPSource struct {
	client *resty.Client
}

func NewHTTPSource(opts HTTPOptions) (*HTTPSource, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	client := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if opts.Token != "" {
		client.SetAuthToken(opts.Token)
	}
	return &HTTPSource{client: client}, nil
}

func (s *HTTPSource) Name() string { return "remote" }

// Close releases idle connections held by the client.
func (s *HTTPSource) Close() error {
	return s.client.Close()
}

func (s *HTTPSource) List(ctx context.Context, q Query) ([]Product, error) {
	q = q.Normalized()
	params := map[string]string{
		"sort_by":    q.SortField.String(),
		"sort_order": q.SortOrder.String(),
	}
	if q.Category != "" {
		params["category"] = q.Category
	}
	if q.Search != "" {
		params["search"] = q.Search
	}

	var out []Product
	if err := s.get(ctx, request{path: "/sweets/raw", params: params, list: true}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Product{}
	}
	return out, nil
}

func (s *HTTPSource) Get(ctx context.Context, id uint) (Product, error) {
	var out Product
	path := "/sweets/" + strconv.FormatUint(uint64(id), 10)
	if err := s.get(ctx, request{path: path, notFound: "Sweet not found"}, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (s *HTTPSource) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.get(ctx, request{path: "/categories", list: true}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Category{}
	}
	return out, nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type request struct {
	path   string
	params map[string]string
	// list payloads may carry a null data field.
	list bool
	// notFound, when set, maps a 404 to CodeNotFound with this message.
	notFound string
}

func (s *HTTPSource) get(ctx context.Context, r request, dst any) error {
	req := s.client.R().SetContext(ctx)
	if len(r.params) > 0 {
		req.SetQueryParams(r.params)
	}

	resp, err := req.Get(r.path)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog source request failed")
	}

	if r.notFound != "" && resp.StatusCode() == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, r.notFound)
	}
	if resp.IsError() {
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog source returned an error").
			WithDetails(map[string]any{"status": resp.StatusCode(), "path": r.path})
	}

	var env envelope
	if err := json.Unmarshal(resp.Bytes(), &env); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog source returned malformed payload")
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		if r.list {
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeDependency, "catalog source payload missing data")
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog source returned malformed payload")
	}
	return nil
}
