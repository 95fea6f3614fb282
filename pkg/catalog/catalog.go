// Package catalog is a Go client for the Harumnesia API. Besides one
// method per endpoint it offers combinators that query the local and the
// international collections concurrently and merge the answers into the
// lists the questionnaire dropdowns need.
package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"harumnesia/internal/client"
	"harumnesia/internal/model"
	"harumnesia/internal/version"
)

// Endpoint names accepted by Client.URL.
const (
	EndpointPerfumes         = "perfumes"
	EndpointPerfumePage      = "perfumePage"
	EndpointPerfume          = "perfume"
	EndpointPerfumesByBrand  = "perfumesByBrand"
	EndpointPerfumeBrands    = "perfumeBrands"
	EndpointRecommend        = "recommend"
	EndpointMLRecommend      = "mlRecommend"
	EndpointBrands           = "brands"
	EndpointBrand            = "brand"
	EndpointBrandPerfumes    = "brandPerfumes"
	EndpointInterPerfumes    = "interPerfumes"
	EndpointInterBrands      = "interBrands"
	EndpointInterBrandByName = "interBrandPerfumes"
	EndpointInterSearch      = "interSearch"
	EndpointInterDropdown    = "interDropdown"
	EndpointHealth           = "health"
)

// Endpoints maps endpoint names to path templates; %s is a path-escaped argument.
var Endpoints = map[string]string{
	EndpointPerfumes:         "/api/perfumes",
	EndpointPerfumePage:      "/api/perfumes/page/%s",
	EndpointPerfume:          "/api/perfumes/%s",
	EndpointPerfumesByBrand:  "/api/perfumes/brand/%s",
	EndpointPerfumeBrands:    "/api/perfumes/brands",
	EndpointRecommend:        "/api/perfumes/recommend",
	EndpointMLRecommend:      "/api/ml/recommend",
	EndpointBrands:           "/api/brands",
	EndpointBrand:            "/api/brands/%s",
	EndpointBrandPerfumes:    "/api/brands/%s/perfumes",
	EndpointInterPerfumes:    "/api/inter/perfumes",
	EndpointInterBrands:      "/api/inter/brands",
	EndpointInterBrandByName: "/api/inter/brands/%s/perfumes",
	EndpointInterSearch:      "/api/inter/search",
	EndpointInterDropdown:    "/api/inter/dropdown",
	EndpointHealth:           "/health",
}

type Client struct {
	http *client.HTTPClient
}

// New returns a client for the API at baseURL. A zero timeout means none.
func New(baseURL string, timeout time.Duration) *Client {
	h := client.NewHTTPClient(baseURL, timeout)
	h.SetDefaultHeader("User-Agent", "harumnesia-catalog/"+version.Version)
	return &Client{http: h}
}

// Path expands an endpoint template with its path arguments.
func Path(name string, args ...string) (string, error) {
	tmpl, ok := Endpoints[name]
	if !ok {
		return "", fmt.Errorf("unknown endpoint %q", name)
	}
	if n := strings.Count(tmpl, "%s"); n != len(args) {
		return "", fmt.Errorf("endpoint %q takes %d path arguments, got %d", name, n, len(args))
	}
	if len(args) == 0 {
		return tmpl, nil
	}
	escaped := make([]interface{}, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	return fmt.Sprintf(tmpl, escaped...), nil
}

// URL is the absolute URL of an endpoint.
func (c *Client) URL(name string, query map[string]string, args ...string) (string, error) {
	path, err := Path(name, args...)
	if err != nil {
		return "", err
	}
	return c.http.BuildURL(path, query)
}

func get[T any](ctx context.Context, c *Client, name string, query map[string]string, args ...string) (T, error) {
	var zero T
	path, err := Path(name, args...)
	if err != nil {
		return zero, err
	}
	resp, err := client.Get[T](c.http, ctx, path, query)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	return resp.Data, nil
}

func post[T any](ctx context.Context, c *Client, name string, body interface{}) (T, error) {
	var zero T
	path, err := Path(name)
	if err != nil {
		return zero, err
	}
	resp, err := client.Post[T](c.http, ctx, path, body, 0)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	return resp.Data, nil
}

// PerfumeSummary is the part of a perfume document the client cares about.
type PerfumeSummary struct {
	ObjectID  string      `json:"_id"`
	PerfumeID interface{} `json:"perfumeId,omitempty"`
	LegacyID  interface{} `json:"ID Perfume,omitempty"`
	Name      string      `json:"name"`
	Brand     string      `json:"brand"`
}

// ID follows the server's preference: perfumeId, "ID Perfume", then _id.
func (p PerfumeSummary) ID() string {
	for _, v := range []interface{}{p.PerfumeID, p.LegacyID} {
		if id := model.IDString(v); id != "" {
			return id
		}
	}
	return p.ObjectID
}

type PerfumePage struct {
	Perfumes []PerfumeSummary `json:"perfumes"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Count    int64            `json:"count"`
}

func (c *Client) Perfumes(ctx context.Context) ([]PerfumeSummary, error) {
	return get[[]PerfumeSummary](ctx, c, EndpointPerfumes, nil)
}

func (c *Client) PerfumePage(ctx context.Context, page int) (*PerfumePage, error) {
	p, err := get[PerfumePage](ctx, c, EndpointPerfumePage, nil, strconv.Itoa(page))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) PerfumeBrands(ctx context.Context) ([]string, error) {
	return get[[]string](ctx, c, EndpointPerfumeBrands, nil)
}

func (c *Client) Brands(ctx context.Context) ([]model.Brand, error) {
	return get[[]model.Brand](ctx, c, EndpointBrands, nil)
}

func (c *Client) InterBrands(ctx context.Context) ([]string, error) {
	return get[[]string](ctx, c, EndpointInterBrands, nil)
}

func (c *Client) InterDropdown(ctx context.Context) (*model.DropdownData, error) {
	d, err := get[model.DropdownData](ctx, c, EndpointInterDropdown, nil)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Recommendation is a recommended perfume with its ML score, when the ML
// service answered.
type Recommendation struct {
	PerfumeSummary
	SimilarityScore *float64 `json:"similarityScore,omitempty"`
}

type RecommendationResult struct {
	Success         bool             `json:"success"`
	Source          string           `json:"source"`
	Fallback        bool             `json:"fallback"`
	Count           int              `json:"count"`
	Query           string           `json:"query,omitempty"`
	Message         string           `json:"message,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommend asks for perfumes similar to a named one.
func (c *Client) Recommend(ctx context.Context, req model.SimilarityRequest) (*RecommendationResult, error) {
	r, err := post[RecommendationResult](ctx, c, EndpointRecommend, req)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// MLRecommend sends questionnaire answers.
func (c *Client) MLRecommend(ctx context.Context, req model.PreferenceRequest) (*RecommendationResult, error) {
	r, err := post[RecommendationResult](ctx, c, EndpointMLRecommend, req)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Health reports whether GET /health answered 200.
func (c *Client) Health(ctx context.Context) error {
	_, err := get[map[string]interface{}](ctx, c, EndpointHealth, nil)
	return err
}
