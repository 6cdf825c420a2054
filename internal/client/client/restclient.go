package client

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/worklog/internal/client/models"
	"github.com/dmitrijs2005/worklog/internal/netx"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type RESTClient struct {
	baseURL string
	http    *resty.Client

	mu          sync.RWMutex
	accessToken string
}

// NewRESTClient builds a client for the API at addr, which may be a full URL
// or a bare host:port.
func NewRESTClient(addr string, timeout time.Duration) (*RESTClient, error) {
	baseURL, err := netx.BaseURL(addr)
	if err != nil {
		return nil, err
	}

	h := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &RESTClient{baseURL: baseURL, http: h}, nil
}

func (c *RESTClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *RESTClient) request(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if t := c.token(); t != "" {
		r.SetAuthToken(t)
	}
	return r
}

// check turns a transport failure or an error status into an error.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !resp.IsError() {
		return nil
	}

	var body struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(resp.Body(), &body)
	return newAPIError(resp.StatusCode(), body.Error)
}

func (c *RESTClient) Ping(ctx context.Context) error {
	return check(c.request(ctx).Get("/ping"))
}

// Login authenticates and keeps the access token for later calls.
func (c *RESTClient) Login(ctx context.Context, username, password string) (*models.Token, error) {
	var out models.Token
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/api/auth/login")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.accessToken = out.Token
	c.mu.Unlock()

	return &out, nil
}

// Logout forgets the access token. Tokens are stateless, so the server is
// not involved.
func (c *RESTClient) Logout() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}

func (c *RESTClient) Me(ctx context.Context) (*models.Identity, error) {
	var out models.Identity
	if err := check(c.request(ctx).SetResult(&out).Get("/api/me")); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) Functions(ctx context.Context) ([]models.Function, error) {
	var out []models.Function
	if err := check(c.request(ctx).SetResult(&out).Get("/api/functions")); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) AddFunction(ctx context.Context, name string, rate decimal.Decimal) (*models.Function, error) {
	var out models.Function
	body := models.Function{Name: name, HourlyRate: rate}
	if err := check(c.request(ctx).SetBody(body).SetResult(&out).Post("/api/functions")); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) AddSession(ctx context.Context, in models.SessionInput) (*models.RecordedSession, error) {
	var out models.RecordedSession
	if err := check(c.request(ctx).SetBody(in).SetResult(&out).Post("/api/sessions")); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RESTClient) Years(ctx context.Context) ([]int, error) {
	var out struct {
		Years []int `json:"years"`
	}
	if err := check(c.request(ctx).SetResult(&out).Get("/api/reports/years")); err != nil {
		return nil, err
	}
	return out.Years, nil
}

func filterParams(f models.Filter) map[string]string {
	p := map[string]string{
		"year":  strconv.Itoa(f.Year),
		"month": strconv.Itoa(f.Month),
	}
	if f.Function != "" {
		p["function"] = f.Function
	}
	if f.Owner != "" {
		p["owner"] = f.Owner
	}
	return p
}

func (c *RESTClient) Report(ctx context.Context, f models.Filter) (*models.Report, error) {
	var out models.Report
	if err := check(c.request(ctx).SetQueryParams(filterParams(f)).SetResult(&out).Get("/api/reports")); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export downloads a report document. The file name is taken from the
// Content-Disposition header.
func (c *RESTClient) Export(ctx context.Context, format string, f models.Filter) (*models.ExportFile, error) {
	resp, err := c.request(ctx).
		SetQueryParams(filterParams(f)).
		SetPathParam("format", format).
		Get("/api/reports/export/{format}")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	name := "report." + format
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}

	return &models.ExportFile{
		Name:        name,
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}

func (c *RESTClient) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := check(c.request(ctx).SetResult(&out).Get("/api/users")); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RESTClient) AddUser(ctx context.Context, u models.NewUser) error {
	return check(c.request(ctx).SetBody(u).Post("/api/users"))
}

func (c *RESTClient) DeleteUser(ctx context.Context, username string) error {
	return check(c.request(ctx).Delete("/api/users/" + url.PathEscape(username)))
}
