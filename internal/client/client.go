package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 10 * time.Second

// 业务状态码，与服务端信封一致
const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeConflict     = 409
)

// APIError 服务端返回的非 0 业务码
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// IsUnauthorized 判断是否为未登录或凭证失效
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeUnauthorized
}

// IsNotFound 判断是否为资源不存在
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeNotFound
}

// IsForbidden 判断是否为权限不足
func IsForbidden(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == CodeForbidden
}

// Pagination 分页信息
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// Page 一页数据
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	Pagination *Pagination     `json:"pagination"`
}

// TokenStore 并发安全的登录凭证
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

// Get 当前 token
func (s *TokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set 保存 token，空串表示清除
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	s.token = strings.TrimSpace(token)
	s.mu.Unlock()
}

// Option 客户端配置项
type Option func(*Client)

// WithTimeout 覆盖默认超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.SetTimeout(timeout)
		}
	}
}

// WithToken 使用已有 token
func WithToken(token string) Option {
	return func(c *Client) {
		c.tokens.Set(token)
	}
}

// Client 控制台 API 客户端
type Client struct {
	http   *resty.Client
	tokens *TokenStore
}

// New 创建客户端，baseURL 形如 http://127.0.0.1:8080/api
func New(baseURL string, opts ...Option) *Client {
	tokens := &TokenStore{}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := tokens.Get(); token != "" {
			req.SetHeader("Authorization", token)
		}
		return nil
	})
	c := &Client{http: httpClient, tokens: tokens}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token 当前 token
func (c *Client) Token() string {
	return c.tokens.Get()
}

// call 发送请求并解析信封，out 为 nil 时忽略 data
func (c *Client) call(ctx context.Context, method, path string, query map[string]string, body, out interface{}) (*Pagination, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected http status %d for %s %s", resp.StatusCode(), method, path)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.StatusCode != CodeOK {
		return nil, &APIError{Code: env.StatusCode, Message: env.Msg}
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode data: %w", err)
		}
	}
	return env.Pagination, nil
}

func getPage[T any](ctx context.Context, c *Client, path string, query map[string]string) (Page[T], error) {
	var items []T
	pagination, err := c.call(ctx, http.MethodGet, path, query, nil, &items)
	if err != nil {
		return Page[T]{}, err
	}
	page := Page[T]{Items: items}
	if pagination != nil {
		page.Pagination = *pagination
	}
	return page, nil
}
