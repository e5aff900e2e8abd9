// Package shortening реализует клиента внешнего сервиса сокращения ссылок.
//
// Сервис принимает POST с JSON {"longURL":"<url>"} и отвечает JSON,
// из которого используется только поле body.shortURL.
package shortening

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrRequestFailed - единственная категория ошибок клиента.
// Ей оборачивается любой сбой: сеть, статус, не JSON, нет поля body.shortURL.
var ErrRequestFailed = errors.New("request failed")

var errMissingShortURL = errors.New("response has no body.shortURL")

// maxResponseSize ограничивает чтение ответа сервиса
const maxResponseSize = 1 << 20

// StatusError возвращается, когда сервис ответил не 2xx.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Unwrap позволяет проверять StatusError через errors.Is(err, ErrRequestFailed)
func (e *StatusError) Unwrap() error { return ErrRequestFailed }

// ShortenRequest represents JSON {"longURL":"<some_url>"}
type ShortenRequest struct {
	LongURL string `json:"longURL"`
}

// ShortenResponse represents JSON {"body":{"shortURL":"<code>"}}
// Схема принадлежит внешнему сервису, остальные поля игнорируются.
// ShortURL - указатель, чтобы отличить отсутствующее поле от пустой строки.
type ShortenResponse struct {
	Body *struct {
		ShortURL *string `json:"shortURL"`
	} `json:"body"`
}

// Client обращается к маршруту /shorten сервиса сокращения.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задает http.Client для исходящих запросов
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout ограничивает время одного вызова Shorten. 0 - без ограничения.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New создает клиента для указанного endpoint
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint возвращает адрес, на который уходят запросы
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Shorten отправляет длинную ссылку как есть и возвращает короткий код.
// Ссылка не валидируется, это забота сервиса.
func (c *Client) Shorten(ctx context.Context, longURL string) (shortURL string, err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(ShortenRequest{LongURL: longURL})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	// Ответ целиком должен быть одним JSON значением, хвост после него - ошибка
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", ErrRequestFailed, err)
	}
	var sr ShortenResponse
	if err = json.Unmarshal(b, &sr); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrRequestFailed, err)
	}
	if sr.Body == nil || sr.Body.ShortURL == nil {
		return "", fmt.Errorf("%w: %w", ErrRequestFailed, errMissingShortURL)
	}
	return *sr.Body.ShortURL, nil
}
