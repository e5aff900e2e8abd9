package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/UndeadDemidov/shortlink-form/internal/app/storages"
)

var errPagesDown = errors.New("mocked fail, pages are down")

// PagesMock - простейший мок для PageRepository
type PagesMock struct {
	pages map[string]storages.Page
	mx    sync.Mutex
	down  bool
}

func NewPagesMock() *PagesMock {
	return &PagesMock{pages: make(map[string]storages.Page)}
}

func (pm *PagesMock) Load(_ context.Context, session string) storages.Page {
	pm.mx.Lock()
	defer pm.mx.Unlock()
	return pm.pages[session]
}

func (pm *PagesMock) SetInput(_ context.Context, session string, longURL string) {
	pm.mx.Lock()
	defer pm.mx.Unlock()
	p := pm.pages[session]
	p.LongURL = longURL
	pm.pages[session] = p
}

func (pm *PagesMock) SetDisplay(_ context.Context, session string, displayURL string) {
	pm.mx.Lock()
	defer pm.mx.Unlock()
	p := pm.pages[session]
	p.DisplayURL = displayURL
	pm.pages[session] = p
}

func (pm *PagesMock) Ping(_ context.Context) error {
	if pm.down {
		return errPagesDown
	}
	return nil
}

func (pm *PagesMock) Close() error {
	return nil
}

// ShortenerFunc позволяет подставить функцию вместо Shortener
type ShortenerFunc func(ctx context.Context, longURL string) (string, error)

func (fn ShortenerFunc) Shorten(ctx context.Context, longURL string) (string, error) {
	return fn(ctx, longURL)
}
