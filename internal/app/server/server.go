package server

import (
	"net/http"

	"github.com/UndeadDemidov/shortlink-form/internal/app/handlers"
	midware "github.com/UndeadDemidov/shortlink-form/internal/app/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter создает роутер формы с указанными сервисом сокращения и хранилищем страниц
func NewRouter(displayBase string, shortener handlers.Shortener, pages handlers.PageRepository, secret []byte, logger zerolog.Logger) http.Handler {
	handler := handlers.NewURLForm(displayBase, shortener, pages, logger)

	r := chi.NewRouter()
	r.Use(middleware.Heartbeat("/health"))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(midware.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(midware.SessionCookie(secret))
		r.Use(middleware.Compress(5, "text/html"))
		r.Get("/", handler.HandleIndex)
		r.Post("/", handler.HandleSubmitForm)
	})

	r.Group(func(r chi.Router) {
		r.Use(midware.SessionCookie(secret))
		r.Use(midware.Decompress)
		r.Post("/api/shorten", handler.HandleSubmitJSON)
	})

	r.Get("/ping", handler.HeartBeat)
	r.NotFound(handler.HandleNotFound)
	r.MethodNotAllowed(handler.HandleMethodNotAllowed)

	return r
}

// NewServer создает и возвращает новый сервер на указанном адресе
func NewServer(addr string, h http.Handler) *http.Server {
	s := &http.Server{
		Addr:    addr,
		Handler: h,
	}
	return s
}
