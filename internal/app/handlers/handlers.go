package handlers

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"

	"github.com/UndeadDemidov/shortlink-form/internal/app/display"
	midware "github.com/UndeadDemidov/shortlink-form/internal/app/middleware"
	"github.com/UndeadDemidov/shortlink-form/internal/app/storages"
	"github.com/UndeadDemidov/shortlink-form/internal/app/utils"
	"github.com/rs/zerolog"
)

//go:embed templates/page.html
var pageHTML string

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// Shortener описывает внешний сервис сокращения ссылок.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (shortURL string, err error)
}

// PageRepository описывает контракт хранения состояния страницы формы.
// Используется для удобства тестирования и для дальнейшей легкой миграции на другой "движок".
type PageRepository interface {
	Load(ctx context.Context, session string) storages.Page
	SetInput(ctx context.Context, session string, longURL string)
	SetDisplay(ctx context.Context, session string, displayURL string)
	Ping(ctx context.Context) error
	Close() error
}

// URLForm обслуживает страницу с формой сокращения ссылки
type URLForm struct {
	shortener   Shortener
	pages       PageRepository
	displayBase string
	log         zerolog.Logger
}

// NewURLForm создает URLForm и инициализирует его
func NewURLForm(displayBase string, shortener Shortener, pages PageRepository, logger zerolog.Logger) *URLForm {
	return &URLForm{
		shortener:   shortener,
		pages:       pages,
		displayBase: displayBase,
		log:         logger,
	}
}

// HandleIndex - ручка отрисовки страницы с формой.
// Поле ввода и область вывода берутся из состояния сессии.
func (f URLForm) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := f.pages.Load(ctx, midware.GetSessionID(ctx))

	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, pageView{
		LongURL: page.LongURL,
		Output:  display.Anchor(page.DisplayURL),
	})
	if err != nil {
		utils.InternalServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(buf.Bytes())
	if err != nil {
		f.log.Error().Err(err).Msg("can't write page")
	}
}

// HandleSubmitForm - ручка отправки формы urlForm.
// Всегда отвечает 303 на страницу формы, так что браузер не остается на результате POST.
// Ошибка сервиса сокращения пользователю не показывается, только пишется в лог.
func (f URLForm) HandleSubmitForm(w http.ResponseWriter, r *http.Request) {
	defer http.Redirect(w, r, "/", http.StatusSeeOther)

	r.Body = http.MaxBytesReader(w, r.Body, MaxSubmitBodySize)
	if err := r.ParseForm(); err != nil {
		f.log.Warn().Err(err).Msg("can't parse submitted form")
		return
	}

	ctx := r.Context()
	_, _, _ = f.submit(ctx, midware.GetSessionID(ctx), r.PostForm.Get(LongURLField))
}

// HandleSubmitJSON - ручка сокращения для скриптов.
// Оригинальная ссылка передается через JSON Body {"longURL":"<some_url>"}
func (f URLForm) HandleSubmitJSON(w http.ResponseWriter, r *http.Request) {
	req := SubmitRequest{}
	r.Body = http.MaxBytesReader(w, r.Body, MaxSubmitBodySize)
	err := json.NewDecoder(r.Body).Decode(&req)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body is too large"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: `JSON {"longURL":"<some_url>"} is expected`})
		return
	}

	ctx := r.Context()
	code, displayURL, err := f.submit(ctx, midware.GetSessionID(ctx), req.LongURL)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, SubmitResponse{
		ShortCode:  code,
		DisplayURL: displayURL,
		HTML:       string(display.Anchor(displayURL)),
	})
}

// submit делает ровно один запрос к сервису сокращения.
// При успехе заменяет область вывода сессии, при ошибке оставляет её как есть и пишет одну запись в лог.
func (f URLForm) submit(ctx context.Context, session string, longURL string) (code string, displayURL string, err error) {
	id := utils.NewSubmissionID()
	f.pages.SetInput(ctx, session, longURL)

	code, err = f.shortener.Shorten(ctx, longURL)
	if err != nil {
		f.log.Error().Err(err).
			Str("submission", id).
			Str("session", session).
			Str("long_url", longURL).
			Msg("shortening request failed")
		return "", "", err
	}

	displayURL = display.URL(f.displayBase, code)
	f.pages.SetDisplay(ctx, session, displayURL)
	f.log.Debug().
		Str("submission", id).
		Str("session", session).
		Str("display_url", displayURL).
		Msg("short link displayed")
	return code, displayURL, nil
}

// HeartBeat - ручка для проверки, что хранилище страниц живое
func (f URLForm) HeartBeat(w http.ResponseWriter, r *http.Request) {
	if err := f.pages.Ping(r.Context()); err != nil {
		utils.InternalServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("I'm alive (c)Helloween"))
	if err != nil {
		f.log.Error().Err(err).Send()
	}
}

// HandleMethodNotAllowed обрабатывает не валидный HTTP метод
func (f URLForm) HandleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, "Only GET and POST requests are allowed!", http.StatusMethodNotAllowed)
}

// HandleNotFound обрабатывает не найденный путь
func (f URLForm) HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, `Only GET "/", POST "/" with form field longUrl and POST "/api/shorten" are allowed`, http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
