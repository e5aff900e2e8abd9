package memory

import (
	"context"
	"sync"
	"time"

	"github.com/UndeadDemidov/shortlink-form/internal/app/handlers"
	"github.com/UndeadDemidov/shortlink-form/internal/app/storages"
)

const (
	defaultTTL        = 24 * time.Hour
	defaultSweepEvery = time.Minute
)

type entry struct {
	page    storages.Page
	touched time.Time
}

// Storage реализует хранение состояния страниц в памяти.
// Является потоко безопасной реализацией handlers.PageRepository.
// Запись - последняя побеждает, порядок между сессиями и запросами не гарантируется.
// Страницы, в которые не писали дольше ttl, удаляются при очередной записи.
type Storage struct {
	storage    map[string]entry
	now        func() time.Time
	lastSweep  time.Time
	ttl        time.Duration
	sweepEvery time.Duration
	mx         sync.Mutex
}

var _ handlers.PageRepository = (*Storage)(nil)

// Option настраивает Storage
type Option func(*Storage)

// WithTTL задает время жизни страницы без записей, обычно равно времени жизни куки сессии
func WithTTL(ttl time.Duration) Option {
	return func(s *Storage) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewStorage cоздает и возвращает экземпляр Storage
func NewStorage(opts ...Option) *Storage {
	s := Storage{
		storage:    make(map[string]entry),
		now:        time.Now,
		ttl:        defaultTTL,
		sweepEvery: defaultSweepEvery,
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.lastSweep = s.now()
	return &s
}

// Load возвращает состояние страницы сессии, для неизвестной или истекшей сессии - пустую страницу
func (s *Storage) Load(_ context.Context, session string) storages.Page {
	s.mx.Lock()
	defer s.mx.Unlock()

	e, ok := s.storage[session]
	if !ok || s.expired(e, s.now()) {
		return storages.Page{}
	}
	return e.page
}

// SetInput запоминает текущее значение поля ввода
func (s *Storage) SetInput(_ context.Context, session string, longURL string) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.update(session, func(p *storages.Page) { p.LongURL = longURL })
}

// SetDisplay заменяет содержимое области вывода
func (s *Storage) SetDisplay(_ context.Context, session string, displayURL string) {
	s.mx.Lock()
	defer s.mx.Unlock()

	s.update(session, func(p *storages.Page) { p.DisplayURL = displayURL })
}

// update меняет страницу сессии, вызывается под мьютексом
func (s *Storage) update(session string, fn func(p *storages.Page)) {
	now := s.now()
	s.sweep(now)

	e, ok := s.storage[session]
	if ok && s.expired(e, now) {
		e = entry{}
	}
	fn(&e.page)
	e.touched = now
	s.storage[session] = e
}

// sweep удаляет истекшие страницы не чаще раза в sweepEvery
func (s *Storage) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.sweepEvery {
		return
	}
	s.lastSweep = now
	for session, e := range s.storage {
		if s.expired(e, now) {
			delete(s.storage, session)
		}
	}
}

func (s *Storage) expired(e entry, now time.Time) bool {
	return now.Sub(e.touched) > s.ttl
}

// Len возвращает число хранимых страниц
func (s *Storage) Len() int {
	s.mx.Lock()
	defer s.mx.Unlock()

	return len(s.storage)
}

// Ping проверяет, что экземпляр Storage создан корректно, например с помощью NewStorage()
func (s *Storage) Ping(_ context.Context) error {
	if s.storage == nil {
		return storages.ErrStorageIsUnavailable
	}
	return nil
}

// Close ничего не делает, требуется только для совместимости с контрактом
func (s *Storage) Close() error {
	// Do nothing
	return nil
}
