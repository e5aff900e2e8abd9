package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const SessionCookieName = "ShortLinkSession"

// SessionMaxAge - время жизни куки сессии
const SessionMaxAge = 24 * time.Hour

type contextKey string

const contextSessionKey contextKey = "ShortLinkSession"

var (
	ErrSignedCookieInvalidValueOrUnsigned = errors.New("invalid cookie value or it is unsigned")
	ErrSignedCookieInvalidSign            = errors.New("invalid sign")
	ErrSignedCookieEmptySecret            = errors.New("secret must not be empty")
)

// SessionCookie определяет сессию браузера по подписанной куке и кладет её id в контекст.
// Если куки нет или подпись не сошлась - заводится новая сессия.
func SessionCookie(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			session, err := getSessionID(w, r, secret)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			ctx := context.WithValue(r.Context(), contextSessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(fn)
	}
}

func getSessionID(w http.ResponseWriter, r *http.Request, secret []byte) (sessionID string, err error) {
	c, err := r.Cookie(SessionCookieName)
	if err == nil {
		sc := SignedCookie{Cookie: c, secret: secret}
		err = sc.DetachSign()
		if err == nil {
			return sc.BaseValue, nil
		}
		if !errors.Is(err, ErrSignedCookieInvalidSign) && !errors.Is(err, ErrSignedCookieInvalidValueOrUnsigned) {
			return "", err
		}
	}

	sc, err := NewSessionSignedCookie(secret)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, sc.Cookie)
	return sc.BaseValue, nil
}

// GetSessionID возвращает сохраненный в контексте id сессии
func GetSessionID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(contextSessionKey).(string); ok {
		return id
	}
	return ""
}

// WithSessionID кладет id сессии в контекст, минуя куку
func WithSessionID(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, contextSessionKey, session)
}

// SignedCookie - кука со значением вида <value>|<hex(hmac-sha256)>
type SignedCookie struct {
	*http.Cookie
	secret    []byte
	BaseValue string
}

// NewSessionSignedCookie создает подписанную куку с новым id сессии
func NewSessionSignedCookie(secret []byte) (sc SignedCookie, err error) {
	sc = SignedCookie{
		Cookie: &http.Cookie{
			Path:     "/",
			Name:     SessionCookieName,
			Value:    uuid.New().String(),
			MaxAge:   int(SessionMaxAge / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		secret: secret,
	}

	err = sc.AttachSign()
	if err != nil {
		return SignedCookie{}, err
	}
	return sc, nil
}

// AttachSign подписывает текущее значение куки
func (sc *SignedCookie) AttachSign() (err error) {
	if len(sc.secret) == 0 {
		return ErrSignedCookieEmptySecret
	}
	sc.BaseValue = sc.Value
	sc.Value = fmt.Sprintf("%s|%s", sc.Value, hex.EncodeToString(sc.calcSign()))
	return nil
}

// DetachSign проверяет подпись и выделяет BaseValue
func (sc *SignedCookie) DetachSign() (err error) {
	if len(sc.secret) == 0 {
		return ErrSignedCookieEmptySecret
	}
	ss := strings.Split(sc.Value, "|")
	if len(ss) != 2 || ss[0] == "" {
		return ErrSignedCookieInvalidValueOrUnsigned
	}
	sc.BaseValue = ss[0]

	sgn, err := hex.DecodeString(ss[1])
	if err != nil || !hmac.Equal(sgn, sc.calcSign()) {
		return ErrSignedCookieInvalidSign
	}
	return nil
}

func (sc *SignedCookie) calcSign() []byte {
	h := hmac.New(sha256.New, sc.secret)
	h.Write([]byte(sc.BaseValue))
	return h.Sum(nil)
}
