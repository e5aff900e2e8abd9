package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"
)

// Decompress распаковывает тело запроса, присланное с Content-Encoding: gzip.
// Нужен для /api/shorten, формы браузер не сжимает.
func Decompress(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if !strings.EqualFold(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer gz.Close()
		r.Body = gz
		r.Header.Del("Content-Encoding")
		r.ContentLength = -1
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}
