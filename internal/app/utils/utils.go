package utils

import (
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
)

// NewSubmissionID возвращает короткий id отправки формы для связки записей в логе.
func NewSubmissionID() (id string) {
	var err error
	id, err = gonanoid.New(8)
	if err != nil {
		panic(err)
	}
	return id
}

func InternalServerError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusInternalServerError)
	log.Error().Err(err).Send()
}
