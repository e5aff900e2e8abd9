package storages

import (
	"errors"
)

var ErrStorageIsUnavailable = errors.New("storage is unavailable")

// Page - состояние страницы формы для одной сессии браузера.
// LongURL - текущее значение поля ввода, DisplayURL - ссылка в области вывода.
// Пустой DisplayURL означает пустую область вывода.
type Page struct {
	LongURL    string
	DisplayURL string
}
