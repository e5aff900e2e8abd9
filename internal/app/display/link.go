// Package display строит ссылку для показа пользователю и её HTML представление.
package display

import (
	"bytes"
	"html/template"
	"strings"
)

var anchorTmpl = template.Must(template.New("anchor").Parse(
	`<a href="{{.}}" target="_blank">{{.}}</a>`))

// URL собирает ссылку вида <base>/?code=<code>.
// Код подставляется как есть, экранирование делает шаблон при выводе.
func URL(base string, code string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(base, "/"))
	sb.WriteString("/?code=")
	sb.WriteString(code)
	return sb.String()
}

// Anchor возвращает <a> с одинаковыми href и текстом, открывающийся в новой вкладке.
// Пустая ссылка дает пустой фрагмент.
func Anchor(displayURL string) template.HTML {
	if displayURL == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := anchorTmpl.Execute(&buf, displayURL); err != nil {
		return ""
	}
	//nolint:gosec // содержимое экранировано html/template
	return template.HTML(buf.String())
}
