package handlers

import "html/template"

// SubmitResponse represents JSON {"short_code":"...","display_url":"...","html":"<a ...>"}
type SubmitResponse struct {
	ShortCode  string `json:"short_code"`
	DisplayURL string `json:"display_url"`
	HTML       string `json:"html"`
}

// ErrorResponse represents JSON {"error":"..."}
type ErrorResponse struct {
	Error string `json:"error"`
}

// pageView - данные для шаблона страницы
type pageView struct {
	LongURL string
	Output  template.HTML
}
