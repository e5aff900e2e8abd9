package handlers

const (
	// LongURLField - имя поля ввода формы urlForm
	LongURLField = "longUrl"
	// MaxSubmitBodySize - предельный размер тела запроса на сокращение
	MaxSubmitBodySize = 1 << 20
)

// SubmitRequest represents JSON {"longURL":"<some_url>"}
type SubmitRequest struct {
	LongURL string `json:"longURL"`
}
