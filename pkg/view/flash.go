package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is the one-shot toast carried across a redirect.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
	// Fields holds per-field validation messages of the failed form.
	Fields map[string]string `json:"fields,omitempty"`
}

func Success(msg string) Flash { return Flash{Kind: FlashSuccess, Message: msg} }

func Error(msg string, fields map[string]string) Flash {
	return Flash{Kind: FlashError, Message: msg, Fields: fields}
}

// Field returns the message for one form field, if any.
func (f *Flash) Field(name string) string {
	if f == nil {
		return ""
	}
	return f.Fields[name]
}
