package domain

import "encoding/json"

// Supported display languages, in fallback order after the requested one.
const (
	LangEN = "en"
	LangRU = "ru"
	LangTJ = "tj"
)

var fallbackOrder = []string{LangEN, LangRU, LangTJ}

// LocalizedText is a text value that is either a plain string or a mapping
// from language code to string. The backend is not consistent about which
// shape it sends, so both are accepted on the wire.
type LocalizedText struct {
	Plain  string
	ByLang map[string]string
}

func NewText(s string) LocalizedText {
	return LocalizedText{Plain: s}
}

func NewLocalized(en, ru, tj string) LocalizedText {
	return LocalizedText{ByLang: map[string]string{LangEN: en, LangRU: ru, LangTJ: tj}}
}

// Resolve returns the display string for lang, falling back to en, ru, tj and
// finally the empty string. It is total: a zero LocalizedText resolves to "".
func (t LocalizedText) Resolve(lang string) string {
	if t.ByLang == nil {
		return t.Plain
	}
	if s, ok := t.ByLang[lang]; ok && s != "" {
		return s
	}
	for _, l := range fallbackOrder {
		if s, ok := t.ByLang[l]; ok && s != "" {
			return s
		}
	}
	return ""
}

func (t LocalizedText) IsZero() bool {
	if t.ByLang == nil {
		return t.Plain == ""
	}
	for _, s := range t.ByLang {
		if s != "" {
			return false
		}
	}
	return true
}

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.ByLang != nil {
		return json.Marshal(t.ByLang)
	}
	return json.Marshal(t.Plain)
}

func (t *LocalizedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = LocalizedText{Plain: s}
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*t = LocalizedText{ByLang: m}
	return nil
}
