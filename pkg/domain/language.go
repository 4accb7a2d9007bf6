package domain

// LangEnglish is the fallback language for all localized content.
const LangEnglish = "en"

// Language describes one supported interface language.
type Language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

var supportedLanguages = []Language{
	{Code: "en", Name: "English", NativeName: "English"},
	{Code: "hi", Name: "Hindi", NativeName: "हिन्दी"},
	{Code: "ta", Name: "Tamil", NativeName: "தமிழ்"},
	{Code: "bn", Name: "Bengali", NativeName: "বাংলা"},
	{Code: "te", Name: "Telugu", NativeName: "తెలుగు"},
}

// SupportedLanguages returns the fixed language catalog. The slice is a
// copy; callers may not mutate the catalog.
func SupportedLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}
