package redact

import "strings"

func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if r := []rune(local); len(r) > 2 {
		local = string(r[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Token скрывает токен целиком, оставляя только признак наличия.
func Token(s string) string {
	if s == "" {
		return "[EMPTY_TOKEN]"
	}

	return "[REDACTED_TOKEN]"
}

func Password() string { return "[REDACTED_PASSWORD]" }

// Key оставляет от ключа объекта только последний сегмент пути.
func Key(s string) string {
	i := strings.LastIndex(s, "/")
	if i < 0 || i == len(s)-1 {
		return s
	}

	return ".../" + s[i+1:]
}
