package apiclient

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// ResolveToken ищет токен в cookie браузера, затем в заголовке Authorization, затем берет fallback
func ResolveToken(r *http.Request, cookieName, fallback string) string {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if v := strings.TrimSpace(cookie.Value); v != "" {
			return v
		}
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		if v := strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix)); v != "" {
			return v
		}
	}
	return fallback
}

// TokenCookie возвращает cookie, сохраняющую токен в браузере
func TokenCookie(name, token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredTokenCookie возвращает cookie, удаляющую токен
func ExpiredTokenCookie(name string, secure bool) *http.Cookie {
	c := TokenCookie(name, "", secure)
	c.MaxAge = -1
	return c
}

func setAuthHeader(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", bearerPrefix+token)
	}
}
