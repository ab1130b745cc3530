package httpclient

import "net/http"

type AuthType int

const (
	AuthNone AuthType = iota
	AuthBearer
	AuthAPIKey
)

const defaultAPIKeyHeader = "X-API-Key"

// AuthConfig places a credential on outgoing requests. Groq takes a bearer
// token; Gemini takes its key in a header.
type AuthConfig struct {
	Type   AuthType
	Token  string
	Header string // AuthAPIKey only; empty means X-API-Key
}

func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

func APIKeyAuth(key, header string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Token: key, Header: header}
}

// header returns the header name and value to set, or ok=false when the
// config adds nothing.
func (a *AuthConfig) header() (name, value string, ok bool) {
	if a == nil {
		return "", "", false
	}
	switch a.Type {
	case AuthBearer:
		return "Authorization", "Bearer " + a.Token, true
	case AuthAPIKey:
		if a.Header == "" {
			return defaultAPIKeyHeader, a.Token, true
		}
		return a.Header, a.Token, true
	}
	return "", "", false
}

func (a *AuthConfig) apply(req *http.Request) {
	if name, value, ok := a.header(); ok {
		req.Header.Set(name, value)
	}
}
