package cookies

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/JMURv/taskboard/internal/config"
)

var ErrNoCookie = errors.New("cookie is not set")
var ErrBadSignature = errors.New("cookie signature mismatch")

// Core carries opaque values in tamper-evident cookies. The value is
// never inspected, only signed with a secret distinct from the token
// signing secret.
type Core struct {
	secret []byte
	secure bool
}

func New(conf config.Config) *Core {
	return &Core{
		secret: []byte(conf.Auth.Cookie.Secret),
		secure: conf.Server.Mode == "prod",
	}
}

func (c *Core) Set(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	http.SetCookie(
		w, &http.Cookie{
			Name:     name,
			Value:    c.encode(name, value),
			MaxAge:   int(maxAge.Seconds()),
			HttpOnly: true,
			Secure:   c.secure,
			Path:     "/",
			SameSite: http.SameSiteStrictMode,
		},
	)
}

func (c *Core) Clear(w http.ResponseWriter, name string) {
	http.SetCookie(
		w, &http.Cookie{
			Name:     name,
			Value:    "",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   c.secure,
			Path:     "/",
			SameSite: http.SameSiteStrictMode,
		},
	)
}

func (c *Core) Read(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", ErrNoCookie
	}

	return c.decode(name, cookie.Value)
}

func (c *Core) encode(name, value string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." +
		base64.RawURLEncoding.EncodeToString(c.sign(name, value))
}

func (c *Core) decode(name, raw string) (string, error) {
	payload, sig, ok := strings.Cut(raw, ".")
	if !ok {
		return "", ErrBadSignature
	}

	value, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrBadSignature
	}

	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", ErrBadSignature
	}

	if !hmac.Equal(got, c.sign(name, string(value))) {
		return "", ErrBadSignature
	}

	return string(value), nil
}

// sign binds the value to the cookie name so a signed access value
// cannot be replayed as a refresh value.
func (c *Core) sign(name, value string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(name))
	mac.Write([]byte{'='})
	mac.Write([]byte(value))
	return mac.Sum(nil)
}
