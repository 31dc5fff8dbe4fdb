package request

import (
	"context"
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"github.com/dmitrymomot/ambient/core/scope"
)

// Media types used by the accept helpers.
const (
	MIMEApplicationJSON = "application/json"
	MIMEApplicationXML  = "application/xml"
	MIMETextPlain       = "text/plain"
	MIMETextHTML        = "text/html"
)

type acceptCache struct {
	accepts scope.Memo[string, bool]
}

func (c *acceptCache) Reset() { c.accepts.Reset() }

// Accept returns the raw Accept header.
func Accept(ctx context.Context) string {
	return Header(ctx, "Accept")
}

// Accepts reports whether the Accept header is "*/*" or mentions mime.
func Accepts(ctx context.Context, mime string) bool {
	accept := Accept(ctx)
	cache := scope.Get[acceptCache](scope.Must(ctx).Store(), scope.NamespaceAccept)
	return cache.accepts.Get(mime, func() bool {
		return accept != "" && (accept == "*/*" || strings.Contains(accept, mime))
	})
}

func AcceptsJSON(ctx context.Context) bool { return Accepts(ctx, MIMEApplicationJSON) }
func AcceptsXML(ctx context.Context) bool  { return Accepts(ctx, MIMEApplicationXML) }
func AcceptsText(ctx context.Context) bool { return Accepts(ctx, MIMETextPlain) }
func AcceptsHTML(ctx context.Context) bool { return Accepts(ctx, MIMETextHTML) }

// BasicCredentials is the decoded payload of a Basic authorization header.
type BasicCredentials struct {
	Username string
	Password string
}

type authCache struct {
	authType    scope.Lazy[string]
	credentials scope.Lazy[string]
	basic       scope.Lazy[*BasicCredentials]
}

func (c *authCache) Reset() {
	c.authType.Reset()
	c.credentials.Reset()
	c.basic.Reset()
}

func authorization(ctx context.Context) *authCache {
	return scope.Get[authCache](scope.Must(ctx).Store(), scope.NamespaceAuthorization)
}

// Authorization returns the raw Authorization header.
func Authorization(ctx context.Context) string {
	return Header(ctx, "Authorization")
}

// AuthType returns the scheme of the Authorization header (text before the
// first space), or "" when the header is absent.
func AuthType(ctx context.Context) string {
	h := Authorization(ctx)
	if h == "" {
		return ""
	}
	t, _ := authorization(ctx).authType.Get(func() (string, error) {
		scheme, _, _ := strings.Cut(h, " ")
		return scheme, nil
	})
	return t
}

// AuthCredentials returns the Authorization header after the first space.
func AuthCredentials(ctx context.Context) string {
	h := Authorization(ctx)
	if h == "" {
		return ""
	}
	c, _ := authorization(ctx).credentials.Get(func() (string, error) {
		_, creds, _ := strings.Cut(h, " ")
		return creds, nil
	})
	return c
}

// IsBasic reports whether the Authorization scheme is Basic.
func IsBasic(ctx context.Context) bool {
	return strings.EqualFold(AuthType(ctx), "basic")
}

// IsBearer reports whether the Authorization scheme is Bearer.
func IsBearer(ctx context.Context) bool {
	return strings.EqualFold(AuthType(ctx), "bearer")
}

// Basic decodes Basic credentials, splitting "username:password" on the first
// colon. It returns false for other schemes and undecodable payloads.
func Basic(ctx context.Context) (BasicCredentials, bool) {
	if Authorization(ctx) == "" {
		return BasicCredentials{}, false
	}
	isBasic := IsBasic(ctx)
	raw := AuthCredentials(ctx)

	creds, _ := authorization(ctx).basic.Get(func() (*BasicCredentials, error) {
		if !isBasic {
			return nil, nil
		}
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, nil
		}
		user, pass, _ := strings.Cut(string(decoded), ":")
		return &BasicCredentials{Username: user, Password: pass}, nil
	})
	if creds == nil {
		return BasicCredentials{}, false
	}
	return *creds, true
}

type cookieCache struct {
	values scope.Memo[string, *string]
}

func (c *cookieCache) Reset() { c.values.Reset() }

// RawCookies returns the raw Cookie header.
func RawCookies(ctx context.Context) string {
	return Header(ctx, "Cookie")
}

// Cookie returns the URI-decoded value of the named request cookie. Names
// match case-insensitively.
func Cookie(ctx context.Context, name string) (string, bool) {
	raw := RawCookies(ctx)
	cache := scope.Get[cookieCache](scope.Must(ctx).Store(), scope.NamespaceCookies)
	v := cache.values.Get(name, func() *string {
		if raw == "" {
			return nil
		}
		re := regexp.MustCompile(`(?i)(?:^|; )` + regexp.QuoteMeta(name) + `=(.*?)(?:;?$|; )`)
		m := re.FindStringSubmatch(raw)
		if m == nil || m[1] == "" {
			return nil
		}
		value := m[1]
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		return &value
	})
	if v == nil {
		return "", false
	}
	return *v, true
}
