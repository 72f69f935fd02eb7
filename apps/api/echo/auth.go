package echoapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/session"
	"github.com/trezcool/shule/core/user"
)

const (
	sessionCookieName = "sid"
	contextUserKey    = "user"
	contextSessionKey = "session"
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the content of a session token. A valid signature is not enough: the session must still exist.
type Claims struct {
	jwt.StandardClaims
}

// GenerateToken signs a token for sess with secretKey.
func GenerateToken(secretKey, issuer string, sess session.Session) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:       sess.ID,
			Subject:  strconv.Itoa(sess.UserID),
			Issuer:   issuer,
			IssuedAt: sess.CreatedAt.Unix(),
		},
	}
	ss, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(secretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

type sessionAuth struct {
	secretKey    []byte
	issuer       string
	cookieSecure bool
	sessions     session.Store
	usrSvc       *user.Service
}

func newSessionAuth(conf *core.Config, sessions session.Store, usrSvc *user.Service) *sessionAuth {
	return &sessionAuth{
		secretKey:    []byte(conf.SecretKey),
		issuer:       conf.AppName,
		cookieSecure: conf.Server.CookieSecure,
		sessions:     sessions,
		usrSvc:       usrSvc,
	}
}

func (a *sessionAuth) parseToken(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != signingMethod.Alg() {
			return nil, errors.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return a.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized
	}
	return claims, nil
}

// requestToken reads the session token from the cookie, falling back to the Authorization header.
func requestToken(ctx echo.Context) string {
	if cookie, err := ctx.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if auth := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(auth[len("Bearer "):])
	}
	return ""
}

// middleware rejects requests without a live session; the handler finds the user in the context.
func (a *sessionAuth) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		tokenStr := requestToken(ctx)
		if tokenStr == "" {
			return errUnauthorized
		}
		claims, err := a.parseToken(tokenStr)
		if err != nil {
			return err
		}

		sess, err := a.sessions.Resolve(ctx.Request().Context(), claims.Id)
		if err != nil {
			if core.IsNotFound(err) {
				return errUnauthorized
			}
			return errors.Wrap(err, "resolving session")
		}
		if strconv.Itoa(sess.UserID) != claims.Subject {
			return errUnauthorized
		}

		usr, err := a.usrSvc.GetByID(sess.UserID)
		if err != nil {
			if core.IsNotFound(err) {
				return errUnauthorized
			}
			return errors.Wrap(err, "finding user by ID")
		}

		ctx.Set(contextSessionKey, sess)
		ctx.Set(contextUserKey, usr)
		return next(ctx)
	}
}

// login opens a session for usr and sets the session cookie.
func (a *sessionAuth) login(ctx echo.Context, usr user.User) error {
	sess, err := a.sessions.Create(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	token, err := GenerateToken(string(a.secretKey), a.issuer, sess)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	ctx.SetCookie(a.cookie(token, 0))
	return nil
}

func (a *sessionAuth) logout(ctx echo.Context) error {
	if sess, ok := ctx.Get(contextSessionKey).(session.Session); ok {
		if err := a.sessions.Destroy(ctx.Request().Context(), sess.ID); err != nil {
			return errors.Wrap(err, "destroying session")
		}
	}
	ctx.SetCookie(a.cookie("", -1))
	return nil
}

func (a *sessionAuth) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	if maxAge < 0 {
		c.Expires = time.Unix(0, 0)
	}
	return c
}

func getContextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}
	return user.User{}, errUnauthorized
}
