package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ctxKey is a private type for context keys this package sets, the
// same guard server/token.go uses for its AuthKey.
type ctxKey int

const ctxUser ctxKey = iota

const jwtIssuer = "symcalc"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (a *API) handleLogin(req *http.Request) result {
	var body loginRequest
	if err := parseJSON(req, &body); err != nil {
		return badRequest("could not read request", "%v", err)
	}

	if body.Username == "" || body.Username != a.OperatorUser {
		return unauthorized("", "unknown user %q", body.Username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.OperatorPasswordHash), []byte(body.Password)); err != nil {
		return unauthorized("", "bad password for %q: %v", body.Username, err)
	}

	tok, err := a.generateJWT()
	if err != nil {
		return internalServerError("could not sign token: %v", err)
	}

	return ok(loginResponse{Token: tok}, "login ok for %q", body.Username)
}

// generateJWT signs a token whose subject is the operator user and
// whose key material is bound to the configured password hash, so
// rotating OperatorPasswordHash invalidates every outstanding token
// the same way server/token.go binds a token to LastLogoutTime.
func (a *API) generateJWT() (string, error) {
	claims := jwt.MapClaims{
		"iss": jwtIssuer,
		"sub": a.OperatorUser,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(a.signKey())
}

func (a *API) signKey() []byte {
	key := make([]byte, 0, len(a.Secret)+len(a.OperatorPasswordHash))
	key = append(key, a.Secret...)
	key = append(key, []byte(a.OperatorPasswordHash)...)
	return key
}

func getBearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no Authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(strings.TrimSpace(parts[0])) != "bearer" {
		return "", fmt.Errorf("Authorization header is not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}

// requireAuth is chi middleware gating every route mounted below it on
// a valid bearer token, mirroring server/token.go's AuthHandler with
// required always true (symcalc has no anonymous-but-logged-in mode).
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok, err := getBearerToken(req)
		if err != nil {
			time.Sleep(a.UnauthDelay)
			unauthorized("", "%v", err).writeResponse(w)
			return
		}

		user, err := a.validateJWT(tok)
		if err != nil {
			time.Sleep(a.UnauthDelay)
			unauthorized("", "token validation failed: %v", err).writeResponse(w)
			return
		}

		ctx := context.WithValue(req.Context(), ctxUser, user)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (a *API) validateJWT(tok string) (string, error) {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return a.signKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer(jwtIssuer), jwt.WithLeeway(time.Minute))
	if err != nil {
		return "", err
	}

	subj, err := parsed.Claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("cannot get subject: %w", err)
	}
	if subj != a.OperatorUser {
		return "", fmt.Errorf("unknown subject %q", subj)
	}
	return subj, nil
}

// HashPassword bcrypt-hashes password for storage as
// config.Config.OperatorPasswordHash, mirroring server/tunas's own use
// of bcrypt for user passwords.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
