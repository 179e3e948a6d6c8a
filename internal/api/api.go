// Package api is symcalc's HTTP surface: stateless evaluate/simplify/
// solve endpoints plus an optional history trail, gated by a bearer
// token issued against a single configured operator credential.
// Grounded on server/api/api.go's endpointFunc/httpEndpoint wrapping
// and server/result's status-coded Result type, generalized from a
// multi-user game session API to a single-operator calculator API.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/symcalc/internal/apierr"
	"github.com/dekarrin/symcalc/internal/applog"
	"github.com/dekarrin/symcalc/internal/history"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// API holds the dependencies every endpoint needs and builds the
// routed http.Handler for a symcalc server.
type API struct {
	// History persists evaluate/simplify/solve calls. May be nil, in
	// which case history-related endpoints are not mounted.
	History history.Store

	// Secret signs and validates issued JWTs.
	Secret []byte

	// OperatorUser and OperatorPasswordHash are the single login
	// credential accepted by POST /v1/sessions.
	OperatorUser         string
	OperatorPasswordHash string

	// Precision is the number of decimal places results are rounded
	// to; 0 means use internal/symexpr's own default.
	Precision int

	// UnauthDelay is slept before responding to any request that ends
	// in HTTP-401, HTTP-403, or HTTP-500, to deprioritize abusive or
	// broken clients the way server's AuthHandler does.
	UnauthDelay time.Duration

	Log *applog.Logger
}

func (a *API) logger() *applog.Logger {
	if a.Log == nil {
		return applog.Default()
	}
	return a.Log
}

// Router builds the routed handler for this API: session login is
// open, everything else requires a valid bearer token.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	r.Post("/v1/sessions", a.wrap(a.handleLogin))

	r.Group(func(r chi.Router) {
		r.Use(a.requireAuth)
		r.Post("/v1/evaluate", a.wrap(a.handleEvaluate))
		r.Post("/v1/simplify", a.wrap(a.handleSimplify))
		r.Post("/v1/solve", a.wrap(a.handleSolve))
		r.Get("/v1/help", a.wrap(a.handleHelp))

		if a.History != nil {
			r.Get("/v1/history", a.wrap(a.handleHistoryList))
			r.Get("/v1/history/{id}", a.wrap(a.handleHistoryGet))
		}
	})

	r.NotFound(a.wrap(func(req *http.Request) result {
		return notFound("no route for %s %s", req.Method, req.URL.Path)
	}))
	r.MethodNotAllowed(a.wrap(func(req *http.Request) result {
		return methodNotAllowed(req)
	}))

	return r
}

// endpointFunc is the signature every route handler implements: parse
// the request, do the work, and return the result to be written. All
// error handling funnels through the returned result so wrap can log
// and apply UnauthDelay uniformly.
type endpointFunc func(req *http.Request) result

func (a *API) wrap(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer a.panicTo500(w, req)

		r := ep(req)
		if r.Status == 0 {
			a.logger().Error("%s %s: endpoint result was never populated", req.Method, req.URL.Path)
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		if r.IsErr {
			a.logger().Warn("%s %s -> %d: %s", req.Method, req.URL.Path, r.Status, r.InternalMsg)
		} else {
			a.logger().Info("%s %s -> %d: %s", req.Method, req.URL.Path, r.Status, r.InternalMsg)
		}

		if r.Status == http.StatusUnauthorized || r.Status == http.StatusForbidden || r.Status == http.StatusInternalServerError {
			time.Sleep(a.UnauthDelay)
		}

		r.writeResponse(w)
	}
}

func (a *API) panicTo500(w http.ResponseWriter, req *http.Request) {
	if panicErr := recover(); panicErr != nil {
		a.logger().Error("%s %s: panic: %v\n%s", req.Method, req.URL.Path, panicErr, debug.Stack())
		time.Sleep(a.UnauthDelay)
		internalServerError("panic: %v", panicErr).writeResponse(w)
	}
}

// parseJSON decodes req's JSON body into v, which must be a pointer.
// Returns an apierr.Error matching apierr.ErrBodyUnmarshal if the body
// is not well-formed JSON, the same distinction server/api/api.go's
// parseJSON draws for serr.ErrBodyUnmarshal.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])); ct != "application/json" {
		return apierr.New(fmt.Sprintf("request content-type %q is not application/json", contentType), apierr.ErrBadArgument)
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return apierr.New("malformed JSON in request", err, apierr.ErrBodyUnmarshal)
	}
	return nil
}
