package api

import (
	"net/http"

	"github.com/dekarrin/rosed"
)

const helpText = `symcalc API

POST /v1/sessions   {"username","password"} -> {"token"}
POST /v1/evaluate   {"expression"} -> {"result": <number>}
POST /v1/simplify   {"expression"} -> {"result": "<expression>"}
POST /v1/solve      {"equation","target"} -> {"result": "<equation>"}
GET  /v1/history        -> [ history record, ... ]
GET  /v1/history/{id}   -> history record

Every route other than POST /v1/sessions requires "Authorization: Bearer <token>".`

type helpResponse struct {
	Text string `json:"text"`
}

// handleHelp wraps helpText to 80 columns with rosed, the way
// internal/tunascript/parser.go and internal/game/debug.go wrap their
// own generated text before handing it to a client.
func (a *API) handleHelp(req *http.Request) result {
	wrapped := rosed.Edit(helpText).Wrap(80).String()
	return ok(helpResponse{Text: wrapped}, "served help text")
}
