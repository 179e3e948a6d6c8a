package api

import (
	"net/http"

	"github.com/dekarrin/symcalc/internal/history"
	"github.com/dekarrin/symcalc/internal/symexpr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type evaluateRequest struct {
	Expression string `json:"expression"`
}

type evaluateResponse struct {
	Result float64 `json:"result"`
}

func (a *API) handleEvaluate(req *http.Request) result {
	var body evaluateRequest
	if err := parseJSON(req, &body); err != nil {
		return badRequest("could not read request", "%v", err)
	}
	if body.Expression == "" {
		return badRequest("expression must not be empty", "empty expression")
	}

	expr, err := symexpr.Parse(body.Expression)
	if err != nil {
		return badRequest(err.Error(), "parse failure: %v", err)
	}

	value, err := symexpr.EvaluateExpr(expr)
	if err != nil {
		return badRequest(err.Error(), "eval failure: %v", err)
	}
	if a.Precision > 0 {
		value = symexpr.Round(value, a.Precision)
	}

	a.record(req, history.KindEvaluate, body.Expression, "", expr, formatFloat(value), &value)
	return ok(evaluateResponse{Result: value}, "evaluated %q", body.Expression)
}

type simplifyRequest struct {
	Expression string `json:"expression"`
}

type simplifyResponse struct {
	Result string `json:"result"`
}

func (a *API) handleSimplify(req *http.Request) result {
	var body simplifyRequest
	if err := parseJSON(req, &body); err != nil {
		return badRequest("could not read request", "%v", err)
	}
	if body.Expression == "" {
		return badRequest("expression must not be empty", "empty expression")
	}

	expr, err := symexpr.Parse(body.Expression)
	if err != nil {
		return badRequest(err.Error(), "parse failure: %v", err)
	}

	simplified := symexpr.OptimizeExpression(expr, "")

	a.record(req, history.KindSimplify, body.Expression, "", simplified, simplified.String(), nil)
	return ok(simplifyResponse{Result: simplified.String()}, "simplified %q", body.Expression)
}

type solveRequest struct {
	Equation string `json:"equation"`
	Target   string `json:"target"`
}

type solveResponse struct {
	Result string `json:"result"`
}

func (a *API) handleSolve(req *http.Request) result {
	var body solveRequest
	if err := parseJSON(req, &body); err != nil {
		return badRequest("could not read request", "%v", err)
	}
	if body.Equation == "" {
		return badRequest("equation must not be empty", "empty equation")
	}
	if body.Target == "" {
		return badRequest("target must not be empty", "empty target")
	}

	expr, err := symexpr.ParseEquation(body.Equation)
	if err != nil {
		return badRequest(err.Error(), "parse failure: %v", err)
	}

	solved := symexpr.OptimizeEquation(expr, body.Target)

	a.record(req, history.KindSolve, body.Equation, body.Target, solved, solved.String(), nil)
	return ok(solveResponse{Result: solved.String()}, "solved %q for %q", body.Equation, body.Target)
}

type historyResponse struct {
	ID         string   `json:"id"`
	Kind       string   `json:"kind"`
	Input      string   `json:"input"`
	Target     string   `json:"target,omitempty"`
	ResultText string   `json:"result_text"`
	Result     *float64 `json:"result,omitempty"`
	Created    string   `json:"created"`
}

func recordToResponse(r history.Record) historyResponse {
	return historyResponse{
		ID:         r.ID.String(),
		Kind:       string(r.Kind),
		Input:      r.Input,
		Target:     r.Target,
		ResultText: r.ResultText,
		Result:     r.ResultValue,
		Created:    r.Created.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func (a *API) handleHistoryList(req *http.Request) result {
	all, err := a.History.GetAll(req.Context())
	if err != nil {
		return internalServerError("history lookup failed: %v", err)
	}

	out := make([]historyResponse, len(all))
	for i, r := range all {
		out[i] = recordToResponse(r)
	}
	return ok(out, "listed %d history records", len(out))
}

func (a *API) handleHistoryGet(req *http.Request) result {
	idStr := chi.URLParam(req, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return badRequest("id is not a valid identifier", "bad id %q: %v", idStr, err)
	}

	rec, err := a.History.GetByID(req.Context(), id)
	if err != nil {
		if err == history.ErrNotFound {
			return notFound("no history record %s", id)
		}
		return internalServerError("history lookup failed: %v", err)
	}

	return ok(recordToResponse(rec), "fetched history record %s", id)
}

// record stores a completed call in history. Any failure to record is
// logged but never fails the request — history is a convenience trail,
// never a dependency of the calculator itself.
func (a *API) record(req *http.Request, kind history.Kind, input, target string, expr symexpr.Expr, resultText string, resultValue *float64) {
	if a.History == nil {
		return
	}

	rec := history.Record{
		Kind:        kind,
		Input:       input,
		Target:      target,
		ResultText:  resultText,
		ResultValue: resultValue,
		AST:         history.EncodeAST(expr),
	}

	if _, err := a.History.Create(req.Context(), rec); err != nil {
		a.logger().Warn("could not record history for %q: %v", input, err)
	}
}

func formatFloat(v float64) string {
	return (&symexpr.Number{Value: v}).String()
}
