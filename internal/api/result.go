package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// errorResponse is the JSON body written for any non-2xx response.
type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// result is the return type of every endpointFunc: a fully-formed HTTP
// response plus an internal-only message used for logging, mirroring
// server/result.Result's split between what the client sees and what
// the operator sees in logs.
type result struct {
	Status      int
	IsErr       bool
	InternalMsg string

	resp interface{}
	hdrs [][2]string

	respJSONBytes []byte
}

func (r result) withHeader(name, val string) result {
	r.hdrs = append(append([][2]string{}, r.hdrs...), [2]string{name, val})
	return r
}

func (r *result) prepareMarshaledResponse() error {
	if r.respJSONBytes != nil {
		return nil
	}
	if r.Status == http.StatusNoContent {
		return nil
	}
	var err error
	r.respJSONBytes, err = json.Marshal(r.resp)
	return err
}

func (r result) writeResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	if err := r.prepareMarshaledResponse(); err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.Status)
	if r.Status != http.StatusNoContent {
		w.Write(r.respJSONBytes)
	}
}

// response builds an internalMsgFmt-logged result carrying respObj.
func response(status int, respObj interface{}, internalMsg string, v ...interface{}) result {
	return result{
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        respObj,
	}
}

// errResult builds a result whose body is the standard errorResponse
// shape, with userMsg as the client-visible text.
func errResult(status int, userMsg, internalMsg string, v ...interface{}) result {
	return result{
		Status:      status,
		IsErr:       true,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        errorResponse{Error: userMsg, Status: status},
	}
}

func ok(respObj interface{}, internalMsg ...interface{}) result {
	msg, args := splitMsg(internalMsg, "OK")
	return response(http.StatusOK, respObj, msg, args...)
}

func created(respObj interface{}, internalMsg ...interface{}) result {
	msg, args := splitMsg(internalMsg, "created")
	return response(http.StatusCreated, respObj, msg, args...)
}

func badRequest(userMsg string, internalMsg ...interface{}) result {
	msg, args := splitMsg(internalMsg, "bad request")
	return errResult(http.StatusBadRequest, userMsg, msg, args...)
}

func notFound(internalMsg ...interface{}) result {
	msg, args := splitMsg(internalMsg, "not found")
	return errResult(http.StatusNotFound, "The requested resource was not found", msg, args...)
}

func unauthorized(userMsg string, internalMsg ...interface{}) result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}
	msg, args := splitMsg(internalMsg, "unauthorized")
	return errResult(http.StatusUnauthorized, userMsg, msg, args...).
		withHeader("WWW-Authenticate", `Bearer realm="symcalc"`)
}

func internalServerError(internalMsg ...interface{}) result {
	msg, args := splitMsg(internalMsg, "internal server error")
	return errResult(http.StatusInternalServerError, "An internal server error occurred", msg, args...)
}

func methodNotAllowed(req *http.Request, internalMsg ...interface{}) result {
	msg, args := splitMsg(internalMsg, "method not allowed")
	userMsg := fmt.Sprintf("Method %s is not allowed for %s", req.Method, req.URL.Path)
	return errResult(http.StatusMethodNotAllowed, userMsg, msg, args...)
}

// splitMsg pulls the optional (format, args...) pair apart the way
// server/result's functions do, falling back to def when none is given.
func splitMsg(internalMsg []interface{}, def string) (string, []interface{}) {
	if len(internalMsg) == 0 {
		return def, nil
	}
	return internalMsg[0].(string), internalMsg[1:]
}
