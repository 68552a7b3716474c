package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"strings"

	"github.com/bugsnag/bugsnag-go"
)

type Error struct {
	Status      int             `json:"status"`
	Code        int             `json:"code"`
	Description string          `json:"description"`
	Upstream    json.RawMessage `json:"upstream,omitempty"`
	trace       string
}

func (sessionError Error) Error() string {
	str, err := json.Marshal(sessionError)
	if err != nil {
		log.Panicln(err)
	}
	return string(str)
}

func ParseError(err string) (Error, bool) {
	var sessionErr Error
	json.Unmarshal([]byte(err), &sessionErr)
	return sessionErr, sessionErr.Code > 0 && sessionErr.Description != ""
}

func BadRequestError(ctx context.Context) Error {
	description := "The request body can't be parsed as valid data."
	return createError(ctx, http.StatusBadRequest, http.StatusBadRequest, description, nil)
}

func NotFoundError(ctx context.Context) Error {
	description := "The endpoint or resource is not found."
	return createError(ctx, http.StatusNotFound, http.StatusNotFound, description, nil)
}

func AuthorizationError(ctx context.Context) Error {
	description := "Unauthorized, maybe missing or invalid API key."
	return createError(ctx, http.StatusUnauthorized, http.StatusUnauthorized, description, nil)
}

func ForbiddenError(ctx context.Context) Error {
	description := "Forbidden, the API key doesn't own this resource."
	return createError(ctx, http.StatusForbidden, http.StatusForbidden, description, nil)
}

func ServerError(ctx context.Context, err error) Error {
	description := http.StatusText(http.StatusInternalServerError)
	return createError(ctx, http.StatusInternalServerError, http.StatusInternalServerError, description, err)
}

func InvalidTokenFormatError(ctx context.Context) Error {
	description := "Invalid Notion token, expected a secret_ or ntn_ prefix."
	return createError(ctx, http.StatusBadRequest, 20001, description, nil)
}

func IdentityVerificationError(ctx context.Context, status int) Error {
	description := fmt.Sprintf("Notion rejected the integration token with status %d.", status)
	return createError(ctx, http.StatusBadRequest, 20002, description, nil)
}

func InvalidPageIdError(ctx context.Context, id string) Error {
	description := fmt.Sprintf("Invalid page id %s, expected 32 hex characters or a dashed UUID.", id)
	return createError(ctx, http.StatusBadRequest, 20003, description, nil)
}

func PageNotInDatabaseError(ctx context.Context) Error {
	description := "The page is not a database row, its parent is not a database."
	return createError(ctx, http.StatusBadRequest, 20004, description, nil)
}

func NoCounterPropertyError(ctx context.Context, available []string) Error {
	description := fmt.Sprintf("No usable counter property on the page, available properties: %s.", strings.Join(available, ", "))
	return createError(ctx, http.StatusBadRequest, 20005, description, nil)
}

func DatabaseNotConfiguredError(ctx context.Context) Error {
	description := "No database id configured for this API key."
	return createError(ctx, http.StatusBadRequest, 20006, description, nil)
}

// UpstreamError relays a non-2xx Notion response with the original status
// and body.
func UpstreamError(ctx context.Context, status int, body []byte) Error {
	description := fmt.Sprintf("Notion API responded with status %d.", status)
	err := createError(ctx, status, 30001, description, nil)
	if json.Valid(body) {
		err.Upstream = json.RawMessage(body)
	} else if len(body) > 0 {
		raw, _ := json.Marshal(map[string]string{"error": string(body)})
		err.Upstream = json.RawMessage(raw)
	}
	return err
}

func UpstreamUnreachableError(ctx context.Context, cause error) Error {
	description := "The Notion API can't be reached."
	return createError(ctx, http.StatusInternalServerError, 30002, description, cause)
}

func createError(ctx context.Context, status, code int, description string, err error) Error {
	pc, file, line, _ := runtime.Caller(2)
	funcName := runtime.FuncForPC(pc).Name()
	trace := fmt.Sprintf("[ERROR %d] %s\n%s:%d", code, description, file, line)
	if err != nil {
		if sessionError, ok := err.(Error); ok {
			trace = trace + "\n" + sessionError.trace
		} else {
			trace = trace + "\n" + err.Error()
		}
	}

	if ctx != nil && status >= 500 {
		class := bugsnag.ErrorClass{Name: fmt.Sprintf("%s$%d", funcName, code)}
		rawData := []interface{}{bugsnag.SeverityError, class}
		meta := bugsnag.MetaData{}
		if addr := RemoteAddress(ctx); addr != "" {
			meta["request"] = map[string]interface{}{"remote_address": addr}
		}
		if r := Request(ctx); r != nil {
			rawData = append(rawData, r)
			if RequestBody(ctx) != "" {
				meta["body"] = map[string]interface{}{"data": RequestBody(ctx)}
			}
		}
		rawData = append(rawData, meta)
		bugsnag.Notify(errors.New(trace), rawData...)
	}
	if ctx != nil {
		if logger := Logger(ctx); logger != nil {
			logger.Error(trace)
		}
	}

	return Error{
		Status:      status,
		Code:        code,
		Description: description,
		trace:       trace,
	}
}
