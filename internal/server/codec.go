package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	goahttp "goa.design/goa/v3/http"
	goamiddleware "goa.design/goa/v3/middleware"
	goa "goa.design/goa/v3/pkg"

	apperrors "lawfirm/pkg/errors"
)

// errorBody mirrors goa's error response shape with field level detail.
type errorBody struct {
	Name    string                 `json:"name"`
	ID      string                 `json:"id,omitempty"`
	Message string                 `json:"message"`
	Fields  []apperrors.FieldError `json:"fields,omitempty"`
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(goamiddleware.RequestIDKey).(string)
	return id
}

// decode reads the JSON body into v. An empty body is a missing payload.
func decode(r *http.Request, v any) error {
	err := goahttp.RequestDecoder(r).Decode(v)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return apperrors.Wrap(apperrors.ErrCodeBadRequest, goa.MissingPayloadError().Error(), err)
	}
	return apperrors.Wrap(apperrors.ErrCodeBadRequest, goa.DecodePayloadError(err.Error()).Error(), err)
}

func encode(w http.ResponseWriter, r *http.Request, status int, v any) {
	enc := goahttp.ResponseEncoder(r.Context(), w)
	w.WriteHeader(status)
	_ = enc.Encode(v)
}

func statusOf(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidation, apperrors.ErrCodeBadRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// encodeError writes err with the status of its code. Internal errors are
// logged and their detail is hidden from the client.
func (s *Server) encodeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(apperrors.ErrCodeInternalError, "internal server error", err)
	}

	status := statusOf(appErr.Code)
	body := errorBody{
		Name:    strings.ToLower(string(appErr.Code)),
		ID:      requestID(r.Context()),
		Message: appErr.Message,
		Fields:  appErr.Fields,
	}
	if status == http.StatusInternalServerError {
		s.log.Error().
			Err(err).
			Str("request_id", body.ID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		body.Message = "internal server error"
	}
	encode(w, r, status, body)
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		fieldErr := goa.InvalidFieldTypeError(name, raw, "positive integer")
		return 0, &apperrors.AppError{
			Code:    apperrors.ErrCodeBadRequest,
			Message: fieldErr.Error(),
			Fields:  []apperrors.FieldError{{Field: name, Message: fieldErr.Error()}},
			Err:     err,
		}
	}
	return uint(id), nil
}

func (s *Server) pathID(r *http.Request) (uint, error) {
	return parseID(s.mux.Vars(r)["id"], "id")
}
