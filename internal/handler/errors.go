package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/internal/logic"
	"mltrading-api/internal/resolver"
	"mltrading-api/internal/types"
)

const invalidSymbolDetail = "Invalid stock symbol. Use /api/stocks to see available stocks."

type badRequestError struct {
	err error
}

func (e *badRequestError) Error() string { return e.err.Error() }
func (e *badRequestError) Unwrap() error { return e.err }

// BadRequest marks err as a malformed request.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}
	return &badRequestError{err: err}
}

// ErrorHandler maps errors to a status code and a {"detail": ...} body.
// Register it with httpx.SetErrorHandlerCtx.
func ErrorHandler(ctx context.Context, err error) (int, any) {
	var bad *badRequestError
	switch {
	case errors.Is(err, resolver.ErrInvalidSymbol):
		return http.StatusBadRequest, types.ErrorResponse{Detail: invalidSymbolDetail}
	case errors.As(err, &bad):
		return http.StatusBadRequest, types.ErrorResponse{Detail: bad.Error()}
	case errors.Is(err, logic.ErrUnknownSector):
		return http.StatusNotFound, types.ErrorResponse{Detail: err.Error()}
	default:
		logx.WithContext(ctx).Errorf("request failed: %v", err)
		return http.StatusInternalServerError, types.ErrorResponse{Detail: "internal server error"}
	}
}
