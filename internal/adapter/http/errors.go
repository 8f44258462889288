package http

import (
	"errors"
	"net/http"

	domainChain "grants-approval-engine/internal/domain/chain"
	domainRequest "grants-approval-engine/internal/domain/request"
)

// Machine-readable codes so UIs can distinguish "someone already acted"
// (conflict, non-alarming) from genuine failures.
const (
	codeUnknownChainType = "unknown_chain_type"
	codeNoStepsDefined   = "no_steps_defined"
	codeInvalidChain     = "invalid_chain"
	codeInvalidBracket   = "invalid_bracket"
	codeRequestNotFound  = "request_not_found"
	codeAlreadyTerminal  = "request_already_terminal"
	codeStepMismatch     = "step_mismatch"
	codeUnauthorized     = "unauthorized_role"
	codeInternal         = "internal"
)

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domainChain.ErrUnknownChainType):
		return http.StatusNotFound, codeUnknownChainType
	case errors.Is(err, domainChain.ErrNoStepsDefined):
		return http.StatusUnprocessableEntity, codeNoStepsDefined
	case errors.Is(err, domainChain.ErrInvalidChain):
		return http.StatusUnprocessableEntity, codeInvalidChain
	case errors.Is(err, domainChain.ErrInvalidBracket):
		return http.StatusUnprocessableEntity, codeInvalidBracket
	case errors.Is(err, domainRequest.ErrNotFound):
		return http.StatusNotFound, codeRequestNotFound
	case errors.Is(err, domainRequest.ErrAlreadyTerminal):
		return http.StatusConflict, codeAlreadyTerminal
	case errors.Is(err, domainRequest.ErrStepMismatch):
		return http.StatusConflict, codeStepMismatch
	case errors.Is(err, domainRequest.ErrUnauthorized):
		return http.StatusForbidden, codeUnauthorized
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func errorJSON(err error) (int, ErrorResponse) {
	status, code := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	return status, ErrorResponse{Error: msg, Code: code}
}
