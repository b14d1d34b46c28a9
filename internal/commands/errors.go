package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	validationFailedCode = "COMMAND_VALIDATION_FAILED"
	contextCanceledCode  = "COMMAND_CONTEXT_CANCELED"
	contextTimeoutCode   = "COMMAND_CONTEXT_TIMEOUT"
	executionFailedCode  = "COMMAND_EXECUTION_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(validationFailedCode)
}

func wrapContextError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(contextTimeoutCode)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
		WithTextCode(contextCanceledCode)
}

func wrapExecuteError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(executionFailedCode)
}
