package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration & Environment Errors
var (
	ErrConfigInvalid       = errors.New("configuration invalid")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

func NewConfigError(configName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("Configuration error for %s", configName),
		Cause:      cause,
	}
}

// NewEnvironmentVariableError reports a variable that is unset or holds an unusable value
func NewEnvironmentVariableError(varName, value string) *ApiErr {
	details := fmt.Sprintf("Environment variable %s is not set", varName)
	if value != "" {
		details = fmt.Sprintf("Environment variable %s has unsupported value %q", varName, value)
	}
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    details,
		Field:      varName,
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}

func IsEnvironmentVariableError(err error) bool {
	return errors.Is(err, ErrEnvironmentVariable)
}
