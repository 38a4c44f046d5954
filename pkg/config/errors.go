package config

import (
	"errors"
	"fmt"
)

// ErrConfigValidation is returned when the configuration has at least one
// invalid field. The individual problems are logged.
var ErrConfigValidation = errors.New("validation of configuration failed")

// ErrSecretRequired is returned when a suite demands the shared secret but
// none of the known environment variables is set. The run aborts before
// any request is sent.
type ErrSecretRequired struct {
	Suite string
}

func (e ErrSecretRequired) Error() string {
	return fmt.Sprintf("suite %q requires a shared secret; set one of %v", e.Suite, SecretEnvVars)
}
