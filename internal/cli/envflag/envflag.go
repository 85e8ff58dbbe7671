// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package envflag allows flags of a [flag.FlagSet] to be overridden by
// environment variables.
package envflag

import (
	"errors"
	"flag"
	"fmt"
	"strings"
)

// ErrInvalidValue is returned by [Apply] when an environment variable holds a
// value that the corresponding flag does not accept.
var ErrInvalidValue = errors.New("invalid environment variable value")

// Name returns the environment variable name for the flag with the given name:
// prefix followed by the flag name in upper case, with dashes replaced by
// underscores.
func Name(prefix, flagName string) string {
	return prefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// Apply sets every flag defined in fs from its environment variable (see
// [Name]), if that variable is set and non-empty, and notes the variable in
// the flag usage. Single-letter flags are assumed to be aliases and are
// skipped.
//
// A flag whose variable holds an invalid value is reset to its default and
// reported in the returned error.
//
// Apply must be called before fs.Parse, so that command-line arguments take
// precedence over the environment.
func Apply(fs *flag.FlagSet, prefix string, getenv func(string) string) error {
	var errs []error
	fs.VisitAll(func(f *flag.Flag) {
		if len(f.Name) == 1 {
			return
		}
		envName := Name(prefix, f.Name)
		f.Usage += " Can be overridden by " + envName + " environment variable."

		val := getenv(envName)
		if val == "" {
			return
		}
		if err := fs.Set(f.Name, val); err != nil {
			// A failed Set may have clobbered the value.
			f.Value.Set(f.DefValue)
			errs = append(errs, fmt.Errorf("%w %s=%q: %v", ErrInvalidValue, envName, val, err))
		}
	})
	return errors.Join(errs...)
}
