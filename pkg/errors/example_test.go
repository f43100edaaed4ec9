// Package errors provides examples of structured error handling in sprigconfig.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/sprigconfig/sprigconfig/pkg/errors"
)

// Example demonstrates basic error creation with context details.
func Example() {
	err := errors.New(errors.ErrorTypeMissingFile, "base document application.yml not found")

	err = err.WithDetail("dir", "/etc/myapp/config").
		WithDetail("profile", "dev")

	fmt.Println(err.Error())

	// Output:
	// missing_file: base document application.yml not found
}

// ExampleWrap shows how to wrap underlying errors with loader context.
func ExampleWrap() {
	originalErr := io.ErrUnexpectedEOF

	err := errors.Wrap(originalErr, errors.ErrorTypeParse, "parsing imported document").
		WithDetail("path", "imports/defaults.yml")

	if errors.IsType(err, errors.ErrorTypeParse) {
		fmt.Println("This is a parse error")
	}

	// The cause stays reachable through Go's standard errors.Is
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		fmt.Println("Original error was unexpected EOF")
	}

	// Output:
	// This is a parse error
	// Original error was unexpected EOF
}

// ExampleIsType demonstrates type checks across wrapping.
func ExampleIsType() {
	cycleErr := errors.New(errors.ErrorTypeCircularImport, "circular import detected")
	secretErr := errors.New(errors.ErrorTypeSecret, "no secret key available")

	wrappedErr := errors.Wrap(cycleErr, errors.ErrorTypeConfig, "loading configuration")

	fmt.Printf("Is circular import: %v\n", errors.IsType(cycleErr, errors.ErrorTypeCircularImport))
	fmt.Printf("Is secret error: %v\n", errors.IsType(secretErr, errors.ErrorTypeSecret))

	// IsType reports the outermost structured error's type
	fmt.Printf("Wrapped error is config type: %v\n", errors.IsType(wrappedErr, errors.ErrorTypeConfig))

	// Output:
	// Is circular import: true
	// Is secret error: true
	// Wrapped error is config type: true
}

// ExampleTypeOf shows branching on the error category.
func ExampleTypeOf() {
	err := errors.New(errors.ErrorTypeMissingProfile, "profile \"prod\" is guarded")

	switch errors.TypeOf(err) {
	case errors.ErrorTypeMissingProfile:
		fmt.Println("guarded profile has no overlay document")
	case errors.ErrorTypePathEscape:
		fmt.Println("import escaped the configuration root")
	default:
		fmt.Println("unexpected failure")
	}

	// Output:
	// guarded profile has no overlay document
}

// Example_details demonstrates reading structured details off an error.
func Example_details() {
	err := errors.New(errors.ErrorTypePathEscape, "import resolves outside configuration root").
		WithDetail("import", "../outside").
		WithDetail("root", "/etc/myapp/config")

	fmt.Println(err.Error())
	fmt.Printf("import: %v\n", err.Details["import"])
	fmt.Printf("root: %v\n", err.Details["root"])

	// Output:
	// path_escape: import resolves outside configuration root
	// import: ../outside
	// root: /etc/myapp/config
}
