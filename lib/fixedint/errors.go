// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fixedint

import "errors"

var (
	// ErrDivisionByZero is returned by [Int32.Div] and [Int32.Mod] when
	// the divisor's magnitude is zero.
	ErrDivisionByZero = errors.New("fixedint: division by zero")

	// ErrTypeMismatch is returned when a constructor or decoder receives
	// an input that is not one of the accepted representations.
	ErrTypeMismatch = errors.New("fixedint: unsupported input type")

	// ErrSyntax is returned when a string input is not a decimal integer.
	ErrSyntax = errors.New("fixedint: invalid decimal integer")
)
