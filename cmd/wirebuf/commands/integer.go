// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/fixedint"
)

// int32Operators maps operator names to wrapping operations. Division
// and remainder are separate because they can fail.
var int32Operators = map[string]func(a, b fixedint.Int32) fixedint.Int32{
	"add": fixedint.Int32.Add,
	"sub": fixedint.Int32.Sub,
	"mul": fixedint.Int32.Mul,
	"and": fixedint.Int32.And,
	"or":  fixedint.Int32.Or,
	"xor": fixedint.Int32.Xor,
	"shl": fixedint.Int32.Shl,
	"shr": fixedint.Int32.Shr,
}

var int32Comparisons = map[string]func(a, b fixedint.Int32) bool{
	"eq": fixedint.Int32.Eq,
	"ne": fixedint.Int32.Ne,
	"lt": fixedint.Int32.Lt,
	"le": fixedint.Int32.Le,
	"gt": fixedint.Int32.Gt,
	"ge": fixedint.Int32.Ge,
}

func int32Command() *cli.Command {
	return &cli.Command{
		Name:    "int32",
		Summary: "Evaluate wrapping 32-bit integer expressions",
		Description: `Evaluate an int32 expression. Operands are decimal integers of
any size, wrapped modulo 2^32.

Arithmetic (add, sub, mul, div, mod), bitwise (and, or, xor, shl,
shr), and unary not print the result as signed, unsigned, and hex.
Shift counts use the low 5 bits; shr is logical. div and mod work on
unsigned magnitudes and fail on a zero divisor.

Comparisons (eq, ne, lt, le, gt, ge) print true or false and order
operands by their unsigned magnitude: -1 is greater than 1.`,
		Usage: "wirebuf int32 <a> [<op> <b>] | wirebuf int32 not <a>",
		Examples: []cli.Example{
			{
				Description: "Overflow wraps to the minimum",
				Command:     "wirebuf int32 2147483647 add 1",
			},
			{
				Description: "Large literals wrap on construction",
				Command:     "wirebuf int32 4294967297",
			},
		},
		Run: func(args []string) error {
			return evalInt32(os.Stdout, args)
		},
	}
}

func evalInt32(w io.Writer, args []string) error {
	switch {
	case len(args) == 1:
		value, err := parseInt32(args[0])
		if err != nil {
			return err
		}
		return writeInt32(w, value)

	case len(args) == 2 && args[0] == "not":
		value, err := parseInt32(args[1])
		if err != nil {
			return err
		}
		return writeInt32(w, value.Not())

	case len(args) == 3:
		a, err := parseInt32(args[0])
		if err != nil {
			return err
		}
		b, err := parseInt32(args[2])
		if err != nil {
			return err
		}
		return applyInt32(w, a, strings.ToLower(args[1]), b)

	default:
		return cli.Validation("expected <a>, not <a>, or <a> <op> <b>; got %d arguments", len(args))
	}
}

func applyInt32(w io.Writer, a fixedint.Int32, operator string, b fixedint.Int32) error {
	if operation, ok := int32Operators[operator]; ok {
		return writeInt32(w, operation(a, b))
	}
	if comparison, ok := int32Comparisons[operator]; ok {
		_, err := fmt.Fprintln(w, comparison(a, b))
		return err
	}

	var result fixedint.Int32
	var err error
	switch operator {
	case "div":
		result, err = a.Div(b)
	case "mod":
		result, err = a.Mod(b)
	default:
		return cli.Validation("unknown operator %q (want one of %s)", operator, strings.Join(operatorNames(), ", "))
	}
	if errors.Is(err, fixedint.ErrDivisionByZero) {
		return cli.Validation("%s %s %s: %w", a, operator, b, err)
	}
	if err != nil {
		return cli.Internal("%w", err)
	}
	return writeInt32(w, result)
}

func operatorNames() []string {
	names := []string{"div", "mod", "not"}
	for name := range int32Operators {
		names = append(names, name)
	}
	for name := range int32Comparisons {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func parseInt32(text string) (fixedint.Int32, error) {
	var value fixedint.Int32
	if err := value.UnmarshalText([]byte(text)); err != nil {
		return fixedint.Int32{}, cli.Validation("int32 operand: %w", err)
	}
	return value, nil
}

func writeInt32(w io.Writer, value fixedint.Int32) error {
	_, err := fmt.Fprintf(w, "%d (unsigned %d, hex 0x%08x)\n", value.Signed(), value.Unsigned(), value.Unsigned())
	return err
}

func int64Command() *cli.Command {
	return &cli.Command{
		Name:    "int64",
		Summary: "Show how a literal saturates into int64",
		Description: `Construct an int64 from a decimal literal of any size. Values
beyond the signed 64-bit range clamp to its nearest bound. Prints the
signed value and its unsigned reinterpretation.`,
		Usage: "wirebuf int64 <literal>...",
		Examples: []cli.Example{
			{
				Description: "Clamp a value past the maximum",
				Command:     "wirebuf int64 18446744073709551615",
			},
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return cli.Validation("int64 takes at least one literal")
			}
			return evalInt64(os.Stdout, args)
		},
	}
}

func evalInt64(w io.Writer, literals []string) error {
	for _, literal := range literals {
		value, err := fixedint.ParseInt64(literal)
		if err != nil {
			return cli.Validation("int64 literal: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%d (unsigned %d)\n", value.Signed(), value.Unsigned()); err != nil {
			return err
		}
	}
	return nil
}
