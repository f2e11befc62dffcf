// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/wirebuf/cmd/wirebuf/cli"
	"github.com/bureau-foundation/wirebuf/lib/fixedint"
)

func TestEvalInt32(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"2147483647", "add", "1"}, "-2147483648 (unsigned 2147483648, hex 0x80000000)"},
		{[]string{"0", "sub", "1"}, "-1 (unsigned 4294967295, hex 0xffffffff)"},
		{[]string{"65536", "MUL", "65536"}, "0 (unsigned 0, hex 0x00000000)"},
		{[]string{"-1", "div", "2"}, "2147483647 (unsigned 2147483647, hex 0x7fffffff)"},
		{[]string{"7", "mod", "3"}, "1 (unsigned 1, hex 0x00000001)"},
		{[]string{"12", "and", "10"}, "8 (unsigned 8, hex 0x00000008)"},
		{[]string{"12", "or", "10"}, "14 (unsigned 14, hex 0x0000000e)"},
		{[]string{"12", "xor", "10"}, "6 (unsigned 6, hex 0x00000006)"},
		{[]string{"1", "shl", "33"}, "2 (unsigned 2, hex 0x00000002)"},
		{[]string{"-1", "shr", "28"}, "15 (unsigned 15, hex 0x0000000f)"},
		{[]string{"not", "0"}, "-1 (unsigned 4294967295, hex 0xffffffff)"},
		{[]string{"4294967297"}, "1 (unsigned 1, hex 0x00000001)"},
		{[]string{"-1", "gt", "1"}, "true"},
		{[]string{"1", "lt", "-1"}, "true"},
		{[]string{"4294967296", "eq", "0"}, "true"},
		{[]string{"5", "ne", "5"}, "false"},
		{[]string{"5", "le", "5"}, "true"},
		{[]string{"4", "ge", "5"}, "false"},
	}

	for _, test := range tests {
		t.Run(strings.Join(test.args, " "), func(t *testing.T) {
			var output bytes.Buffer
			if err := evalInt32(&output, test.args); err != nil {
				t.Fatalf("evalInt32: %v", err)
			}
			if got := strings.TrimSpace(output.String()); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestEvalInt32Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"no arguments", nil, nil},
		{"four arguments", []string{"1", "add", "2", "3"}, nil},
		{"unknown operator", []string{"1", "pow", "2"}, nil},
		{"bad operand", []string{"1.5", "add", "2"}, fixedint.ErrSyntax},
		{"division by zero", []string{"1", "div", "4294967296"}, fixedint.ErrDivisionByZero},
		{"remainder by zero", []string{"1", "mod", "0"}, fixedint.ErrDivisionByZero},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := evalInt32(&bytes.Buffer{}, test.args)
			var toolError *cli.ToolError
			if !errors.As(err, &toolError) || toolError.Category != cli.CategoryValidation {
				t.Fatalf("evalInt32(%q) = %v, want validation error", test.args, err)
			}
			if test.is != nil && !errors.Is(err, test.is) {
				t.Errorf("error %v does not wrap %v", err, test.is)
			}
		})
	}
}

func TestOperatorNames(t *testing.T) {
	names := operatorNames()
	if len(names) != len(int32Operators)+len(int32Comparisons)+3 {
		t.Errorf("operatorNames() = %q", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q", names)
		}
	}
}

func TestEvalInt64(t *testing.T) {
	var output bytes.Buffer
	err := evalInt64(&output, []string{
		"18446744073709551615",
		"-99999999999999999999",
		"-1",
	})
	if err != nil {
		t.Fatalf("evalInt64: %v", err)
	}
	want := "9223372036854775807 (unsigned 9223372036854775807)\n" +
		"-9223372036854775808 (unsigned 9223372036854775808)\n" +
		"-1 (unsigned 18446744073709551615)\n"
	if output.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", output.String(), want)
	}

	err = evalInt64(&bytes.Buffer{}, []string{"twelve"})
	if !errors.Is(err, fixedint.ErrSyntax) {
		t.Errorf("bad literal error = %v", err)
	}
}
