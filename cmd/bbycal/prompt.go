package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

const (
	yearPrompt  = "Enter the Year (e.g., 2025): "
	monthPrompt = "Enter Month Number (1-12) which you want to generate: "

	msgInvalidMonth   = "Please enter a valid month (1-12)"
	msgInvalidNumbers = "Please enter valid numbers for year and month"
)

// InputError is a user input problem that is reported without failing the command
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// resolveYearMonth takes year and month from positional args, then flags,
// and prompts on in for whatever is still missing.
func resolveYearMonth(in io.Reader, out io.Writer, args []string, opts *generateOptions) (int, time.Month, error) {
	yearStr, monthStr := opts.year, opts.month
	if len(args) > 0 {
		yearStr = args[0]
	}
	if len(args) > 1 {
		monthStr = args[1]
	}

	reader := bufio.NewReader(in)
	var err error
	if yearStr == "" {
		if yearStr, err = prompt(reader, out, yearPrompt); err != nil {
			return 0, 0, err
		}
	}

	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return 0, 0, &InputError{Message: msgInvalidNumbers, Err: err}
	}

	if monthStr == "" {
		if monthStr, err = prompt(reader, out, monthPrompt); err != nil {
			return 0, 0, err
		}
	}

	month, err := strconv.Atoi(strings.TrimSpace(monthStr))
	if err != nil {
		return 0, 0, &InputError{Message: msgInvalidNumbers, Err: err}
	}
	if month < 1 || month > 12 {
		return 0, 0, &InputError{Message: msgInvalidMonth}
	}

	return year, time.Month(month), nil
}

func prompt(reader *bufio.Reader, out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", &InputError{Message: msgInvalidNumbers, Err: err}
	}

	return strings.TrimSpace(line), nil
}
