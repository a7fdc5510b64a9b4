package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate backs the scalar field validators. A single instance is safe
// for concurrent use, though resolution itself is sequential.
var validate = validator.New()

// ValidatePort accepts an empty value (use the engine default) or a TCP
// port number.
func ValidatePort(value string) error {
	if value == "" {
		return nil
	}
	port, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("port must be a number, got %q", value)
	}
	if err := validate.Var(port, "gte=1,lte=65535"); err != nil {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

// ValidateHost accepts an empty value, a hostname, or an IP address.
func ValidateHost(value string) error {
	if value == "" {
		return nil
	}
	if err := validate.Var(value, "hostname|ip"); err != nil {
		return fmt.Errorf("%q is not a valid hostname or address", value)
	}
	return nil
}

// ValidateHostPort accepts a cache node spec of the form host:port.
func ValidateHostPort(value string) error {
	if err := validate.Var(value, "hostname_port"); err != nil {
		return fmt.Errorf("%q is not a valid <host>:<port> node", value)
	}
	return nil
}

// ValidateName accepts a plain name with no path separators, usable as a
// database name or file name.
func ValidateName(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("a name is required")
	}
	if strings.ContainsAny(value, "/\\") {
		return fmt.Errorf("%q must not contain path separators", value)
	}
	return nil
}

// ValidateChoice builds a validator accepting only the given codes.
func ValidateChoice(choices []string) ValidateFunc {
	return func(value string) error {
		for _, c := range choices {
			if value == c {
				return nil
			}
		}
		return fmt.Errorf("%q is not one of %s", value, strings.Join(choices, ", "))
	}
}

// ValidateNumber accepts a non-negative integer.
func ValidateNumber(value string) error {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("%q is not a non-negative number", value)
	}
	return nil
}
