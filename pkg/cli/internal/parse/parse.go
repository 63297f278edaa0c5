// Package parse provides string parsing utilities for CLI commands.
package parse

import "fmt"

// KeyValue parses a "key=value" string. If delimiters are provided, the
// first one found splits the string; otherwise '=' is used.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{'='}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Pairs parses repeated "key=value" arguments, keeping every value given for
// a key in argument order.
func Pairs(args []string) (map[string][]string, error) {
	values := make(map[string][]string, len(args))
	for _, arg := range args {
		key, value, ok := KeyValue(arg)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", arg)
		}
		values[key] = append(values[key], value)
	}
	return values, nil
}

// Last collapses repeated values to the last one given.
func Last(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, vs := range values {
		out[k] = vs[len(vs)-1]
	}
	return out
}
