// Package fizzbuzz holds the FizzBuzz rule and the predicate used to judge
// answers returned by the fizzBuzz API command.
package fizzbuzz

import (
	"strconv"
	"strings"
)

// Canonical lowercase answers.
const (
	Fizz     = "fizz"
	Buzz     = "buzz"
	FizzBuzz = "fizzbuzz"
)

// Verify reports whether response is an acceptable FizzBuzz answer for number.
// The response must already be lowercased.
//
// For numbers divisible by neither 3 nor 5 any string of decimal digits is
// accepted; the digits are not compared to number. The API answers those
// inputs with a random number, so only the shape can be checked.
func Verify(number int, response string) bool {
	switch {
	case number%15 == 0:
		return response == FizzBuzz
	case number%3 == 0:
		return response == Fizz
	case number%5 == 0:
		return response == Buzz
	default:
		return IsAllDigits(response)
	}
}

// Answer returns the canonical answer for n.
func Answer(n int) string {
	switch {
	case n%15 == 0:
		return FizzBuzz
	case n%3 == 0:
		return Fizz
	case n%5 == 0:
		return Buzz
	default:
		return strconv.Itoa(n)
	}
}

// IsAllDigits reports whether s is non-empty and made only of ASCII digits.
func IsAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// TryParseInt parses s as a base-10 integer, ignoring surrounding whitespace.
// ok is false when s is not an integer.
func TryParseInt(s string) (n int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
