/* utils.go
 * Utility functions used across the application
 */

package main

import (
	"fmt"
	"strings"

	"scorecast/api/shared"
)

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// parseMode converts a mode flag value into an operating mode
// Preconditions: Receives string containing either default or demo (case insensitive)
// Postconditions: Returns the mode or an error if the string names no known mode
func parseMode(str string) (shared.Mode, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	switch str {
	case string(shared.ModeDefault):
		return shared.ModeDefault, nil
	case string(shared.ModeDemo):
		return shared.ModeDemo, nil
	}
	return "", fmt.Errorf("invalid mode %q, expected default or demo", str)
}
