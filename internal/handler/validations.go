package handler

import (
	"errors"
	"regexp"
)

var (
	errInvalidCode = errors.New("code must be present, must be upto 512 characters and must not contain unsafe characters")
)

var authCodeRegex = regexp.MustCompile(`^[a-zA-Z0-9._~/-]+$`)

// validateAuthCode validates the authorization code received on the callback route.
func validateAuthCode(code string) error {
	if len(code) == 0 || len(code) > 512 {
		return errInvalidCode
	}

	if !authCodeRegex.MatchString(code) {
		return errInvalidCode
	}

	return nil
}
