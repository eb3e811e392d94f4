// Package creds generates the application credential. The password exists
// only in memory: it is applied to the new role and printed once, never
// written to disk or logged.
package creds

import (
	"fmt"

	"github.com/sethvargo/go-password/password"
)

const (
	// passwordLength matches what the application expects to receive from
	// the provisioning report.
	passwordLength = 24

	// passwordDigits guarantees some digit content inside the alphanumeric
	// alphabet without shrinking the effective character set.
	passwordDigits = 6
)

// Credential is the application login created on the provisioned host.
type Credential struct {
	Username string
	Database string
	Password string
}

// New generates a credential for the given role and database names. The
// password is 24 alphanumeric characters from a cryptographically secure
// source; symbols are excluded so the value survives copy-paste into
// connection strings and .env files unescaped.
func New(username, database string) (Credential, error) {
	pw, err := password.Generate(passwordLength, passwordDigits, 0, false, true)
	if err != nil {
		return Credential{}, fmt.Errorf("generate password: %w", err)
	}

	return Credential{
		Username: username,
		Database: database,
		Password: pw,
	}, nil
}
