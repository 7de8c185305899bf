package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups the app's secrets in the OS keychain.
	KeyringService = "leadscout"

	// TokenAccount holds the scraping-platform API token.
	TokenAccount = "leadscout:actor-token"

	// EnvToken overrides the keychain, mostly for headless deployments.
	EnvToken = "LEADSCOUT_ACTOR_TOKEN"
)

// GetActorToken resolves the platform API token: environment first, then
// the OS keychain.
func GetActorToken() (string, error) {
	if tok := strings.TrimSpace(os.Getenv(EnvToken)); tok != "" {
		return tok, nil
	}

	tok, err := keyring.Get(KeyringService, TokenAccount)
	if err == nil && strings.TrimSpace(tok) != "" {
		return tok, nil
	}

	return "", errors.New("actor token not found (set it in keychain or via " + EnvToken + ")")
}

func SetActorToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, TokenAccount, token)
}

func DeleteActorToken() error {
	return keyring.Delete(KeyringService, TokenAccount)
}
