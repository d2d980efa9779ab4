package auth

import (
	"os"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name credentials are stored under in the OS
// secret store.
const KeyringService = "gurkerlcli"

const (
	emailEnvVar    = "GURKERL_EMAIL"
	passwordEnvVar = "GURKERL_PASSWORD"
)

// CredentialResolver is one strategy for recovering a stored password.
// Strategies fail silently so the chain can keep going.
type CredentialResolver interface {
	Resolve(email string) (string, bool)
}

// ResolverChain tries each strategy in order, first hit wins.
type ResolverChain []CredentialResolver

func (c ResolverChain) Resolve(email string) (string, bool) {
	for _, resolver := range c {
		if password, ok := resolver.Resolve(email); ok {
			return password, true
		}
	}
	return "", false
}

// DefaultResolverChain is the production lookup order: OS secret store, then
// the matching env pair (a .env file is loaded into the environment at
// startup), then any password variable as a last resort.
func DefaultResolverChain() ResolverChain {
	return ResolverChain{
		KeyringResolver{Service: KeyringService},
		EnvPairResolver{EmailVar: emailEnvVar, PasswordVar: passwordEnvVar},
		EnvPasswordResolver{PasswordVar: passwordEnvVar},
	}
}

// KeyringResolver reads the password from the OS secret store. An unavailable
// backend (headless Linux, CI) is treated as a miss.
type KeyringResolver struct {
	Service string
}

func (r KeyringResolver) Resolve(email string) (string, bool) {
	password, err := keyring.Get(r.Service, email)
	if err != nil || password == "" {
		return "", false
	}
	return password, true
}

// EnvPairResolver matches the env email against the requested one before
// handing out the env password.
type EnvPairResolver struct {
	EmailVar    string
	PasswordVar string
}

func (r EnvPairResolver) Resolve(email string) (string, bool) {
	if os.Getenv(r.EmailVar) != email {
		return "", false
	}
	password := os.Getenv(r.PasswordVar)
	return password, password != ""
}

// EnvPasswordResolver returns the env password for any email.
type EnvPasswordResolver struct {
	PasswordVar string
}

func (r EnvPasswordResolver) Resolve(string) (string, bool) {
	password := os.Getenv(r.PasswordVar)
	return password, password != ""
}
