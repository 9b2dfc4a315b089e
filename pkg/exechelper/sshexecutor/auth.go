package sshexecutor

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"
)

// PasswordAuth logs in with a password. Servers that only offer
// keyboard-interactive get the password as the answer to every prompt.
func PasswordAuth(password string) []ssh.AuthMethod {
	return []ssh.AuthMethod{
		ssh.Password(password),
		ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
			answers := make([]string, len(questions))
			for i := range answers {
				answers[i] = password
			}
			return answers, nil
		}),
	}
}

// KeyFileAuth logs in with the private key stored at path
func KeyFileAuth(path string) ([]ssh.AuthMethod, error) {
	pemBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read ssh key")
	}

	signer, err := ssh.ParsePrivateKey(pemBytes)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, errors.Errorf("ssh key %s is protected by a passphrase, which is not supported", path)
		}
		return nil, errors.Wrapf(err, "failed to parse ssh key %s", path)
	}
	return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
}
