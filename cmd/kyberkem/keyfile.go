package main

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// KeyFile is the on-disk form of a key pair. SecretKey is omitted from
// files meant to be shared.
type KeyFile struct {
	Params    string `yaml:"params"`
	PublicKey string `yaml:"publicKey"`
	SecretKey string `yaml:"secretKey,omitempty"`
}

// EncapsulationFile holds a ciphertext and, for the encapsulating side, the
// shared secret it carries.
type EncapsulationFile struct {
	Params       string `yaml:"params"`
	Ciphertext   string `yaml:"ciphertext"`
	SharedSecret string `yaml:"sharedSecret,omitempty"`
}

// writeYAML encodes v to path, or to w when path is empty or "-".
func writeYAML(path string, w io.Writer, v interface{}) error {
	if path != "" && path != "-" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return errors.Wrap(err, "error opening output file")
		}
		defer file.Close()
		w = file
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "error encoding YAML")
	}
	return enc.Close()
}

func readYAML(path string, v interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "error opening %s", path)
	}
	defer file.Close()
	if err := yaml.NewDecoder(file).Decode(v); err != nil {
		return errors.Wrapf(err, "error parsing YAML file %s", path)
	}
	return nil
}

func decodeField(name, value string) ([]byte, error) {
	if value == "" {
		return nil, errors.Errorf("missing %s", name)
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", name)
	}
	return b, nil
}
