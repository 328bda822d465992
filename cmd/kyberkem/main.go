// Command kyberkem generates key pairs, encapsulates and decapsulates shared
// secrets, and runs round-trip self tests from the command line.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"latticekem/pkg/hash"
	"latticekem/pkg/kem"
)

const (
	paramsFlag     = "params"
	seedFlag       = "seed"
	debugFlag      = "debug"
	outFlag        = "out"
	publicOutFlag  = "public-out"
	keyFlag        = "key"
	ciphertextFlag = "ciphertext"
	trialsFlag     = "trials"

	defaultParams = "kyber768"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	app := &cli.App{}
	app.Name = "kyberkem"
	app.Usage = "Module-lattice key encapsulation"
	app.UsageText = "kyberkem [global options] command [command options]"
	app.Writer = out
	app.ErrWriter = errOut
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    paramsFlag,
			Aliases: []string{"p"},
			Value:   defaultParams,
			Usage:   "Parameter set used by keygen and selftest",
			EnvVars: []string{"KYBERKEM_PARAMS"},
		},
		&cli.StringFlag{
			Name:  seedFlag,
			Usage: "Derive all randomness from this seed. For reproducible test output only.",
		},
		&cli.BoolFlag{
			Name:  debugFlag,
			Usage: "Enable debug logging",
		},
	}
	app.Commands = commands()
	return app
}

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "keygen",
			Usage:  "Generate a key pair",
			Action: keygen,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    outFlag,
					Aliases: []string{"o"},
					Usage:   "Write the key pair to this file instead of stdout",
				},
				&cli.StringFlag{
					Name:  publicOutFlag,
					Usage: "Also write the public key alone to this file",
				},
			},
		},
		{
			Name:   "encaps",
			Usage:  "Encapsulate a fresh shared secret to a public key",
			Action: encaps,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     keyFlag,
					Aliases:  []string{"k"},
					Usage:    "Key file holding the recipient's public key",
					Required: true,
				},
				&cli.StringFlag{
					Name:    outFlag,
					Aliases: []string{"o"},
					Usage:   "Write the ciphertext and shared secret to this file instead of stdout",
				},
			},
		},
		{
			Name:   "decaps",
			Usage:  "Recover the shared secret from a ciphertext",
			Action: decaps,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     keyFlag,
					Aliases:  []string{"k"},
					Usage:    "Key file holding the secret key",
					Required: true,
				},
				&cli.StringFlag{
					Name:     ciphertextFlag,
					Aliases:  []string{"c"},
					Usage:    "File written by encaps",
					Required: true,
				},
			},
		},
		{
			Name:   "selftest",
			Usage:  "Run key generation, encapsulation and decapsulation round trips",
			Action: selftest,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  trialsFlag,
					Value: 100,
					Usage: "Number of round trips",
				},
			},
		},
		{
			Name:   "params",
			Usage:  "List parameter sets and their sizes",
			Action: listParams,
		},
	}
}

func newLogger(c *cli.Context) *zerolog.Logger {
	level := zerolog.InfoLevel
	if c.Bool(debugFlag) {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        c.App.ErrWriter,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
	return &log
}

func newScheme(c *cli.Context, log *zerolog.Logger, name string) (*kem.Scheme, error) {
	p, err := kem.ParamsByName(name)
	if err != nil {
		return nil, err
	}
	opts := []kem.Option{kem.WithLogger(log)}
	if seed := c.String(seedFlag); seed != "" {
		log.Warn().Msg("Using deterministic randomness; keys are not secret")
		opts = append(opts, kem.WithRand(hash.NewDeterministicReader([]byte(seed))))
	}
	return kem.New(p, opts...)
}

func keygen(c *cli.Context) error {
	log := newLogger(c)
	s, err := newScheme(c, log, c.String(paramsFlag))
	if err != nil {
		return err
	}
	kp, err := s.GenerateKey()
	if err != nil {
		return err
	}

	kf := KeyFile{
		Params:    s.Params().Name,
		PublicKey: hex.EncodeToString(kp.PublicKey()),
		SecretKey: hex.EncodeToString(kp.SecretKey()),
	}
	if err := writeYAML(c.String(outFlag), c.App.Writer, &kf); err != nil {
		return err
	}
	if path := c.String(publicOutFlag); path != "" {
		kf.SecretKey = ""
		if err := writeYAML(path, c.App.Writer, &kf); err != nil {
			return err
		}
	}
	log.Info().Str("params", kf.Params).Msg("Generated key pair")
	return nil
}

func encaps(c *cli.Context) error {
	log := newLogger(c)
	var kf KeyFile
	if err := readYAML(c.String(keyFlag), &kf); err != nil {
		return err
	}
	pk, err := decodeField("publicKey", kf.PublicKey)
	if err != nil {
		return err
	}
	s, err := newScheme(c, log, kf.Params)
	if err != nil {
		return err
	}
	ct, ss, err := s.Encapsulate(pk)
	if err != nil {
		return err
	}
	ef := EncapsulationFile{
		Params:       kf.Params,
		Ciphertext:   hex.EncodeToString(ct),
		SharedSecret: hex.EncodeToString(ss),
	}
	return writeYAML(c.String(outFlag), c.App.Writer, &ef)
}

func decaps(c *cli.Context) error {
	log := newLogger(c)
	var kf KeyFile
	if err := readYAML(c.String(keyFlag), &kf); err != nil {
		return err
	}
	var ef EncapsulationFile
	if err := readYAML(c.String(ciphertextFlag), &ef); err != nil {
		return err
	}
	if kf.Params != ef.Params {
		return errors.Errorf("key file is %s but ciphertext is %s", kf.Params, ef.Params)
	}
	sk, err := decodeField("secretKey", kf.SecretKey)
	if err != nil {
		return err
	}
	ct, err := decodeField("ciphertext", ef.Ciphertext)
	if err != nil {
		return err
	}
	s, err := newScheme(c, log, kf.Params)
	if err != nil {
		return err
	}
	ss, err := s.Decapsulate(sk, ct)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, hex.EncodeToString(ss))
	return nil
}

func selftest(c *cli.Context) error {
	log := newLogger(c)
	trials := c.Int(trialsFlag)
	if trials < 1 {
		return errors.Errorf("--%s must be positive", trialsFlag)
	}
	s, err := newScheme(c, log, c.String(paramsFlag))
	if err != nil {
		return err
	}

	start := time.Now()
	failures := 0
	for i := 0; i < trials; i++ {
		kp, err := s.GenerateKey()
		if err != nil {
			return err
		}
		ct, ss, err := s.Encapsulate(kp.PublicKey())
		if err != nil {
			return err
		}
		got, err := s.Decapsulate(kp.SecretKey(), ct)
		if err != nil {
			return err
		}
		if !bytes.Equal(ss, got) {
			failures++
		}
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("Self test finished")

	fmt.Fprintf(c.App.Writer, "%s: %d trials, %d decryption failures\n", s.Params().Name, trials, failures)
	if failures > 0 {
		return errors.Errorf("%d of %d round trips failed", failures, trials)
	}
	return nil
}

func listParams(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%-14s %2s %5s %5s %5s %6s %6s %6s %s\n",
		"NAME", "K", "ETA1", "ETA2", "DU/DV", "PK", "SK", "CT", "SUITE")
	for _, name := range kem.Names() {
		p, err := kem.ParamsByName(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "%-14s %2d %5d %5d %2d/%-2d %6d %6d %6d %s\n",
			p.Name, p.K, p.Eta1, p.Eta2, p.Du, p.Dv,
			p.PublicKeySize(), p.SecretKeySize(), p.CiphertextSize(), p.Suite.Name())
	}
	return nil
}
