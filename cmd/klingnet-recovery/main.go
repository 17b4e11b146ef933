// klingnet-recovery creates SLIP-39 share sets, recovers master secrets from
// SLIP-39 or BIP-39 mnemonics, derives accounts and scores secret entropy.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/Klingon-tech/klingnet-recovery/config"
	"github.com/Klingon-tech/klingnet-recovery/internal/log"
	"github.com/Klingon-tech/klingnet-recovery/internal/recovery"
	"github.com/Klingon-tech/klingnet-recovery/pkg/entropy"
	"github.com/Klingon-tech/klingnet-recovery/pkg/slip39"
)

const version = "0.1.0"

func main() {
	cfg, flags, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage()
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		os.Exit(1)
	}
	if flags.Version {
		fmt.Printf("klingnet-recovery version %s\n", version)
		return
	}
	if flags.Help || len(flags.Args) == 0 {
		usage()
		if !flags.Help {
			os.Exit(1)
		}
		return
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	cmd := flags.Args[0]
	cmdArgs := flags.Args[1:]
	log.CLI.Debug().Str("command", cmd).Str("datadir", cfg.DataDir).Msg("Dispatching")

	switch cmd {
	case "init":
		cmdInit(cfg)
	case "create":
		cmdCreate(cfg, cmdArgs)
	case "recover":
		cmdRecover(cfg, cmdArgs)
	case "recover-bip39":
		cmdRecoverBIP39(cfg, cmdArgs)
	case "account":
		cmdAccount(cfg, cmdArgs)
	case "entropy":
		cmdEntropy(cfg, cmdArgs)
	case "version":
		fmt.Printf("klingnet-recovery version %s\n", version)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: klingnet-recovery [global flags] <command> [flags]

Global flags:
  --datadir <path>    Data directory (default: ~/.klingnet-recovery)
  --config, -c <path> Config file (default: <datadir>/klingnet-recovery.conf)
  --log-level <lvl>   debug, info, warn (default), error
  --log-file <path>   Also write JSON logs to a file
  --log-json          Log JSON to stderr
  --version, -v       Show version

Commands:
  init                            Create the data directory and default config
  create [--name <n>] [--secret <hex>] [--passphrase] [--bip39]
         [--threshold <n>] [--groups <name:t/n,...>]
         [--cryptopaths <SYM[:path[:format]],...>] [--accounts <n>] [--json]
                                  Split a master secret into SLIP-39 groups
  recover [--file <path>] [--passphrase] [--derive] [mnemonic ...]
                                  Recover a secret from SLIP-39 mnemonics
                                  (one per line on stdin when none given)
  recover-bip39 [--entropy] [--passphrase] [--derive] [words ...]
                                  Recover a BIP-39 seed, or its raw entropy
  account --seed <hex> [--cryptopaths <...>] [--accounts <n>] [--json]
                                  Derive accounts from a seed
  entropy shannon [--hex <data> | --file <path>] [--stride <n>] [--overlap]
  entropy signal  [--hex <data> | --file <path>] [--width <bits>] [--height <n>]
                                  Score the entropy of secret material

Currencies: %s

Secrets are printed to stdout; logs go to stderr and never contain secrets.
`, supportedCurrencies())
}

// ── init ────────────────────────────────────────────────────────────────

func cmdInit(cfg *config.Config) {
	if err := config.EnsureDataDirs(cfg); err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Config: %s\n", cfg.ConfigFile())
}

// ── create ──────────────────────────────────────────────────────────────

func cmdCreate(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "SLIP-39", "Name recorded with the share set")
	secretHex := fs.String("secret", "", "Master secret as hex (default: random 128 bits)")
	askPassphrase := fs.Bool("passphrase", false, "Prompt for a passphrase")
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.IntVar(&cfg.Create.GroupThreshold, "threshold", cfg.Create.GroupThreshold, "Groups required to recover")
	fs.StringVar(&cfg.Create.Groups, "groups", cfg.Create.Groups, "Groups as name:threshold/count,...")
	fs.StringVar(&cfg.Create.Cryptopaths, "cryptopaths", cfg.Create.Cryptopaths, "Accounts to derive")
	fs.IntVar(&cfg.Create.AccountCount, "accounts", cfg.Create.AccountCount, "Accounts per cryptopath")
	fs.IntVar(&cfg.Create.IterationExponent, "iteration-exponent", cfg.Create.IterationExponent, "SLIP-39 iteration exponent")
	fs.BoolVar(&cfg.Create.Extendable, "extendable", cfg.Create.Extendable, "Create an extendable share set")
	fs.BoolVar(&cfg.Create.UsingBIP39, "bip39", cfg.Create.UsingBIP39, "Derive accounts from the BIP-39 seed of the secret")
	fs.Parse(args)

	if err := config.Validate(cfg); err != nil {
		fatal("%v", err)
	}
	groups, err := cfg.Create.GroupSpecs()
	if err != nil {
		fatal("%v", err)
	}
	opts, err := cfg.Create.Options()
	if err != nil {
		fatal("%v", err)
	}
	if *secretHex != "" {
		if opts.MasterSecret, err = parseHexSecret(*secretHex); err != nil {
			fatal("%v", err)
		}
	}
	if *askPassphrase {
		if opts.Passphrase, err = readPasswordTwice(); err != nil {
			fatal("read passphrase: %v", err)
		}
	}

	details, err := recovery.Create(context.Background(), *name, cfg.Create.GroupThreshold, groups, opts)
	if err != nil {
		fatal("create: %v", err)
	}
	if *asJSON {
		printJSON(newDetailsView(details))
		return
	}
	fmt.Print(formatDetails(details))
}

// ── recover ─────────────────────────────────────────────────────────────

func cmdRecover(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("recover", flag.ExitOnError)
	file := fs.String("file", "", "Read mnemonics from a file, one per line")
	askPassphrase := fs.Bool("passphrase", false, "Prompt for the share set passphrase")
	derive := fs.Bool("derive", false, "Also derive the configured accounts")
	fs.Parse(args)

	mnemonics := fs.Args()
	if len(mnemonics) == 0 {
		data, err := readInput(*file, os.Stdin)
		if err != nil {
			fatal("read mnemonics: %v", err)
		}
		mnemonics = splitLines(data)
	}
	if len(mnemonics) == 0 {
		fatal("Usage: klingnet-recovery recover [--file <path>] [mnemonic ...]")
	}

	var opts recovery.RecoverOptions
	if *askPassphrase {
		p, err := readPassword("Enter passphrase: ")
		if err != nil {
			fatal("read passphrase: %v", err)
		}
		opts.Passphrase = p
	}

	secret, err := recovery.Recover(mnemonics, opts)
	if err != nil {
		fatal("recover: %v", err)
	}
	fmt.Println(hex.EncodeToString(secret))
	if *derive {
		printAccounts(cfg, secret, false)
	}
}

func cmdRecoverBIP39(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("recover-bip39", flag.ExitOnError)
	file := fs.String("file", "", "Read the sentence from a file")
	asEntropy := fs.Bool("entropy", false, "Output the raw entropy instead of the seed")
	askPassphrase := fs.Bool("passphrase", false, "Prompt for the BIP-39 passphrase")
	derive := fs.Bool("derive", false, "Also derive the configured accounts")
	fs.Parse(args)

	sentence := strings.Join(fs.Args(), " ")
	if sentence == "" {
		data, err := readInput(*file, os.Stdin)
		if err != nil {
			fatal("read sentence: %v", err)
		}
		sentence = string(data)
	}

	opts := recovery.BIP39Options{AsEntropy: *asEntropy}
	if *askPassphrase {
		p, err := readPassword("Enter passphrase: ")
		if err != nil {
			fatal("read passphrase: %v", err)
		}
		opts.Passphrase = string(p)
	}

	secret, err := recovery.RecoverBIP39(sentence, opts)
	if err != nil {
		fatal("recover-bip39: %v", err)
	}
	fmt.Println(hex.EncodeToString(secret))
	if *derive {
		printAccounts(cfg, secret, false)
	}
}

// ── account ─────────────────────────────────────────────────────────────

func cmdAccount(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("account", flag.ExitOnError)
	seedHex := fs.String("seed", "", "Seed or master secret as hex")
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.StringVar(&cfg.Create.Cryptopaths, "cryptopaths", cfg.Create.Cryptopaths, "Accounts to derive")
	fs.IntVar(&cfg.Create.AccountCount, "accounts", cfg.Create.AccountCount, "Accounts per cryptopath")
	fs.Parse(args)

	if *seedHex == "" {
		fatal("Usage: klingnet-recovery account --seed <hex> [--cryptopaths <...>]")
	}
	if err := config.Validate(cfg); err != nil {
		fatal("%v", err)
	}
	seed, err := parseHexSecret(*seedHex)
	if err != nil {
		fatal("%v", err)
	}
	printAccounts(cfg, seed, *asJSON)
}

func printAccounts(cfg *config.Config, seed []byte, asJSON bool) {
	paths, err := cfg.Create.Paths()
	if err != nil {
		fatal("%v", err)
	}
	rows, err := recovery.DeriveAccounts(context.Background(), seed, paths, cfg.Create.AccountCount)
	if err != nil {
		fatal("derive: %v", err)
	}
	if asJSON {
		printJSON(newAccountViews(rows))
		return
	}
	for _, row := range rows {
		for _, a := range row {
			fmt.Println(formatAccount(a))
		}
	}
}

// ── entropy ─────────────────────────────────────────────────────────────

func cmdEntropy(cfg *config.Config, args []string) {
	if len(args) == 0 {
		fatal("Usage: klingnet-recovery entropy <shannon|signal> [flags]")
	}
	fs := flag.NewFlagSet("entropy "+args[0], flag.ExitOnError)
	hexData := fs.String("hex", "", "Data as hex")
	file := fs.String("file", "", "Read raw data from a file (- for stdin)")
	asJSON := fs.Bool("json", false, "Output JSON")
	fs.IntVar(&cfg.Entropy.Stride, "stride", cfg.Entropy.Stride, "Shannon window in bytes (0 = whole input)")
	fs.BoolVar(&cfg.Entropy.Overlap, "overlap", cfg.Entropy.Overlap, "Slide Shannon windows one byte at a time")
	fs.IntVar(&cfg.Entropy.Width, "width", cfg.Entropy.Width, "Bits per signal sample")
	fs.IntVar(&cfg.Entropy.Height, "height", cfg.Entropy.Height, "Samples per signal frame")
	fs.Parse(args[1:])

	if err := config.Validate(cfg); err != nil {
		fatal("%v", err)
	}
	var data []byte
	var err error
	if *hexData != "" {
		data, err = parseHexSecret(*hexData)
	} else {
		data, err = readInput(*file, os.Stdin)
	}
	if err != nil {
		fatal("read data: %v", err)
	}

	switch args[0] {
	case "shannon":
		res, err := entropy.Shannon(data, cfg.Entropy.ShannonOptions())
		if err != nil {
			fatal("shannon: %v", err)
		}
		log.Entropy.Debug().Int("bytes", len(data)).Int("windows", res.Windows).Msg("Shannon entropy")
		if *asJSON {
			printJSON(res)
			return
		}
		fmt.Printf("Shannon: %.3f dB (%.3f of %.3f bits/byte over %d windows)\n", res.DB, res.Bits, res.Ideal, res.Windows)
	case "signal":
		res, err := entropy.Signal(data, cfg.Entropy.Width, cfg.Entropy.Height)
		if err != nil {
			fatal("signal: %v", err)
		}
		log.Entropy.Debug().Int("bytes", len(data)).Int("frames", res.Frames).Msg("Signal entropy")
		if *asJSON {
			printJSON(res)
			return
		}
		fmt.Printf("Signal: %.3f dB (peak bucket %d of %d, %d frames)\n", res.DB, res.Peak, len(res.Magnitudes), res.Frames)
	default:
		fatal("Unknown entropy command: %s\nUsage: klingnet-recovery entropy <shannon|signal> [flags]", args[0])
	}
}

// ── Output helpers ──────────────────────────────────────────────────────

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("marshal result: %v", err)
	}
	fmt.Println(string(data))
}

// ── Passphrase helpers ──────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

func readPasswordTwice() ([]byte, error) {
	first, err := readPassword("Enter passphrase: ")
	if err != nil {
		return nil, err
	}
	second, err := readPassword("Repeat passphrase: ")
	if err != nil {
		return nil, err
	}
	if string(first) != string(second) {
		return nil, fmt.Errorf("passphrases do not match")
	}
	if err := slip39.ValidatePassphrase(first); err != nil {
		return nil, err
	}
	return first, nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
