// klingnet-keygen turns entropy into BIP-39 mnemonics, BIP-32 keys and
// Base58Check addresses. It keeps no state: nothing it derives is written
// to disk.
package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Klingon-tech/klingnet-keygen/config"
	"github.com/Klingon-tech/klingnet-keygen/internal/log"
	"github.com/Klingon-tech/klingnet-keygen/internal/wallet"
	"github.com/Klingon-tech/klingnet-keygen/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keygen/pkg/types"
	"golang.org/x/term"
)

const version = "0.1.0"

// Command output goes here; tests swap it for a buffer.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

func main() {
	cfg, flags, err := config.Load(os.Args[1:])
	if err != nil {
		fatal("%v", err)
	}
	if flags.Help {
		usage()
		os.Exit(0)
	}
	if flags.Version {
		fmt.Fprintf(stdout, "klingnet-keygen version %s\n", version)
		os.Exit(0)
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	if len(flags.Args) == 0 {
		usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := flags.Args[0]
	cmdArgs := flags.Args[1:]
	log.CLI.Debug().Str("command", cmd).Str("network", string(cfg.Network)).Msg("Running command")

	err = runCommand(ctx, cfg, cmd, cmdArgs)
	stop()
	if err != nil {
		fatal("%v", err)
	}
}

// runCommand dispatches one command. Commands must not exit the process:
// their deferred calls zero seeds and keys.
func runCommand(ctx context.Context, cfg *config.Config, cmd string, args []string) error {
	switch cmd {
	case "generate":
		return cmdGenerate(cfg, args)
	case "entropy":
		return cmdEntropy(args)
	case "seed":
		return cmdSeed(args)
	case "derive":
		return cmdDerive(cfg, args)
	case "address":
		return cmdAddress(cfg, args)
	case "decode":
		return cmdDecode(args)
	case "addresses":
		return cmdAddresses(ctx, cfg, args)
	case "run":
		return cmdRun(cfg, args)
	case "config":
		return cmdConfig(cfg)
	case "help", "--help", "-h":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: klingnet-keygen [global flags] <command> [flags]

Global flags:
  --network <net>     mainnet (default) or testnet
  --testnet           Shorthand for --network=testnet
  --config <path>     Config file (default: ~/.klingnet-keygen/keygen.conf)
  --datadir <path>    Directory holding keygen.conf
  --log-level <lvl>   debug, info, warn (default), error
  --log-json          Output logs as JSON
  --log-file <path>   Also write JSON logs to a file
  --version           Show version information

Commands:
  generate   [--bits N] [--entropy HEX]      Create a mnemonic
  entropy    [--mnemonic "..."]              Decode a mnemonic to entropy
  seed       [--mnemonic "..."] [--passphrase P | --ask-passphrase]
                                             Derive the 64-byte seed
  derive     [--mnemonic "..." | --xkey KEY] [--path P]
                                             Derive a key and its address
  address    --pubkey HEX [--version N]      Encode a public key as an address
  decode     ADDRESS                         Show an address's version and hash
  addresses  [--mnemonic "..." | --xkey KEY] [--account A] [--change C]
             [--start I] [--count N]         List a range of addresses
  run        [--bits N]                      Generate a wallet and print every stage
  config                                     Print a default config file

Mnemonics are read from stdin when --mnemonic is omitted.
`)
}

// ── generate ────────────────────────────────────────────────────────────

func cmdGenerate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	bits := fs.Int("bits", cfg.Entropy.Bits, "Entropy size in bits (128, 160, 192, 224, 256)")
	entropyHex := fs.String("entropy", "", "Use this entropy (hex) instead of a random one")
	fs.Parse(args)

	var mnemonic string
	var err error
	if *entropyHex != "" {
		entropy, decErr := hex.DecodeString(*entropyHex)
		if decErr != nil {
			return fmt.Errorf("invalid entropy hex: %w", decErr)
		}
		mnemonic, err = wallet.NewMnemonic(entropy)
		crypto.Zero(entropy)
	} else {
		mnemonic, err = wallet.GenerateMnemonic(*bits)
	}
	if err != nil {
		return fmt.Errorf("generate mnemonic: %w", err)
	}
	fmt.Fprintln(stdout, mnemonic)
	return nil
}

// ── entropy ─────────────────────────────────────────────────────────────

func cmdEntropy(args []string) error {
	fs := flag.NewFlagSet("entropy", flag.ExitOnError)
	mnemonicFlag := fs.String("mnemonic", "", "Mnemonic sentence (default: read from stdin)")
	fs.Parse(args)

	mnemonic, err := readMnemonic(*mnemonicFlag)
	if err != nil {
		return err
	}
	entropy, err := wallet.MnemonicToEntropy(mnemonic)
	if err != nil {
		return fmt.Errorf("decode mnemonic: %w", err)
	}
	defer crypto.Zero(entropy)
	fmt.Fprintln(stdout, hex.EncodeToString(entropy))
	return nil
}

// ── seed ────────────────────────────────────────────────────────────────

func cmdSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	mnemonicFlag := fs.String("mnemonic", "", "Mnemonic sentence (default: read from stdin)")
	passphrase := fs.String("passphrase", "", "Optional BIP-39 passphrase")
	ask := fs.Bool("ask-passphrase", false, "Prompt for the passphrase without echo")
	fs.Parse(args)

	mnemonic, err := readMnemonic(*mnemonicFlag)
	if err != nil {
		return err
	}
	seed, err := seedFromFlags(mnemonic, *passphrase, *ask)
	if err != nil {
		return err
	}
	defer crypto.Zero(seed)
	fmt.Fprintln(stdout, hex.EncodeToString(seed))
	return nil
}

// ── derive ──────────────────────────────────────────────────────────────

func cmdDerive(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("derive", flag.ExitOnError)
	mnemonicFlag := fs.String("mnemonic", "", "Mnemonic sentence (default: read from stdin)")
	xkey := fs.String("xkey", "", "Start from an extended key instead of a mnemonic")
	path := fs.String("path", cfg.Derive.Path, "Derivation path (m/... or M/...)")
	passphrase := fs.String("passphrase", "", "Optional BIP-39 passphrase")
	ask := fs.Bool("ask-passphrase", false, "Prompt for the passphrase without echo")
	fs.Parse(args)

	net := cfg.WalletNetwork()
	root, err := rootKey(*mnemonicFlag, *xkey, *passphrase, *ask, &net)
	if err != nil {
		return err
	}
	defer root.Zero()

	key, err := wallet.DerivePath(root, *path)
	if err != nil {
		return fmt.Errorf("derive %s: %w", *path, err)
	}
	if key != root {
		defer key.Zero()
	}

	fmt.Fprintf(stdout, "Path:        %s\n", *path)
	if key.IsPrivate() {
		fmt.Fprintf(stdout, "Private key: %s\n", key.Serialize(net))
	}
	fmt.Fprintf(stdout, "Public key:  %s\n", key.Neuter().Serialize(net))
	fmt.Fprintf(stdout, "Pubkey:      %s\n", hex.EncodeToString(key.PublicKeyBytes()))
	fmt.Fprintf(stdout, "Address:     %s\n", key.Address(net.AddressVersion))
	return nil
}

// ── address / decode ────────────────────────────────────────────────────

func cmdAddress(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("address", flag.ExitOnError)
	pubHex := fs.String("pubkey", "", "Compressed public key (hex)")
	ver := fs.Int("version", int(cfg.WalletNetwork().AddressVersion), "Address version byte")
	fs.Parse(args)

	if *pubHex == "" {
		return fmt.Errorf("usage: klingnet-keygen address --pubkey <hex> [--version N]")
	}
	if *ver < 0 || *ver > 255 {
		return fmt.Errorf("version must be in range [0, 255]")
	}
	pub, err := hex.DecodeString(*pubHex)
	if err != nil {
		return fmt.Errorf("invalid pubkey hex: %w", err)
	}
	addr, err := types.EncodeAddress(pub, byte(*ver))
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}
	log.Address.Debug().Uint8("version", uint8(*ver)).Msg("Encoded address")
	fmt.Fprintln(stdout, addr)
	return nil
}

func cmdDecode(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: klingnet-keygen decode <address>")
	}
	ver, hash, err := types.DecodeAddress(args[0])
	if err != nil {
		return fmt.Errorf("decode address: %w", err)
	}
	log.Address.Debug().Uint8("version", ver).Msg("Decoded address")
	fmt.Fprintf(stdout, "Version: 0x%02x\n", ver)
	fmt.Fprintf(stdout, "Hash160: %s\n", hash)
	return nil
}

// ── addresses ───────────────────────────────────────────────────────────

func cmdAddresses(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("addresses", flag.ExitOnError)
	mnemonicFlag := fs.String("mnemonic", "", "Mnemonic sentence (default: read from stdin)")
	xkey := fs.String("xkey", "", "List children of this extended key instead")
	passphrase := fs.String("passphrase", "", "Optional BIP-39 passphrase")
	ask := fs.Bool("ask-passphrase", false, "Prompt for the passphrase without echo")
	account := fs.Uint("account", 0, "BIP-44 account")
	change := fs.Uint("change", wallet.ChangeExternal, "0 for receiving, 1 for change")
	start := fs.Uint("start", 0, "First address index")
	count := fs.Int("count", cfg.Derive.Count, "Number of addresses")
	fs.Parse(args)

	if *count < 1 || *count > config.MaxCount {
		return fmt.Errorf("count must be in range [1, %d]", config.MaxCount)
	}
	if *account >= uint(wallet.HardenedOffset) || *start >= uint(wallet.HardenedOffset) ||
		(*change != wallet.ChangeExternal && *change != wallet.ChangeInternal) {
		return fmt.Errorf("account, change or start out of range")
	}

	net := cfg.WalletNetwork()
	root, err := rootKey(*mnemonicFlag, *xkey, *passphrase, *ask, &net)
	if err != nil {
		return err
	}
	defer root.Zero()

	parent := root
	prefix := "."
	if *xkey == "" {
		parent, err = root.DeriveIndices(
			wallet.PurposeBIP44,
			wallet.CoinTypeBitcoin,
			wallet.HardenedOffset+uint32(*account),
			uint32(*change),
		)
		if err != nil {
			return fmt.Errorf("derive account: %w", err)
		}
		defer parent.Zero()
		prefix = fmt.Sprintf("m/44'/0'/%d'/%d", *account, *change)
	}

	keys, err := wallet.DeriveRange(ctx, parent, uint32(*start), uint32(*count), cfg.Derive.Workers)
	if err != nil {
		return fmt.Errorf("derive addresses: %w", err)
	}
	for _, k := range keys {
		fmt.Fprintf(stdout, "%s/%d  %s\n", prefix, k.Index(), k.Address(net.AddressVersion))
		k.Zero()
	}
	return nil
}

// ── run ─────────────────────────────────────────────────────────────────

// cmdRun walks the whole pipeline from fresh entropy to the first BIP-44
// address and prints every stage.
func cmdRun(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	bits := fs.Int("bits", cfg.Entropy.Bits, "Entropy size in bits")
	passphrase := fs.String("passphrase", "", "Optional BIP-39 passphrase")
	fs.Parse(args)

	mnemonic, err := wallet.GenerateMnemonic(*bits)
	if err != nil {
		return fmt.Errorf("generate mnemonic: %w", err)
	}
	return runPipeline(cfg.WalletNetwork(), mnemonic, *passphrase, cfg.Derive.Path)
}

func runPipeline(net wallet.Network, mnemonic, passphrase, path string) error {
	seed, err := wallet.SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return fmt.Errorf("derive seed: %w", err)
	}
	defer crypto.Zero(seed)

	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		return fmt.Errorf("derive master key: %w", err)
	}
	defer master.Zero()

	key, err := wallet.DerivePath(master, path)
	if err != nil {
		return fmt.Errorf("derive %s: %w", path, err)
	}
	if key != master {
		defer key.Zero()
	}

	fmt.Fprintf(stdout, "Mnemonic:    %s\n", mnemonic)
	fmt.Fprintf(stdout, "Seed:        %s\n", hex.EncodeToString(seed))
	fmt.Fprintf(stdout, "Master key:  %s\n", master.Serialize(net))
	fmt.Fprintf(stdout, "Path:        %s\n", path)
	fmt.Fprintf(stdout, "Pubkey:      %s\n", hex.EncodeToString(key.PublicKeyBytes()))
	fmt.Fprintf(stdout, "Address:     %s\n", key.Address(net.AddressVersion))
	return nil
}

// ── config ──────────────────────────────────────────────────────────────

func cmdConfig(cfg *config.Config) error {
	if err := config.WriteDefaultConfig(stdout, cfg.Network); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ── Key input helpers ───────────────────────────────────────────────────

// rootKey builds the starting key from an extended key or a mnemonic. An
// extended key's own network replaces *net.
func rootKey(mnemonicFlag, xkey, passphrase string, ask bool, net *wallet.Network) (*wallet.HDKey, error) {
	if xkey != "" {
		key, keyNet, err := wallet.ParseExtendedKey(strings.TrimSpace(xkey))
		if err != nil {
			return nil, fmt.Errorf("parse extended key: %w", err)
		}
		if keyNet.Name != net.Name {
			log.CLI.Warn().
				Str("key_network", keyNet.Name).
				Str("network", net.Name).
				Msg("Extended key network overrides configured network")
		}
		*net = keyNet
		return key, nil
	}

	mnemonic, err := readMnemonic(mnemonicFlag)
	if err != nil {
		return nil, err
	}
	seed, err := seedFromFlags(mnemonic, passphrase, ask)
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(seed)
	master, err := wallet.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("derive master key: %w", err)
	}
	return master, nil
}

func seedFromFlags(mnemonic, passphrase string, ask bool) ([]byte, error) {
	if ask {
		pw, err := readPassword("Enter passphrase: ")
		if err != nil {
			return nil, fmt.Errorf("read passphrase: %w", err)
		}
		passphrase = string(pw)
		crypto.Zero(pw)
	}
	seed, err := wallet.SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	return seed, nil
}

// readMnemonic returns the flag value, or the first line of stdin.
func readMnemonic(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read mnemonic: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no mnemonic given (use --mnemonic or pipe it on stdin)")
	}
	return line, nil
}

// ── Password helper ─────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
