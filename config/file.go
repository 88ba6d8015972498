package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Klingon-tech/klingnet-keygen/internal/log"
)

// LoadFile loads configuration from a .conf file. A missing file yields no
// values. Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	return parseConf(file)
}

func parseConf(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	case "network":
		cfg.Network = NetworkType(strings.ToLower(value))
	case "datadir":
		cfg.DataDir = value

	case "entropy.bits":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Entropy.Bits = n

	case "derive.path":
		cfg.Derive.Path = value
	case "derive.count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Derive.Count = n
	case "derive.workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Derive.Workers = n

	case "log.level":
		cfg.Log.Level = value
	case "log.file":
		cfg.Log.File = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)

	case "mnemonic", "passphrase", "seed", "xprv":
		return fmt.Errorf("secrets cannot be set in the config file")

	default:
		log.Config.Warn().Str("key", key).Msg("Unknown config key ignored")
	}
	return nil
}

// parseBool parses a boolean value.
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}

// WriteDefaultConfig writes a commented default configuration to w.
func WriteDefaultConfig(w io.Writer, network NetworkType) error {
	cfg := Default(network)
	content := `# klingnet-keygen configuration
#
# Place this file at ` + cfg.ConfigFile() + `
# or pass --config <path>. Mnemonics and passphrases are never read
# from this file.

# Network: mainnet or testnet (address version 0x00 / 0x6f, xprv / tprv)
network = ` + string(network) + `

# ============================================================================
# Mnemonic generation
# ============================================================================

# Entropy size in bits: 128, 160, 192, 224 or 256 (12 to 24 words)
entropy.bits = ` + strconv.Itoa(cfg.Entropy.Bits) + `

# ============================================================================
# Derivation
# ============================================================================

# Default derivation path (' h or H marks hardened indices)
derive.path = ` + cfg.Derive.Path + `

# Number of addresses listed by the addresses command (1 to 10000)
derive.count = ` + strconv.Itoa(cfg.Derive.Count) + `

# Concurrent derivation workers (0 = one per CPU)
# derive.workers = 0

# ============================================================================
# Logging
# ============================================================================

log.level = ` + cfg.Log.Level + `
# log.file =
log.json = false
`
	_, err := io.WriteString(w, content)
	return err
}
