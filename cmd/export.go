package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rnwolfe/habit/internal/config"
	"github.com/rnwolfe/habit/internal/export"
	"github.com/rnwolfe/habit/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// passphraseEnvVar skips the interactive prompt for --encrypt.
const passphraseEnvVar = "HABIT_EXPORT_PASSPHRASE"

var (
	exportFormat  string
	exportOutput  string
	exportEncrypt bool
	exportAll     bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export habits and stats as CSV, JSON or YAML",
	Long: `Export every habit with its computed streaks, completion rate and
completion dates.

--encrypt wraps the output in a passphrase-protected age envelope. The
passphrase is read from $HABIT_EXPORT_PASSPHRASE, or prompted for.`,
	Example: `  habit export
  habit export --format json --output habits.json
  habit export --format yaml --encrypt --output habits.yaml.age`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "csv, json or yaml (default from export.default_format)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportEncrypt, "encrypt", false, "Encrypt with a passphrase (age)")
	exportCmd.Flags().BoolVarP(&exportAll, "all", "a", true, "Include archived habits")
}

func runExport(_ *cobra.Command, _ []string) error {
	name := exportFormat
	if name == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		name = cfg.Export.DefaultFormat
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	now, err := referenceTime()
	if err != nil {
		return err
	}

	db, hs, err := openHabits()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := hs.EnrichAll(exportAll, now)
	if err != nil {
		return fmt.Errorf("loading habits: %w", err)
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, export.Rows(entries)); err != nil {
		return err
	}
	out := buf.Bytes()

	if exportEncrypt {
		pass, err := exportPassphrase()
		if err != nil {
			return err
		}
		if out, err = export.Encrypt(out, pass); err != nil {
			return err
		}
	}

	if exportOutput == "" {
		_, err := os.Stdout.Write(out)
		return err
	}

	perm := os.FileMode(0o644)
	if exportEncrypt {
		perm = 0o600
	}
	if err := os.WriteFile(exportOutput, out, perm); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	ui.Ok(fmt.Sprintf("Exported %d habit(s) to %s", len(entries), exportOutput))
	return nil
}

// exportPassphrase reads the passphrase from the environment or prompts
// twice on the terminal.
func exportPassphrase() (string, error) {
	if p := os.Getenv(passphraseEnvVar); p != "" {
		return p, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--encrypt needs a terminal or $%s", passphraseEnvVar)
	}

	fmt.Fprint(os.Stderr, "  Passphrase: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	fmt.Fprint(os.Stderr, "  Confirm passphrase: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	if len(first) == 0 {
		return "", fmt.Errorf("empty passphrase")
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passphrases don't match")
	}
	return string(first), nil
}
