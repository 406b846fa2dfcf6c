// Package main provides the CLI entrypoint for skim.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/skim/internal/config"
	"github.com/verte-zerg/skim/internal/eval"
	"github.com/verte-zerg/skim/internal/model"
	"github.com/verte-zerg/skim/internal/reader"
	"github.com/verte-zerg/skim/internal/summary"
	"github.com/verte-zerg/skim/internal/term"
	"github.com/verte-zerg/skim/internal/tokenizer"
)

const (
	defaultWPM     = 258
	defaultWPMStep = 5
	defaultModel   = "deepseek/deepseek-r1:free"

	defaultQuitKey     = 'q'
	defaultPauseKey    = ' '
	defaultIncreaseKey = '+'
	defaultDecreaseKey = '-'
)

var (
	readFile string
	readWPM  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "skim",
		Short:         "Terminal speed reader",
		Long:          "Reads a text word by word at a configurable pace, then asks for a summary and has an AI grade your comprehension.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runReadCmd,
	}

	rootCmd.Flags().StringVarP(&readFile, "file", "f", "", "path of the text file to read (default: stdin)")
	rootCmd.Flags().IntVar(&readWPM, "wpm", defaultWPM, "words per minute (150-1000)")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runReadCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolveConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	text, err := readText(readFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text provided: pass --file or pipe text to stdin")
	}
	words := tokenizer.Tokenize(text)

	tty, err := term.OpenTTY()
	if err != nil {
		return err
	}

	result, err := runSession(cfg, words, tty)
	if err != nil {
		return fmt.Errorf("reading session failed: %w", err)
	}
	if !result.Completed {
		return nil
	}

	return evaluateComprehension(cfg, text, result.WPM, promptInput(tty))
}

// runSession owns the interactive terminal for the playback core and
// restores it on every exit path before the caller touches stdout.
func runSession(cfg model.Config, words []string, tty *os.File) (model.Result, error) {
	cols, rows, err := term.Size(os.Stdout)
	if err != nil {
		return model.Result{}, err
	}

	mode, err := term.EnterInteractive(tty, os.Stdout)
	if err != nil {
		return model.Result{}, err
	}
	defer func() {
		if rerr := mode.Restore(); rerr != nil {
			logErrf("failed to restore terminal: %v\n", rerr)
		}
	}()

	input, err := term.NewInput(tty)
	if err != nil {
		return model.Result{}, err
	}
	defer func() {
		if cerr := input.Close(); cerr != nil {
			logErrf("failed to close input: %v\n", cerr)
		}
	}()

	session := reader.New(term.NewScreen(os.Stdout), input, words, cfg, cols, rows)
	return session.Run()
}

// evaluateComprehension collects the user's summary and prints the
// model's assessment of it.
func evaluateComprehension(cfg model.Config, text string, wpm int, input io.Reader) error {
	userSummary, err := summary.Collect(input)
	if err != nil {
		return err
	}
	if userSummary == "" {
		fmt.Println("No summary provided. Exiting.")
		return nil
	}

	apiKey, err := eval.APIKeyFromEnv()
	if err != nil {
		return err
	}
	client := eval.NewClient(apiKey)

	verdict, err := summary.Await("Sending request to AI for evaluation...", input, func() (string, error) {
		return client.Evaluate(context.Background(), cfg.Model, userSummary, text, wpm)
	})
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	fmt.Println(verdict)
	return nil
}

// promptInput returns the keyboard reader for the post-session prompts.
// When the text was piped in, stdin is exhausted and the controlling
// terminal is used instead; nil means the Bubble Tea default (stdin).
func promptInput(tty *os.File) io.Reader {
	if tty == os.Stdin {
		return nil
	}
	return tty
}

func resolveConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, error) {
	cfg := model.Config{
		WPM:     defaultWPM,
		WPMStep: defaultWPMStep,
		Model:   defaultModel,
		Keys: model.KeyBindings{
			Quit:        defaultQuitKey,
			Pause:       defaultPauseKey,
			IncreaseWPM: defaultIncreaseKey,
			DecreaseWPM: defaultDecreaseKey,
		},
	}

	if fileCfg.WPM != nil {
		cfg.WPM = *fileCfg.WPM
	}
	if fileCfg.WPMStep != nil {
		cfg.WPMStep = *fileCfg.WPMStep
	}
	if fileCfg.Model != nil {
		cfg.Model = *fileCfg.Model
	}
	if err := applyKeyConfig("quit", &cfg.Keys.Quit, fileCfg.Keys.Quit); err != nil {
		return model.Config{}, err
	}
	if err := applyKeyConfig("pause", &cfg.Keys.Pause, fileCfg.Keys.Pause); err != nil {
		return model.Config{}, err
	}
	if err := applyKeyConfig("increase-wpm", &cfg.Keys.IncreaseWPM, fileCfg.Keys.IncreaseWPM); err != nil {
		return model.Config{}, err
	}
	if err := applyKeyConfig("decrease-wpm", &cfg.Keys.DecreaseWPM, fileCfg.Keys.DecreaseWPM); err != nil {
		return model.Config{}, err
	}

	if cmd.Flags().Changed("wpm") {
		cfg.WPM = readWPM
	}
	cfg.WPM = model.ClampWPM(cfg.WPM)

	if cfg.WPMStep <= 0 {
		return model.Config{}, fmt.Errorf("wpm-step must be greater than 0")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return model.Config{}, fmt.Errorf("model must not be empty")
	}
	if err := config.ValidateKeys(cfg.Keys); err != nil {
		return model.Config{}, fmt.Errorf("invalid key bindings: %w", err)
	}
	return cfg, nil
}

func applyKeyConfig(name string, target *rune, value *string) error {
	if value == nil {
		return nil
	}
	r, err := config.ParseKey(name, *value)
	if err != nil {
		return err
	}
	*target = r
	return nil
}

func readText(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read text from stdin: %w", err)
	}
	return string(data), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# skim configuration
# Uncomment a value to enable it. CLI flags override config values.

# wpm = %d               # Words per minute (%d-%d)
# wpm-step = %d            # WPM adjustment step while paused
# model = %q  # Evaluation model

[keys]
# quit = %q
# pause = %q             # Spacebar
# increase-wpm = %q
# decrease-wpm = %q
`,
		defaultWPM,
		model.MinWPM,
		model.MaxWPM,
		defaultWPMStep,
		defaultModel,
		string(defaultQuitKey),
		string(defaultPauseKey),
		string(defaultIncreaseKey),
		string(defaultDecreaseKey),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
