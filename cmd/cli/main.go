package main

import (
	"fmt"
	"io"
	"os"

	"github.com/amirasaad/compago/infra/initializer"
	"github.com/amirasaad/compago/pkg/config"
	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd(in *os.File, out io.Writer) *cobra.Command {
	var (
		envFile string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:           "compago",
		Short:         "COMPAGO wallet in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load application configuration: %w", err)
			}
			logOutput := io.Discard
			if verbose {
				logOutput = os.Stderr
			}
			a, err := initializer.NewApp(cfg, initializer.WithLogOutput(logOutput))
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer a.Close() //nolint: errcheck

			sh := NewShell(a, in, out, pinReader(in, out))
			return sh.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&envFile, "env", ".env", "Environment file, searched upward from the working directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Write logs to stderr")
	return cmd
}

// pinReader hides the PIN when stdin is a terminal. Otherwise the shell reads it
// as a normal line.
func pinReader(in *os.File, out io.Writer) func() (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func() (string, error) {
		_, _ = fmt.Fprint(out, "PIN: ")
		pin, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(out)
		return string(pin), err
	}
}
