package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// logger carries diagnostics and notifications to stderr; stdout is kept
// for command output.
var logger = log.New(os.Stderr, "item-browser: ", 0)

// errNoSelection ends select with exit status 1 and no message.
var errNoSelection = errors.New("no item selected")

var rootCmd = &cobra.Command{
	Use:   "item-browser",
	Short: "Browse, filter and pick tabletop items",
	Long: "item-browser lists the items of a world and its content packs in a sortable, " +
		"filterable table, and can act as an item picker for scripts.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// TTY guard: fall back to a plain listing when stdin is not a
		// terminal (piping, CI, scripts, etc.)
		if !isTerminal() {
			listCmd.SetContext(cmd.Context())
			return listCmd.RunE(listCmd, nil)
		}
		return directoryCmd.RunE(cmd, args)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "item-browser %s\n", version)
	},
}

func isTerminal() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

// requireTerminal keeps interactive commands away from pipes.
func requireTerminal(name string) error {
	if !isTerminal() {
		return fmt.Errorf("%s needs an interactive terminal; use list instead", name)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(directoryCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(rulesetsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNoSelection) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
