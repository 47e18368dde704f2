package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ddbrown30/item-browser/internal/config"
	"github.com/ddbrown30/item-browser/internal/ruleset"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change item-browser settings",
	Long:  "Commands for reading and editing ~/.item-browser/config.yaml.",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		l, e, err := layout()
		if err != nil {
			return err
		}
		cfg, err := config.Load(l)
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg.WithEnv(e))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long:  "Changes one setting. Keys: " + strings.Join(config.Keys(), ", ") + ".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, _, err := layout()
		if err != nil {
			return err
		}
		cfg, err := config.Load(l)
		if err != nil {
			return err
		}
		if args[0] == config.KeyRuleset && args[1] != "" && !ruleset.DefaultRegistry.Has(args[1]) {
			return fmt.Errorf("unknown ruleset %q (known: %s)", args[1], strings.Join(ruleset.DefaultRegistry.IDs(), ", "))
		}
		cfg, err = config.Set(cfg, args[0], args[1])
		if err != nil {
			return err
		}
		if err := config.Save(l, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the settings interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTerminal("config edit"); err != nil {
			return err
		}
		l, _, err := layout()
		if err != nil {
			return err
		}
		cfg, err := config.Load(l)
		if err != nil {
			return err
		}

		rulesetOpts := []huh.Option[string]{huh.NewOption("From the world file", "")}
		for _, id := range ruleset.DefaultRegistry.IDs() {
			rulesetOpts = append(rulesetOpts, huh.NewOption(id, id))
		}
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Ruleset").
					Options(rulesetOpts...).
					Value(&cfg.Ruleset),
				huh.NewConfirm().
					Title("Show the item browser button in the item directory?").
					Value(&cfg.Settings.ShowEntryPointButton),
				huh.NewConfirm().
					Title("Use the compact button?").
					Description("Shows an icon beside the search field instead of a full-width button.").
					Value(&cfg.Settings.UseCompactButton),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if err := config.Save(l, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", l.ConfigFile())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEditCmd)
}
