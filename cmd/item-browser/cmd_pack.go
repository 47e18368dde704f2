package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ddbrown30/item-browser/internal/config"
	"github.com/ddbrown30/item-browser/internal/library"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Manage content packs",
}

var packImportCmd = &cobra.Command{
	Use:   "import <file.yaml>...",
	Short: "Build pack databases from YAML descriptions",
	Long: `Builds one pack database per YAML file into the packs directory. An existing
pack with the same id is replaced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, e, err := layout()
		if err != nil {
			return err
		}
		cfg, err := config.Load(l)
		if err != nil {
			return err
		}
		dir := cfg.WithEnv(e).PacksDir(l)
		for _, file := range args {
			dest, n, err := importPack(cmd, file, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into %s\n", n, dest)
		}
		return nil
	},
}

func importPack(cmd *cobra.Command, file, dir string) (string, int, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", 0, fmt.Errorf("reading %s: %w", file, err)
	}
	def, err := library.ParsePackDef(data)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %w", file, err)
	}
	dest := filepath.Join(dir, def.ID+".db")
	if err := library.Import(cmd.Context(), def, dest); err != nil {
		return "", 0, err
	}
	return dest, len(def.Items), nil
}

var packListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the installed packs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()
		return writePacks(cmd, s.lib)
	},
}

func writePacks(cmd *cobra.Command, lib *library.Library) error {
	w := cmd.OutOrStdout()
	packs := lib.PackList()
	if len(packs) == 0 {
		fmt.Fprintln(w, "No packs installed.")
		return nil
	}
	for _, p := range packs {
		items, err := p.Index(cmd.Context(), nil)
		if err != nil {
			return err
		}
		writePack(w, p, len(items))
	}
	return nil
}

func writePack(w io.Writer, p *library.Pack, n int) {
	meta := p.Metadata()
	fmt.Fprintf(w, "%-32s %-24s %-7s %-8s %d items\n", meta.ID, meta.Title, meta.PackageType, p.Permission(), n)
}

func init() {
	packCmd.AddCommand(packImportCmd)
	packCmd.AddCommand(packListCmd)
}
