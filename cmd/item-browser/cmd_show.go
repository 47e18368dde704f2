package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/ddbrown30/item-browser/internal/browser"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/i18n"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an item and its drag data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.lib.Resolve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeEntity(cmd.OutOrStdout(), s.l, e)
	},
}

// shownEntity is the YAML shape printed by show.
type shownEntity struct {
	ID     string         `yaml:"id"`
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Img    string         `yaml:"img,omitempty"`
	Folder []string       `yaml:"folder,omitempty,flow"`
	Source string         `yaml:"source"`
	System map[string]any `yaml:"system,omitempty"`
}

func writeEntity(w io.Writer, l *i18n.Localizer, e entity.Entity) error {
	source := l.T("ITEM_BROWSER.FilterWorldItems")
	if !e.Scope.IsWorld() {
		source = e.Scope.PackLabel
	}
	data, err := yaml.Marshal(shownEntity{
		ID:     e.ID,
		Name:   e.Name,
		Type:   e.Type,
		Img:    e.Img,
		Folder: e.Folder,
		Source: source,
		System: e.System,
	})
	if err != nil {
		return fmt.Errorf("marshaling item: %w", err)
	}
	payload, err := browser.Payload(e.ID)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(data))
	fmt.Fprintln(w, l.T("ITEM_BROWSER.DragData", string(payload)))
	return nil
}
