package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/host"
)

// PackDef is the YAML description a pack database is built from.
type PackDef struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Title        string    `yaml:"title"`
	PackageType  string    `yaml:"package_type"`
	PackageName  string    `yaml:"package_name"`
	DocumentName string    `yaml:"document_name,omitempty"`
	Permission   string    `yaml:"permission,omitempty"`
	Items        []PackDoc `yaml:"items"`
}

// PackDoc is one entry of a PackDef.
type PackDoc struct {
	ID     string         `yaml:"id"`
	Type   string         `yaml:"type"`
	Name   string         `yaml:"name"`
	Img    string         `yaml:"img,omitempty"`
	System map[string]any `yaml:"system,omitempty"`
	Labels map[string]any `yaml:"labels,omitempty"`
}

// ParsePackDef parses a pack description.
func ParsePackDef(data []byte) (PackDef, error) {
	var def PackDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return PackDef{}, fmt.Errorf("parsing pack: %w", err)
	}
	if err := def.validate(); err != nil {
		return PackDef{}, err
	}
	return def, nil
}

func (d PackDef) validate() error {
	if d.ID == "" {
		return apperr.New(apperr.CodePackInvalid, "pack id is required")
	}
	seen := map[string]bool{}
	for i, doc := range d.Items {
		if doc.ID == "" {
			return apperr.New(apperr.CodePackInvalid, fmt.Sprintf("pack %s item %d has no id", d.ID, i))
		}
		if seen[doc.ID] {
			return apperr.New(apperr.CodePackInvalid, fmt.Sprintf("pack %s has duplicate item %s", d.ID, doc.ID))
		}
		seen[doc.ID] = true
	}
	return nil
}

// Import writes def to a pack database at path, replacing its contents.
func Import(ctx context.Context, def PackDef, path string) error {
	if err := def.validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating packs directory: %w", err)
	}
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pack`); err != nil {
		return fmt.Errorf("clear pack metadata: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return fmt.Errorf("clear pack items: %w", err)
	}

	docName := def.DocumentName
	if docName == "" {
		docName = host.DocumentItem
	}
	meta := [][2]string{
		{metaID, def.ID},
		{metaName, def.Name},
		{metaTitle, def.Title},
		{metaPackageType, def.PackageType},
		{metaPackageName, def.PackageName},
		{metaDocumentName, docName},
		{metaPermission, def.Permission},
	}
	for _, kv := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO pack (key, value) VALUES (?, ?)`, kv[0], kv[1]); err != nil {
			return fmt.Errorf("write pack metadata: %w", err)
		}
	}

	for _, doc := range def.Items {
		system, err := encodeBlob(doc.System)
		if err != nil {
			return fmt.Errorf("item %s system: %w", doc.ID, err)
		}
		labels, err := encodeBlob(doc.Labels)
		if err != nil {
			return fmt.Errorf("item %s labels: %w", doc.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO items (id, type, name, img, system, labels) VALUES (?, ?, ?, ?, ?, ?)`,
			doc.ID, doc.Type, doc.Name, doc.Img, system, labels)
		if err != nil {
			return fmt.Errorf("write item %s: %w", doc.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

func encodeBlob(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
