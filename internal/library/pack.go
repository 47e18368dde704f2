package library

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ddbrown30/item-browser/internal/apperr"
	"github.com/ddbrown30/item-browser/internal/entity"
	"github.com/ddbrown30/item-browser/internal/host"
)

//go:embed schema.sql
var schema string

// Keys of the pack table.
const (
	metaID           = "id"
	metaName         = "name"
	metaTitle        = "title"
	metaPackageType  = "package_type"
	metaPackageName  = "package_name"
	metaDocumentName = "document_name"
	metaPermission   = "permission"
)

// Pack is a content pack stored in one SQLite file.
type Pack struct {
	db     *sql.DB
	path   string
	meta   host.PackMetadata
	access entity.Permission
}

func openDB(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("pack path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// OpenPack opens a pack database and reads its metadata.
func OpenPack(ctx context.Context, path string) (*Pack, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	p := &Pack{db: db, path: path}
	if err := p.loadMeta(ctx); err != nil {
		_ = db.Close()
		return nil, apperr.Wrap(apperr.CodePackInvalid, path, err)
	}
	return p, nil
}

func (p *Pack) loadMeta(ctx context.Context) error {
	rows, err := p.db.QueryContext(ctx, `SELECT key, value FROM pack`)
	if err != nil {
		return fmt.Errorf("read pack metadata: %w", err)
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return fmt.Errorf("scan pack metadata: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read pack metadata: %w", err)
	}
	if values[metaID] == "" {
		return errors.New("pack has no id")
	}
	access, err := entity.ParsePermission(values[metaPermission])
	if err != nil {
		return err
	}
	p.access = access
	p.meta = host.PackMetadata{
		ID:           values[metaID],
		Name:         values[metaName],
		Title:        values[metaTitle],
		PackageType:  values[metaPackageType],
		PackageName:  values[metaPackageName],
		DocumentName: values[metaDocumentName],
	}
	if p.meta.DocumentName == "" {
		p.meta.DocumentName = host.DocumentItem
	}
	if p.meta.Title == "" {
		p.meta.Title = p.meta.ID
	}
	return nil
}

// Close closes the database handle.
func (p *Pack) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Path returns the database file.
func (p *Pack) Path() string { return p.path }

// Metadata returns the pack metadata.
func (p *Pack) Metadata() host.PackMetadata { return p.meta }

// Permission returns the stored access level.
func (p *Pack) Permission() entity.Permission { return p.access }

// Index returns every item with its data reduced to fields.
func (p *Pack) Index(ctx context.Context, fields []string) ([]entity.Entity, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, type, name, img, system, labels FROM items ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query pack items: %w", err)
	}
	defer rows.Close()

	var out []entity.Entity
	for rows.Next() {
		e, err := p.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, host.Project(e, fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query pack items: %w", err)
	}
	return out, nil
}

// Get returns one full item by local id.
func (p *Pack) Get(ctx context.Context, id string) (entity.Entity, error) {
	row := p.db.QueryRowContext(ctx, `SELECT id, type, name, img, system, labels FROM items WHERE id = ?`, id)
	e, err := p.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Entity{}, apperr.New(apperr.CodeEntityNotFound, entity.PackItemID(p.meta.ID, id))
	}
	if err != nil {
		return entity.Entity{}, err
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (p *Pack) scan(s scanner) (entity.Entity, error) {
	var id, typ, name, img, system, labels string
	if err := s.Scan(&id, &typ, &name, &img, &system, &labels); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Entity{}, err
		}
		return entity.Entity{}, fmt.Errorf("scan pack item: %w", err)
	}
	e := entity.Entity{
		ID:    entity.PackItemID(p.meta.ID, id),
		Type:  typ,
		Name:  name,
		Img:   img,
		Scope: entity.PackScope(p.meta.ID, p.meta.Title, p.meta.Name),
	}
	if err := decodeBlob(system, &e.System); err != nil {
		return entity.Entity{}, fmt.Errorf("item %s system: %w", id, err)
	}
	if err := decodeBlob(labels, &e.Labels); err != nil {
		return entity.Entity{}, fmt.Errorf("item %s labels: %w", id, err)
	}
	return e, nil
}

func decodeBlob(raw string, dst *map[string]any) error {
	if raw == "" || raw == "{}" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}
