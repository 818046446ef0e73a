package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/chrisdamba/foodcart/internal/cloudwriter"
	"github.com/chrisdamba/foodcart/internal/models"
)

// parseS3URI splits s3://bucket/key. ok is false for anything else.
func parseS3URI(uri string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(uri, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// readMenu loads a catalog snapshot from a local file or an s3:// URI.
func readMenu(ctx context.Context, source string) (models.Menu, error) {
	if bucket, key, ok := parseS3URI(source); ok {
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return models.Menu{}, err
		}
		return factory.LoadMenu(ctx, bucket, key)
	}

	var menu models.Menu
	if err := readJSONFile(source, &menu); err != nil {
		return models.Menu{}, fmt.Errorf("read menu: %w", err)
	}
	return menu, nil
}

func writeMenu(ctx context.Context, target string, menu models.Menu) error {
	if bucket, key, ok := parseS3URI(target); ok {
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return err
		}
		return factory.SaveMenu(ctx, bucket, key, menu)
	}

	data, err := json.MarshalIndent(menu, "", "  ")
	if err != nil {
		return fmt.Errorf("encode menu: %w", err)
	}
	return os.WriteFile(target, data, 0o644)
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
