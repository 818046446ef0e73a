package cloudwriter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chrisdamba/foodcart/internal/models"
)

// LoadMenu downloads a JSON catalog snapshot.
func (f *S3WriterFactory) LoadMenu(ctx context.Context, bucket, key string) (models.Menu, error) {
	var menu models.Menu
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return menu, fmt.Errorf("unable to download s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	if err := json.NewDecoder(out.Body).Decode(&menu); err != nil {
		return menu, fmt.Errorf("invalid catalog snapshot s3://%s/%s: %w", bucket, key, err)
	}
	return menu, nil
}

// SaveMenu uploads menu as a JSON catalog snapshot.
func (f *S3WriterFactory) SaveMenu(ctx context.Context, bucket, key string, menu models.Menu) error {
	w, err := f.NewWriter(ctx, bucket, key)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(w).Encode(menu); err != nil {
		return fmt.Errorf("error encoding catalog snapshot: %w", err)
	}
	return w.Close()
}
