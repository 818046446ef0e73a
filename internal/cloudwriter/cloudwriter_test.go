package cloudwriter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var errNoSuchKey = errors.New("no such key")

type fakeS3 map[string][]byte

func (f fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errNoSuchKey
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func TestS3WriterUploadsOnClose(t *testing.T) {
	store := fakeS3{}
	factory := NewS3WriterFactoryWithClient(store)

	w, err := factory.NewWriter(context.Background(), "bucket", "carts/data.parquet")
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.Write([]byte("PAR1"))
	w.Write([]byte("rows"))
	if len(store) != 0 {
		t.Fatal("object uploaded before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := string(store["bucket/carts/data.parquet"]); got != "PAR1rows" {
		t.Errorf("uploaded %q", got)
	}
}

func TestMenuSnapshotRoundTrip(t *testing.T) {
	factory := NewS3WriterFactoryWithClient(fakeS3{})
	ctx := context.Background()

	menu := models.Menu{
		Categories: []models.Category{{
			ID:   1,
			Name: "Burgers",
			Items: []models.CatalogItem{{
				ID:    1,
				Name:  "Burger",
				Price: decimal.RequireFromString("10.50"),
				OptionGroups: []models.CatalogOptionGroup{{
					ID: 5, Name: "Toppings", IncludedOptions: 1, MaxOptions: 2,
					OptionItems: []models.CatalogOptionItem{{ID: 10, Name: "Cheese", Price: decimal.RequireFromString("2")}},
				}},
			}},
		}},
		SoldOut: []int{10},
	}

	if err := factory.SaveMenu(ctx, "menus", "store-1.json", menu); err != nil {
		t.Fatalf("SaveMenu: %v", err)
	}
	got, err := factory.LoadMenu(ctx, "menus", "store-1.json")
	if err != nil {
		t.Fatalf("LoadMenu: %v", err)
	}
	if diff := cmp.Diff(menu, got, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("menu (-want +got):\n%s", diff)
	}

	if _, err := factory.LoadMenu(ctx, "menus", "missing.json"); !errors.Is(err, errNoSuchKey) {
		t.Errorf("LoadMenu missing object error = %v", err)
	}
}

func TestNewFactoryRejectsUnknownProvider(t *testing.T) {
	if _, err := NewFactory(context.Background(), models.CloudStorageConfig{Provider: "azure"}); err == nil {
		t.Error("unknown provider accepted")
	}
}
