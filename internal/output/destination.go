package output

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/chrisdamba/foodcart/internal/cloudwriter"
	"github.com/chrisdamba/foodcart/internal/models"
	"go.uber.org/zap"
)

// Destination receives JSON encoded events by topic.
type Destination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// Emit encodes event and writes it to topic.
func Emit(dest Destination, topic string, event interface{}) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error encoding %s event: %w", topic, err)
	}
	if err := dest.WriteMessage(topic, msg); err != nil {
		return fmt.Errorf("error writing %s event: %w", topic, err)
	}
	return nil
}

// NewDestination picks the event sink described by cfg. Kafka wins when it is
// enabled, otherwise the configured output destination is used.
func NewDestination(ctx context.Context, cfg *models.Config, logger *zap.Logger) (Destination, error) {
	if cfg.Kafka.Enabled {
		return NewKafkaOutput(cfg, logger)
	}

	switch cfg.Output.Destination {
	case models.OutputParquet:
		var factory cloudwriter.CloudWriterFactory
		if cfg.CloudStorage.Provider != "" {
			f, err := cloudwriter.NewFactory(ctx, cfg.CloudStorage)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			factory = f
		}
		return NewParquetOutput(ctx, cfg.Output, factory, cfg.CloudStorage.BucketName, logger), nil
	case models.OutputJSON:
		return NewJSONOutput(cfg.Output.Path, cfg.Output.Folder), nil
	case models.OutputConsole, "":
		return NewConsoleOutput(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported output destination: %s", cfg.Output.Destination)
	}
}
