package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/chrisdamba/foodcart/internal/cloudwriter"
	"github.com/chrisdamba/foodcart/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"
)

// CloudParquetFile adapts a write-only cloud object to source.ParquetFile.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

// Open returns the receiver: the object is created by the first write.
func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

type parquetPartition struct {
	mu     sync.Mutex
	writer *writer.ParquetWriter
	file   source.ParquetFile
}

// ParquetOutput writes one parquet file per topic and hourly partition, either
// on local disk or through a cloud writer.
type ParquetOutput struct {
	ctx                context.Context
	basePath           string
	folder             string
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
	logger             *zap.Logger

	mu         sync.Mutex
	partitions map[string]*parquetPartition
}

// NewParquetOutput writes to local disk when factory is nil. Existing local
// parquet files under the output folder are removed.
func NewParquetOutput(ctx context.Context, cfg models.OutputConfig, factory cloudwriter.CloudWriterFactory, bucket string, logger *zap.Logger) *ParquetOutput {
	p := &ParquetOutput{
		ctx:                ctx,
		basePath:           cfg.Path,
		folder:             cfg.Folder,
		cloudWriterFactory: factory,
		cloudBucketName:    bucket,
		logger:             logger,
		partitions:         make(map[string]*parquetPartition),
	}
	if factory == nil {
		p.cleanup()
	}
	return p
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	h, err := readHeader(msg)
	if err != nil {
		return err
	}
	row, err := decodeRow(topic, msg)
	if err != nil {
		return err
	}

	partitionPath := partition(h.Timestamp)
	key := fmt.Sprintf("%s_%s", topic, partitionPath)

	p.mu.Lock()
	part, ok := p.partitions[key]
	if !ok {
		part, err = p.createPartition(topic, partitionPath)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create new writer: %w", err)
		}
		p.partitions[key] = part
	}
	p.mu.Unlock()

	part.mu.Lock()
	defer part.mu.Unlock()
	if err := part.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createPartition(topic, partitionPath string) (*parquetPartition, error) {
	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		objectPath := path.Join(p.folder, topic, partitionPath, "data.parquet")
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.ctx, p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cloudWriter)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder, topic, filepath.FromSlash(partitionPath))
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	schema, err := schemaFor(topic)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, schema, 4)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	return &parquetPartition{writer: pw, file: fw}, nil
}

func (p *ParquetOutput) cleanup() {
	fullPath := filepath.Join(p.basePath, p.folder)
	err := filepath.Walk(fullPath, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(name) == ".parquet" {
			return os.Remove(name)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		p.logger.Warn("error cleaning up parquet files", zap.String("path", fullPath), zap.Error(err))
	}
}

// Close flushes every partition. Files are only valid parquet after Close.
func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, part := range p.partitions {
		part.mu.Lock()
		if err := part.writer.WriteStop(); err != nil {
			lastErr = err
			p.logger.Error("error closing writer", zap.String("key", key), zap.Error(err))
		}
		if err := part.file.Close(); err != nil {
			lastErr = err
			p.logger.Error("error closing file", zap.String("key", key), zap.Error(err))
		}
		part.mu.Unlock()
		delete(p.partitions, key)
	}
	return lastErr
}
