package generator

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/chrisdamba/mealgen/internal/cloudwriter"
	"github.com/chrisdamba/mealgen/internal/generator/producers"
	"github.com/chrisdamba/mealgen/internal/models"
	"github.com/chrisdamba/mealgen/internal/output"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
	"gopkg.in/yaml.v3"
)

type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleOutput struct {
	Out io.Writer
}

type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

type CSVOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
	writers  map[string]*csv.Writer
}

type YAMLOutput struct {
	basePath string
	folder   string
	files    map[string]*os.File
	encoders map[string]*yaml.Encoder
}

type ParquetOutput struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
		writers:  make(map[string]*csv.Writer),
	}
}

func NewYAMLOutput(basePath, folder string) *YAMLOutput {
	return &YAMLOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
		encoders: make(map[string]*yaml.Encoder),
	}
}

func NewParquetOutput(ctx context.Context, config *models.Config) (*ParquetOutput, error) {
	p := &ParquetOutput{
		basePath: config.OutputPath,
		folder:   config.OutputFolder,
		writers:  make(map[string]*writer.ParquetWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if config.OutputDestination != "" && config.OutputDestination != models.OutputDestinationLocal {
		switch config.CloudStorage.Provider {
		case models.CloudProviderS3:
			factory, err := cloudwriter.NewS3WriterFactory(ctx, config.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = config.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
	}

	return p, nil
}

func NewCloudParquetFile(cloudWriter cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cloudWriter}
}

// partition is the run-scoped directory a record lands in, relative to the base path.
func partition(folder, topic string, record models.OrderRowRecord) string {
	return filepath.Join(folder, topic, "run="+record.RunID)
}

func decodeRecord(msg []byte) (models.OrderRowRecord, error) {
	var record models.OrderRowRecord
	if err := json.Unmarshal(msg, &record); err != nil {
		return record, err
	}
	if record.RunID == "" {
		return record, errors.New("record has no run id")
	}
	return record, nil
}

// openPartitionFile creates name inside the record's partition, creating directories as needed.
func openPartitionFile(basePath, folder, topic, name string, record models.OrderRowRecord) (string, *os.File, error) {
	dir := filepath.Join(basePath, partition(folder, topic, record))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", nil, err
	}
	file, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", nil, err
	}
	return dir, file, nil
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	if _, err := fmt.Fprintf(out, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	record, err := decodeRecord(msg)
	if err != nil {
		return err
	}

	fileKey := topic + "_" + record.RunID
	file, ok := j.files[fileKey]
	if !ok {
		_, file, err = openPartitionFile(j.basePath, j.folder, topic, "data.json", record)
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONOutput) Close() error {
	var errs []error
	for _, file := range j.files {
		errs = append(errs, file.Close())
	}
	return errors.Join(errs...)
}

func (c *CSVOutput) WriteMessage(topic string, msg []byte) error {
	record, err := decodeRecord(msg)
	if err != nil {
		return err
	}

	fileKey := topic + "_" + record.RunID
	csvWriter, ok := c.writers[fileKey]
	if !ok {
		_, file, err := openPartitionFile(c.basePath, c.folder, topic, "data.csv", record)
		if err != nil {
			return err
		}
		csvWriter = csv.NewWriter(file)
		c.files[fileKey] = file
		c.writers[fileKey] = csvWriter

		if err := csvWriter.Write(models.RecordColumns); err != nil {
			return err
		}
	}

	if err := csvWriter.Write(record.Strings()); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

func (c *CSVOutput) Close() error {
	var errs []error
	for key, csvWriter := range c.writers {
		csvWriter.Flush()
		errs = append(errs, csvWriter.Error(), c.files[key].Close())
	}
	return errors.Join(errs...)
}

func (y *YAMLOutput) WriteMessage(topic string, msg []byte) error {
	record, err := decodeRecord(msg)
	if err != nil {
		return err
	}

	fileKey := topic + "_" + record.RunID
	enc, ok := y.encoders[fileKey]
	if !ok {
		_, file, err := openPartitionFile(y.basePath, y.folder, topic, "data.yaml", record)
		if err != nil {
			return err
		}
		enc = yaml.NewEncoder(file)
		enc.SetIndent(2)
		y.files[fileKey] = file
		y.encoders[fileKey] = enc
	}
	return enc.Encode(record)
}

func (y *YAMLOutput) Close() error {
	var errs []error
	for key, enc := range y.encoders {
		errs = append(errs, enc.Close(), y.files[key].Close())
	}
	return errors.Join(errs...)
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	record, err := decodeRecord(msg)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	writerKey := topic + "_" + record.RunID
	pw, ok := p.writers[writerKey]
	if !ok {
		pw, err = p.createNewWriter(writerKey, topic, record)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	if err := pw.Write(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createNewWriter(writerKey, topic string, record models.OrderRowRecord) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	if p.cloudWriterFactory != nil {
		objectPath := filepath.ToSlash(filepath.Join(partition(p.folder, topic, record), "data.parquet"))
		cloudWriter, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = NewCloudParquetFile(cloudWriter)
	} else {
		dir := filepath.Join(p.basePath, partition(p.folder, topic, record))
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filepath.Join(dir, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(fw, new(models.OrderRowRecord), 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}

	p.writers[writerKey] = pw
	p.files[writerKey] = fw
	return pw, nil
}

func (p *ParquetOutput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			errs = append(errs, fmt.Errorf("closing writer for key %s: %w", key, err))
		}
		if f, ok := p.files[key]; ok {
			if err := f.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing file for key %s: %w", key, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Open returns the receiver: the object is created implicitly by the first write.
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

func (c *CloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (n int, err error) {
	n, err = c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

func (g *Generator) determineOutputDestination(ctx context.Context) (OutputDestination, error) {
	cfg := g.Config
	if cfg.KafkaEnabled {
		return producers.NewSaramaProducer(cfg, g.Log)
	}

	path := cfg.OutputPath
	if path == "" {
		path = "."
	}
	switch cfg.OutputFormat {
	case models.OutputFormatJSON:
		return NewJSONOutput(path, cfg.OutputFolder), nil
	case models.OutputFormatCSV:
		return NewCSVOutput(path, cfg.OutputFolder), nil
	case models.OutputFormatYAML:
		return NewYAMLOutput(path, cfg.OutputFolder), nil
	case models.OutputFormatParquet:
		return NewParquetOutput(ctx, cfg)
	case models.OutputFormatPostgres:
		return output.NewPostgresOutput(ctx, cfg.Database, g.Log)
	case models.OutputFormatConsole, "":
		return &ConsoleOutput{Out: os.Stdout}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}
}
