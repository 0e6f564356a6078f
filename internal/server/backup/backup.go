// Package backup periodically exports the step ledger as a JSON snapshot to
// an S3-compatible bucket. The export is a non-critical mirror: failures are
// logged and the next tick tries again, but no operation is retried within a
// tick and nothing blocks the serving path.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/steptrack/internal/logging"
	sc "github.com/dmitrijs2005/steptrack/internal/server/config"
	"github.com/dmitrijs2005/steptrack/internal/server/steps"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

type Exporter struct {
	source steps.Dumper
	config *sc.Config
	logger logging.Logger
}

func NewExporter(source steps.Dumper, config *sc.Config, logger logging.Logger) *Exporter {
	return &Exporter{
		source: source,
		config: config,
		logger: logger.With("component", "backup"),
	}
}

// storageKey spreads exports by date so buckets stay listable.
func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("ledger/%d/%02d/%02d/%v.json", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (e *Exporter) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(e.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.config.S3RootUser,
			e.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(e.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// ExportOnce dumps the whole ledger and uploads it under a fresh key.
func (e *Exporter) ExportOnce(ctx context.Context) (string, error) {
	entries, err := e.source.Dump(ctx)
	if err != nil {
		return "", fmt.Errorf("ledger dump error: %w", err)
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("snapshot marshal error: %w", err)
	}

	client, err := e.getClient()
	if err != nil {
		return "", fmt.Errorf("s3 client error: %w", err)
	}

	bucket := e.config.S3Bucket
	key := storageKey()

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put error: %w", err)
	}

	return key, nil
}

// Run exports on every tick until ctx is cancelled.
func (e *Exporter) Run(ctx context.Context) {
	e.logger.Info(ctx, "ledger backup scheduler started", "interval", e.config.BackupInterval.String(), "bucket", e.config.S3Bucket)

	ticker := time.NewTicker(e.config.BackupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			key, err := e.ExportOnce(ctx)
			if err != nil {
				e.logger.Error(ctx, "ledger backup failed", "error", err.Error())
				continue
			}
			e.logger.Info(ctx, "ledger backup uploaded", "key", key)

		case <-ctx.Done():
			e.logger.Info(ctx, "ledger backup scheduler stopped")
			return
		}
	}
}
