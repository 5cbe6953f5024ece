package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"ptm-api/config"
)

// NewS3Client erstellt einen S3-Client für den Statistik-Bucket (S3-kompatibler Endpoint).
func NewS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.StatsS3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.StatsS3Key, cfg.StatsS3Secret, "")),
	}
	if cfg.StatsS3URL != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:               cfg.StatsS3URL,
					SigningRegion:     cfg.StatsS3Region,
					HostnameImmutable: true,
				}, nil
			},
		)
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg), nil
}

// Bucket kapselt die Zugriffe auf genau einen Bucket.
type Bucket struct {
	Client *s3.Client
	Name   string
}

func NewBucket(ctx context.Context, cfg *config.Config) (*Bucket, error) {
	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Bucket{Client: client, Name: cfg.StatsS3Bucket}, nil
}

func (b *Bucket) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := b.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.Name),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

func (b *Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := b.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.Name),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// Object ist ein Listeneintrag.
type Object struct {
	Key          string
	LastModified time.Time
}

// List liefert alle Objekte mit prefix, neueste zuerst.
func (b *Bucket) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	p := s3.NewListObjectsV2Paginator(b.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.Name),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			o := Object{Key: aws.ToString(obj.Key)}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
		}
	}
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].LastModified.After(objects[j].LastModified)
	})
	return objects, nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	_, err := b.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.Name),
		Key:    aws.String(key),
	})
	return err
}

// Rotate löscht alle Objekte mit prefix außer den keep neuesten.
// Zurückgegeben werden die gelöschten Keys; Löschfehler brechen nicht ab.
func (b *Bucket) Rotate(ctx context.Context, prefix string, keep int) ([]string, error) {
	objects, err := b.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	// Fehlgeschlagene Löschungen brechen die Rotation nicht ab.
	var deleted []string
	var errs []error
	for _, obj := range KeysToRotate(objects, keep) {
		if err := b.Delete(ctx, obj); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", obj, err))
			continue
		}
		deleted = append(deleted, obj)
	}
	return deleted, errors.Join(errs...)
}

// KeysToRotate: objects müssen neueste zuerst sortiert sein.
func KeysToRotate(objects []Object, keep int) []string {
	if keep < 0 {
		keep = 0
	}
	if len(objects) <= keep {
		return nil
	}
	keys := make([]string, 0, len(objects)-keep)
	for _, obj := range objects[keep:] {
		keys = append(keys, obj.Key)
	}
	return keys
}
