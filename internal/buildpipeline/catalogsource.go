// Package buildpipeline implements the build-side orchestration: fetch a
// raw catalog export from S3, build and serialize the index, upload it,
// and publish a completion notification.
package buildpipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/brightlane/fuzzyindex/internal/catalog"
)

// CatalogSource fetches the raw product export from S3 and decodes it
// into the RawProduct shape internal/catalog expects.
type CatalogSource struct {
	s3     *s3.Client
	bucket string
}

// NewCatalogSource constructs a CatalogSource bound to client and bucket.
func NewCatalogSource(client *s3.Client, bucket string) *CatalogSource {
	return &CatalogSource{s3: client, bucket: bucket}
}

// rawCatalogRecord is the external JSON ingestion schema, needed only to
// populate catalog.RawProduct at the build boundary.
type rawCatalogRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Vendor      string  `json:"vendor"`
	PriceAmount float32 `json:"price_amount"`
	ImageURL    string  `json:"image_url"`
}

// Fetch downloads and decodes the catalog export stored at key.
func (s *CatalogSource) Fetch(ctx context.Context, key string) ([]catalog.RawProduct, error) {
	out, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("buildpipeline: fetch catalog object %s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("buildpipeline: read catalog object body: %w", err)
	}

	var records []rawCatalogRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("buildpipeline: decode catalog export json: %w", err)
	}

	raw := make([]catalog.RawProduct, 0, len(records))
	for _, r := range records {
		raw = append(raw, catalog.RawProduct{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Vendor:      r.Vendor,
			PriceAmount: r.PriceAmount,
			ImageURL:    r.ImageURL,
		})
	}
	return raw, nil
}

// UploadIndex uploads the serialized index bytes to key.
func (s *CatalogSource) UploadIndex(ctx context.Context, bucket, key string, data []byte) error {
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("buildpipeline: upload index object %s/%s: %w", bucket, key, err)
	}
	return nil
}
