// services/index_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/qdrant/go-client/qdrant"
	"github.com/typesense/typesense-go/v2/typesense"
	typesenseapi "github.com/typesense/typesense-go/v2/typesense/api"

	"github.com/brandpulse-ai/brandpulse-workflows/internal/models"
)

// ReportsCollection is the shared collection name in both indexes.
const ReportsCollection = "brand_reports"

const embeddingDimensions = 1536

type indexService struct {
	qdrantClient    *qdrant.Client
	typesenseClient *typesense.Client
	openAIClient    *openai.Client
}

// NewIndexService creates the report indexing service: Typesense for
// keyword search over report summaries, Qdrant for similar-brand lookup
// via OpenAI embeddings.
func NewIndexService(qdrantClient *qdrant.Client, typesenseClient *typesense.Client, openAIClient *openai.Client) IndexService {
	return &indexService{
		qdrantClient:    qdrantClient,
		typesenseClient: typesenseClient,
		openAIClient:    openAIClient,
	}
}

func (s *indexService) EnsureCollections(ctx context.Context) error {
	err := s.qdrantClient.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: ReportsCollection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     embeddingDimensions,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("failed to create Qdrant collection: %w", err)
	}

	facet := true
	sort := true
	defaultSortField := "created_at"
	reportsSchema := &typesenseapi.CollectionSchema{
		Name: ReportsCollection,
		Fields: []typesenseapi.Field{
			{Name: "id", Type: "string"},
			{Name: "brand", Type: "string", Facet: &facet},
			{Name: "category", Type: "string", Facet: &facet},
			{Name: "summary", Type: "string"},
			{Name: "created_at", Type: "int64", Sort: &sort},
		},
		DefaultSortingField: &defaultSortField,
	}
	_, err = s.typesenseClient.Collections().Create(ctx, reportsSchema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("failed to create Typesense collection: %w", err)
	}

	return nil
}

func (s *indexService) IndexReport(ctx context.Context, reportID uuid.UUID, report *models.StructuredReport) error {
	summary := report.ExecutiveSnapshot.Summary

	vector, err := s.embed(ctx, fmt.Sprintf("%s (%s): %s", report.Brand, report.Category, summary))
	if err != nil {
		return fmt.Errorf("failed to embed report summary: %w", err)
	}

	_, err = s.qdrantClient.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: ReportsCollection,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewID(reportID.String()),
			Vectors: qdrant.NewVectors(vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"brand":    report.Brand,
				"category": report.Category,
			}),
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert report vector: %w", err)
	}

	document := map[string]any{
		"id":         reportID.String(),
		"brand":      report.Brand,
		"category":   report.Category,
		"summary":    summary,
		"created_at": time.Now().Unix(),
	}
	if _, err := s.typesenseClient.Collection(ReportsCollection).Documents().Upsert(ctx, document); err != nil {
		return fmt.Errorf("failed to upsert report document: %w", err)
	}

	return nil
}

func (s *indexService) embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.openAIClient.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: openai.EmbeddingModelTextEmbedding3Small,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	vector := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}
