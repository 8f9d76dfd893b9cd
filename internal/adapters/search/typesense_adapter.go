package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/advocacy-resources/advo-sub001/internal/domain/entities"
	"github.com/advocacy-resources/advo-sub001/internal/domain/repositories"
	tsclient "github.com/advocacy-resources/advo-sub001/internal/infrastructure/clients/typesense"
)

const collectionName = tsclient.ResourcesCollection

// TypesenseAdapter implements full-text resource search using Typesense.
// Documents carry just enough to rank and filter; full records are always
// re-fetched from Postgres by ID.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.ResourceSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "description", Type: "string"},
			{Name: "categories", Type: "string[]", Facet: pointer.True()},
			{Name: "zip_code", Type: "string", Facet: pointer.True()},
			{Name: "target_audience", Type: "string[]", Facet: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	return nil
}

// Index upserts a resource document
func (a *TypesenseAdapter) Index(ctx context.Context, resource *entities.Resource) error {
	document := map[string]interface{}{
		"id":              resource.ID,
		"name":            resource.Name,
		"description":     resource.Description,
		"categories":      resource.Categories,
		"zip_code":        resource.Address.ZipCode,
		"target_audience": resource.TargetAudience,
		"created_at":      resource.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index resource: %w", err)
	}
	return nil
}

// Delete removes a resource from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete resource from index: %w", err)
	}
	return nil
}

// Search runs a fuzzy query over name and description and returns
// matching resource IDs ranked by relevance.
func (a *TypesenseAdapter) Search(ctx context.Context, query string, filter repositories.ResourceFilter) ([]string, error) {
	perPage := filter.Limit
	if perPage <= 0 {
		perPage = 50
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,description"),
		PerPage: pointer.Int(perPage),
	}

	if filterBy := buildFilterBy(filter); filterBy != "" {
		searchParams.FilterBy = pointer.String(filterBy)
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search resources: %w", err)
	}

	ids := []string{}
	if result.Hits == nil {
		return ids, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document
		if id, ok := doc["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func buildFilterBy(filter repositories.ResourceFilter) string {
	clauses := []string{}
	if filter.Category != "" {
		clauses = append(clauses, fmt.Sprintf("categories:=%s", filter.Category))
	}
	if filter.ZipCode != "" {
		clauses = append(clauses, fmt.Sprintf("zip_code:=%s", filter.ZipCode))
	}
	if len(filter.AgeRange) > 0 {
		clauses = append(clauses, fmt.Sprintf("target_audience:=[%s]", strings.Join(filter.AgeRange, ",")))
	}
	return strings.Join(clauses, " && ")
}
