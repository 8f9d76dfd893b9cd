package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/advocacy-resources/advo-sub001/internal/domain/providers"
	"github.com/advocacy-resources/advo-sub001/internal/infrastructure/observability"
)

// BatchGeocodeResult is the outcome of one batch geocode run. Every input
// lands in exactly one of the two maps, so SuccessCount+ErrorCount always
// equals TotalProcessed.
type BatchGeocodeResult struct {
	Results        map[string]providers.Coordinates `json:"results"`
	Errors         map[string]string                `json:"errors"`
	TotalProcessed int                              `json:"totalProcessed"`
	SuccessCount   int                              `json:"successCount"`
	ErrorCount     int                              `json:"errorCount"`
}

// GeocodingService wraps the geocoding provider with the sentinel policy
// and the rate-limited batch orchestrator.
type GeocodingService struct {
	provider     providers.GeocodingProvider
	providerName string
	batchSize    int
	batchDelay   time.Duration
	metrics      *observability.Metrics
}

// NewGeocodingService creates a new geocoding service
func NewGeocodingService(provider providers.GeocodingProvider, providerName string, batchSize int, batchDelay time.Duration, metrics *observability.Metrics) *GeocodingService {
	if batchSize <= 0 {
		batchSize = 10
	}
	if batchDelay < 0 {
		batchDelay = 0
	}
	return &GeocodingService{
		provider:     provider,
		providerName: providerName,
		batchSize:    batchSize,
		batchDelay:   batchDelay,
		metrics:      metrics,
	}
}

// Locate resolves an address to coordinates, absorbing every failure to the
// (0, 0) sentinel. Callers must treat the sentinel as "unresolved", never as
// a real position.
func (s *GeocodingService) Locate(ctx context.Context, address string) providers.Coordinates {
	if s.provider == nil {
		return providers.Coordinates{}
	}
	coords, err := s.provider.Geocode(ctx, address)
	if err != nil {
		log.Printf("Warning: geocoding failed for %q: %v", address, err)
		s.recordMetric(ctx, true)
		return providers.Coordinates{}
	}
	s.recordMetric(ctx, false)
	return coords
}

// BatchGeocode geocodes the inputs in fixed-size batches. All calls within
// a batch run concurrently; a fixed delay separates batches to respect the
// upstream rate limit. One item failing never aborts the batch or the run.
func (s *GeocodingService) BatchGeocode(ctx context.Context, inputs []string) *BatchGeocodeResult {
	result := &BatchGeocodeResult{
		Results: make(map[string]providers.Coordinates),
		Errors:  make(map[string]string),
	}

	var mu sync.Mutex
	for start := 0; start < len(inputs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(inputs) {
			end = len(inputs)
		}

		var wg sync.WaitGroup
		for _, input := range inputs[start:end] {
			wg.Add(1)
			go func(input string) {
				defer wg.Done()
				coords, err := s.provider.Geocode(ctx, input)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					result.Errors[input] = err.Error()
					return
				}
				result.Results[input] = coords
			}(input)
		}
		wg.Wait()

		if end < len(inputs) {
			select {
			case <-ctx.Done():
				// Mark everything not yet attempted as cancelled.
				mu.Lock()
				for _, input := range inputs[end:] {
					result.Errors[input] = ctx.Err().Error()
				}
				mu.Unlock()
				s.finalize(ctx, result, len(inputs))
				return result
			case <-time.After(s.batchDelay):
			}
		}
	}

	s.finalize(ctx, result, len(inputs))
	return result
}

func (s *GeocodingService) finalize(ctx context.Context, result *BatchGeocodeResult, total int) {
	result.TotalProcessed = total
	result.SuccessCount = len(result.Results)
	result.ErrorCount = len(result.Errors)
	for i := 0; i < result.SuccessCount; i++ {
		s.recordMetric(ctx, false)
	}
	for i := 0; i < result.ErrorCount; i++ {
		s.recordMetric(ctx, true)
	}
}

func (s *GeocodingService) recordMetric(ctx context.Context, failed bool) {
	if s.metrics != nil {
		observability.RecordGeocodeMetric(ctx, s.metrics, s.providerName, failed)
	}
}
