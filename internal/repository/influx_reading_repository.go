package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"fanmon/internal/models"
)

const readingMeasurement = "fan_readings"

// InfluxReadingRepository persists readings as InfluxDB points.
type InfluxReadingRepository struct {
	client   influxdb2.Client
	org      string
	bucket   string
	errorLog *log.Logger
}

// NewInfluxReadingRepository creates a new InfluxReadingRepository.
func NewInfluxReadingRepository(client influxdb2.Client, org, bucket string, errorLog *log.Logger) *InfluxReadingRepository {
	return &InfluxReadingRepository{
		client:   client,
		org:      org,
		bucket:   bucket,
		errorLog: errorLog,
	}
}

// EnsureBucket creates the readings bucket if it does not exist yet.
func (r *InfluxReadingRepository) EnsureBucket(ctx context.Context) error {
	bucketsAPI := r.client.BucketsAPI()
	if _, err := bucketsAPI.FindBucketByName(ctx, r.bucket); err == nil {
		return nil
	}

	orgAPI := r.client.OrganizationsAPI()
	org, err := orgAPI.FindOrganizationByName(ctx, r.org)
	if err != nil {
		return fmt.Errorf("finding organization '%s': %w", r.org, err)
	}
	if org == nil {
		return fmt.Errorf("organization '%s' not found", r.org)
	}

	if _, err := bucketsAPI.CreateBucketWithName(ctx, org, r.bucket); err != nil {
		return fmt.Errorf("creating bucket '%s': %w", r.bucket, err)
	}
	return nil
}

// Insert writes one reading. The timestamp is taken as given; callers
// stamp it before persisting.
func (r *InfluxReadingRepository) Insert(ctx context.Context, temperature, fanSpeed float64, ts time.Time) (models.Reading, error) {
	writeAPI := r.client.WriteAPIBlocking(r.org, r.bucket)

	point := influxdb2.NewPoint(
		readingMeasurement,
		nil,
		map[string]interface{}{
			"temperature": temperature,
			"fanSpeed":    fanSpeed,
		},
		ts,
	)

	if err := writeAPI.WritePoint(ctx, point); err != nil {
		r.errorLog.Printf("writing reading to InfluxDB: %v", err)
		return models.Reading{}, models.NewStorageError(err)
	}

	return models.Reading{
		Temperature: temperature,
		FanSpeed:    fanSpeed,
		Timestamp:   ts,
	}, nil
}

// ListRecent returns the newest readings first, at most limit of them.
func (r *InfluxReadingRepository) ListRecent(ctx context.Context, limit int) ([]models.Reading, error) {
	queryAPI := r.client.QueryAPI(r.org)

	result, err := queryAPI.Query(ctx, recentReadingsQuery(r.bucket, limit))
	if err != nil {
		r.errorLog.Printf("querying readings from InfluxDB: %v", err)
		return nil, models.NewStorageError(err)
	}

	readings := []models.Reading{}
	for result.Next() {
		record := result.Record()

		reading := models.Reading{Timestamp: record.Time()}
		if v, ok := record.ValueByKey("temperature").(float64); ok {
			reading.Temperature = v
		}
		if v, ok := record.ValueByKey("fanSpeed").(float64); ok {
			reading.FanSpeed = v
		}
		readings = append(readings, reading)
	}
	if result.Err() != nil {
		r.errorLog.Printf("reading query results: %v", result.Err())
		return nil, models.NewStorageError(result.Err())
	}

	return readings, nil
}

// recentReadingsQuery pivots the temperature and fanSpeed fields back
// into one row per sample before sorting and truncating.
func recentReadingsQuery(bucket string, limit int) string {
	return fmt.Sprintf(`from(bucket: "%s")
	|> range(start: 0)
	|> filter(fn: (r) => r._measurement == "%s")
	|> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
	|> sort(columns: ["_time"], desc: true)
	|> limit(n: %d)`, bucket, readingMeasurement, limit)
}
