package domain

import "strings"

// BucketEvent represents a MinIO bucket notification
type BucketEvent struct {
	EventName string `json:"EventName"`
	Key       string `json:"Key"`
	Records   []struct {
		EventName string `json:"eventName"`
		S3        struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key  string `json:"key"`
				Size int64  `json:"size"`
				ETag string `json:"eTag"`
			} `json:"object"`
		} `json:"s3"`
		EventTime string `json:"eventTime"`
	} `json:"Records"`
}

// BucketEventType is the classification of a bucket notification
type BucketEventType string

const (
	BucketEventObjectCreated BucketEventType = "ObjectCreated"
	BucketEventObjectRemoved BucketEventType = "ObjectRemoved"
	BucketEventUnknown       BucketEventType = "Unknown"
)

// ClassifyBucketEvent maps an S3 event name such as s3:ObjectCreated:Put to its type
func ClassifyBucketEvent(eventName string) BucketEventType {
	switch {
	case strings.HasPrefix(eventName, "s3:ObjectCreated:"):
		return BucketEventObjectCreated
	case strings.HasPrefix(eventName, "s3:ObjectRemoved:"):
		return BucketEventObjectRemoved
	default:
		return BucketEventUnknown
	}
}
