package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/options"
)

const indexTimeout = 30 * time.Second

func uniqueIndex() *options.IndexOptions {
	return options.Index().SetUnique(true)
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
