package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"serenity/utils"
)

// WatchCollection opens a change stream on the collection and returns a
// channel that ticks once per remote change event. The channel is closed
// when the context is cancelled or the stream fails; consumers decide how
// to degrade.
func WatchCollection(ctx context.Context, coll *mongo.Collection) (<-chan struct{}, error) {
	stream, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	events := make(chan struct{}, 1)
	go func() {
		defer close(events)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			select {
			case events <- struct{}{}:
			default:
				// A pending tick already covers this change; the consumer
				// re-fetches the full set anyway.
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			utils.GetLogger().Error("change stream terminated",
				zap.String("collection", coll.Name()), zap.Error(err))
		}
	}()
	return events, nil
}
