package deps

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/avelling/resman/internal/logger"
	"github.com/avelling/resman/internal/store"
	"github.com/avelling/resman/internal/store/rediscache"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Store store.ResourceStore   // resource persistence gateway
	Cache *rediscache.ListCache // optional read-through list cache (nil = disabled)

	MongoClient *mongo.Client // used by readiness checks
	RedisClient *redis.Client // nil when the cache is disabled

	ImportMaxBytes int64 // max accepted upload size for bulk import
}
