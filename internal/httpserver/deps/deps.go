package deps

import (
	"time"

	gql "github.com/graphql-go/graphql"

	"github.com/MrSnakeDoc/secdash/internal/dashboard"
	"github.com/MrSnakeDoc/secdash/internal/index"
	"github.com/MrSnakeDoc/secdash/internal/logger"
	"github.com/MrSnakeDoc/secdash/internal/presentation"
	redisstore "github.com/MrSnakeDoc/secdash/internal/store/redis"
	"github.com/MrSnakeDoc/secdash/internal/utils"
	"github.com/MrSnakeDoc/secdash/internal/version"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Build        version.Info         // Build metadata reported by /healthz
	TimeNow      func() time.Time     // for testing, defaults to time.Now
	AllowedHosts []string             // Host headers allowed to access the server
	AllowedNets  *utils.IPMatcher     // Clients allowed on readyz/infra (nil = no restriction)
	TrustProxy   bool                 // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RedisStore   *redisstore.Store    // Redis record list and view cache (nil if redis is disabled)
	MemoryIndex  *index.MemoryIndex   // In-memory record store
	Dashboard    *dashboard.Service   // Filtered views over the record store
	UI           *presentation.Config // Display texts
	Schema       *gql.Schema          // GraphQL schema (nil = endpoint disabled)
	CORSOrigins  []string             // Origins allowed for browser calls (empty = CORS disabled)
	RateLimit    RateLimit            // Per client IP limits on the API routes
}

// RateLimit holds the token bucket settings of the API routes.
type RateLimit struct {
	Burst  int // 0 = no limit
	PerMin int
}
