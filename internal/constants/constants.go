package constants

// Centralized constants for headers, routes and log fields.
const (
	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Gin context key holding the authenticated player id
	ContextPlayerID = "playerID"

	// Issuer expected in gateway tokens
	TokenIssuer = "siegebot-gateway"
)

// Routes used by the backend router
const (
	RouteAPIPrefix   = "/api"
	RouteCommands    = "/commands"
	RoutePlayerByID  = "/players/:playerID"
	RouteLeaderboard = "/leaderboard"
	RouteVersion     = "/version"
	RouteHealth      = "/healthz"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrCommandRequired        = "text is required"
	ErrPlayerNotFound         = "Player not found"
	ErrFailedFetchPlayer      = "Failed to fetch player"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedHandleCommand    = "Failed to handle command"
	ErrInvalidLimit           = "limit must be a positive integer"

	ErrAuthRequired = "Authentication required"
	ErrInvalidToken = "Invalid token"
)

// Logging field names
const (
	LogFieldPlayerID  = "player_id"
	LogFieldSessionID = "session_id"
	LogFieldKind      = "kind"
	LogFieldOutcome   = "outcome"
	LogFieldCommand   = "command"
	LogFieldChannel   = "channel"
	LogFieldSource    = "source"
	LogFieldKey       = "key"
	LogFieldAddr      = "addr"
	LogFieldCount     = "count"
)
