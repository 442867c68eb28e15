package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIToken        = errors.New("no API token configured, use 'clickfunnels login' or set CLICKFUNNELS_API_TOKEN")
	ErrNoWorkspace       = errors.New("no workspace selected, pass --workspace or run 'clickfunnels config set workspace'")
	ErrNoTeam            = errors.New("no team selected, pass --team or run 'clickfunnels config set team_id'")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidOutputType = errors.New("invalid output format")
)

// Input errors.
var (
	ErrInvalidParam         = errors.New("invalid parameter, expected key=value")
	ErrItemsNotArray        = errors.New("items file must contain a JSON array of objects")
	ErrUnknownLoader        = errors.New("unknown options loader")
	ErrUnknownResource      = errors.New("unknown resource")
	ErrEmptyToken           = errors.New("token must not be empty")
	ErrDirectoryTraversal   = errors.New("directory traversal detected in file path")
	ErrResourceRequired     = errors.New("--resource is required")
	ErrOperationRequired    = errors.New("--operation is required")
	ErrUnexpectedResultType = errors.New("unexpected result type")
)
