package errorx

type Code uint64

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Refresh token codes
	TokenExpired Code = 200002

	// Claim code codes
	InvalidOrUsedCode   Code = 500001
	PrerequisiteMissing Code = 500002
	ReputationTooLow    Code = 500003
)
