package auth

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Success   bool
	Error     string
	Rejected  bool
	TimedOut  bool
	Cancelled bool
	Throttled bool
}

// Identity is the single username/password pair the static provider accepts
type Identity struct {
	Username string
	Password string
}

// DefaultIdentity is accepted when no override is configured
var DefaultIdentity = Identity{
	Username: "User@yahoo.co",
	Password: "P@ssword1",
}
