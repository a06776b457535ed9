// Package interactive runs the console conversation between a user and the
// memory agent.
package interactive

// Fixed identity of the console session
const (
	DefaultAgentID = "demo-agent"
	DefaultUserID  = "demo-user"
)

// Identity scopes every memory operation of a session. It is set once at
// startup and never changes
type Identity struct {
	AgentID string
	UserID  string
}

// DefaultIdentity returns the fixed console identity
func DefaultIdentity() Identity {
	return Identity{AgentID: DefaultAgentID, UserID: DefaultUserID}
}
