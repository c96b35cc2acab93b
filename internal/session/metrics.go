package session

import "time"

// TokenMetrics holds the cumulative counters for one session.
//
// EstimatedTokensSaved is net savings versus "everything always injected":
// pruning and purging credit it, activation debits it, so it may go
// negative while many schemas are live. All other counters only grow until
// an explicit reset replaces the whole struct.
type TokenMetrics struct {
	ToolsActivated       int       `json:"tools_activated"`
	SchemasInjected      int       `json:"schemas_injected"`
	EstimatedTokensSaved int       `json:"estimated_tokens_saved"`
	ToolCallsIntercepted int       `json:"tool_calls_intercepted"`
	ContextPrunes        int       `json:"context_prunes"`
	LastReset            time.Time `json:"last_reset"`
}

// NewTokenMetrics returns a zeroed metrics instance stamped with now.
func NewTokenMetrics() TokenMetrics {
	return TokenMetrics{LastReset: time.Now()}
}
