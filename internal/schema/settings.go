package schema

// Orchestration bounds. Neither value has a principled derivation; they
// are kept configurable rather than tuned.
const (
	// DefaultMaxRounds bounds chained tool rounds within one user turn.
	// It is the sole safeguard against an infinite tool-calling loop.
	DefaultMaxRounds = 5
	// DefaultHistoryWindow is the number of trailing history messages sent
	// to the gateway, regardless of total conversation length.
	DefaultHistoryWindow = 20
)

// OrchestratorSettings configures one orchestrator instance.
type OrchestratorSettings struct {
	Model         string
	MaxRounds     int
	HistoryWindow int
	MaxTokens     int
	Temperature   float64
}

// NewOrchestratorSettings fills in defaults for non-positive bounds.
func NewOrchestratorSettings(model string, maxRounds, historyWindow, maxTokens int, temperature float64) OrchestratorSettings {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return OrchestratorSettings{
		Model:         model,
		MaxRounds:     maxRounds,
		HistoryWindow: historyWindow,
		MaxTokens:     maxTokens,
		Temperature:   temperature,
	}
}
