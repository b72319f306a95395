package disease

import (
	"go.uber.org/zap"

	"agrisense/internal/logging"
)

// Engine evaluates a rule cascade.
type Engine struct {
	rules  []Rule
	logger *zap.Logger
}

// NewEngine creates an engine over rules. Nil rules select DefaultRules.
func NewEngine(rules []Rule, logger *zap.Logger) *Engine {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{rules: rules, logger: logging.OrNop(logger).Named("disease")}
}

// Diagnose walks the rules in order and returns the first match. The
// result has at most one element; it is a slice so callers need not change
// if rules ever report concurrent conditions.
func (e *Engine) Diagnose(ix Indices) []Diagnosis {
	for _, r := range e.rules {
		if d, ok := r.Match(ix); ok {
			e.logger.Debug("rule fired",
				zap.String("rule", r.Name),
				zap.String("diagnosis", d.Name),
				zap.Float64("score", d.Score))
			return []Diagnosis{d}
		}
	}
	return nil
}
