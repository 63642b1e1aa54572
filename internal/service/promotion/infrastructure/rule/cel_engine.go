// internal/service/promotion/infrastructure/rule/cel_engine.go
package rule

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"
)

// CELRuleEngine 是 domain.RuleEngine 的 CEL 实现。
// 表达式可以引用 subtotal (double) 和 now (timestamp)，
// 例如 `subtotal >= 50.0 && now.getDayOfWeek() != 0`。
// 编译结果按表达式缓存，同一条规则只编译一次。
type CELRuleEngine struct {
	env      *cel.Env
	mu       sync.RWMutex
	programs map[string]cel.Program
}

// NewCELRuleEngine 创建规则引擎并声明表达式可用的变量。
func NewCELRuleEngine() (*CELRuleEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("subtotal", cel.DoubleType),
		cel.Variable("now", cel.TimestampType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &CELRuleEngine{env: env, programs: make(map[string]cel.Program)}, nil
}

// Eval 对资格表达式求值，表达式必须返回布尔值。
func (e *CELRuleEngine) Eval(expr string, subtotal decimal.Decimal, now time.Time) (bool, error) {
	prg, err := e.program(expr)
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(map[string]any{
		"subtotal": subtotal.InexactFloat64(),
		"now":      now,
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate eligibility rule: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("eligibility rule did not evaluate to bool, got %T", out.Value())
	}
	return result, nil
}

func (e *CELRuleEngine) program(expr string) (cel.Program, error) {
	e.mu.RLock()
	prg, ok := e.programs[expr]
	e.mu.RUnlock()
	if ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid eligibility rule: %w", issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule program: %w", err)
	}

	e.mu.Lock()
	e.programs[expr] = prg
	e.mu.Unlock()
	return prg, nil
}
