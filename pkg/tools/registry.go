package tools

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
)

var ErrUnknownTool = errors.New("unknown tool")

// State — то, что инструменты успели узнать за один запрос. nil значит "ещё не вызывался".
type State struct {
	ConversionRate  *float64
	ConvertedAmount *float64
}

// ExecutorFunc выполняет вызов инструмента и возвращает текст, который уйдёт модели.
type ExecutorFunc func(ctx context.Context, state *State, args json.RawMessage) (string, error)

type tool struct {
	definition llms.FunctionDefinition
	exec       ExecutorFunc
}

// Registry хранит инструменты по имени. Заполняется при старте и дальше только читается.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]tool),
	}
}

func (r *Registry) Register(definition llms.FunctionDefinition, exec ExecutorFunc) error {
	if definition.Name == "" {
		return errors.New("tool name is required")
	}
	if exec == nil {
		return errors.New("executor is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[definition.Name]; exists {
		return errors.Errorf("tool %s already registered", definition.Name)
	}
	r.tools[definition.Name] = tool{definition: definition, exec: exec}
	r.order = append(r.order, definition.Name)
	return nil
}

func (r *Registry) Execute(ctx context.Context, state *State, name string, args json.RawMessage) (string, error) {
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return "", errors.Wrap(ErrUnknownTool, name)
	}
	return t.exec(ctx, state, args)
}

// Definitions отдаёт описания инструментов для llms.WithTools в порядке регистрации.
func (r *Registry) Definitions() []llms.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]llms.Tool, 0, len(r.order))
	for _, name := range r.order {
		def := r.tools[name].definition
		defs = append(defs, llms.Tool{Type: "function", Function: &def})
	}
	return defs
}
