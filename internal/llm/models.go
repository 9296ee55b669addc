package llm

const DefaultModel = "gpt-3.5-turbo"

var DefaultAllowedModels = []string{"gpt-4", "gpt-4o", "gpt-3.5-turbo"}

// Models is the whitelist of model identifiers callers may request.
type Models struct {
	allowed map[string]struct{}
	def     string
}

func NewModels(def string, allowed []string) Models {
	if def == "" {
		def = DefaultModel
	}
	if len(allowed) == 0 {
		allowed = DefaultAllowedModels
	}
	m := Models{allowed: make(map[string]struct{}, len(allowed)), def: def}
	for _, id := range allowed {
		m.allowed[id] = struct{}{}
	}
	return m
}

// Select returns requested when it is whitelisted, else the default model.
func (m Models) Select(requested string) string {
	if _, ok := m.allowed[requested]; ok {
		return requested
	}
	return m.def
}

func (m Models) Default() string { return m.def }
