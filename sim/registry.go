package sim

// Factory registries let sim/xmlio and sim/scenario build capability
// plugins by the type name string persisted in the XML document (spec.md
// §6) without sim importing sim/interactions, sim/globals, sim/locals, or
// sim/systems directly. Each implementation package registers its
// constructors from an init() in a register.go file, the same
// cycle-breaking pattern the teacher uses for sim/kv and sim/latency.
var (
	InteractionFactories = map[string]func(params map[string]string) Interaction{}
	GlobalFactories      = map[string]func(params map[string]string) Global{}
	LocalFactories       = map[string]func(params map[string]string) Local{}
	SystemFactories      = map[string]func(params map[string]string) System{}
)
