package config

// MergeLayers composes two partial layers into one, with b taking precedence.
// Resolve([a, b]) and Resolve([MergeLayers(a, b)]) agree on every rule
// setting, which is what lets callers pre-flatten layer chains.
func MergeLayers(a, b Layer) Layer {
	out := Layer{Name: a.Name + "+" + b.Name, Rules: map[string]RuleConfig{}}
	for id, rc := range a.Rules {
		out.Rules[id] = rc
	}
	for id, rc := range b.Rules {
		base, ok := out.Rules[id]
		if !ok {
			out.Rules[id] = rc
			continue
		}
		if rc.Enabled != nil {
			base.Enabled = rc.Enabled
		}
		if rc.Severity != nil {
			base.Severity = rc.Severity
		}
		if rc.Parameters != nil {
			base.Parameters = rc.Parameters
		}
		out.Rules[id] = base
	}
	out.Excludes = append(append([]string{}, a.Excludes...), b.Excludes...)
	out.FailFast = a.FailFast
	if b.FailFast != nil {
		out.FailFast = b.FailFast
	}
	return out
}
