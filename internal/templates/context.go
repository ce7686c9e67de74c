package templates

// Context is the data tree handed to a render: strings, booleans, numbers,
// nested Contexts and ordered []Context lists.
type Context = map[string]any

// DefaultContext returns the values every page is rendered with unless the
// route overrides them. A new map is built on each call.
func DefaultContext() Context {
	return Context{
		"header": Context{
			"hostname": "the_hostname",
			"git_hash": "89abcdef",
		},
		"footer": Context{
			"version":  "2001.01.01",
			"git_hash": "89abcdef",
		},
		"hostname":    "the_hostname",
		"showControl": true,
		"showLogout":  true,
		"SSID":        "the_ssid",
	}
}

// Merge returns a new Context holding defaults overlaid with override.
// The merge is shallow: a key present in override replaces the default
// value wholesale, nested maps included. Neither argument is modified.
func Merge(defaults, override Context) Context {
	out := make(Context, len(defaults)+len(override))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
