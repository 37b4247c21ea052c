package manifest

// Document is the decoded form of a manifest command.
type Document struct {
	Name     string     `yaml:"name"`
	Aliases  []string   `yaml:"aliases,omitempty"`
	Run      string     `yaml:"run,omitempty"`
	Complete []string   `yaml:"complete,omitempty"`
	Repeat   bool       `yaml:"repeat,omitempty"`
	Flags    []Flag     `yaml:"flags,omitempty"`
	Commands []Document `yaml:"commands,omitempty"`
}

// Flag is the decoded form of a manifest flag.
//
// A flag binds a value when Option is set or Values is not empty. Next
// lists the characters that may follow a one-character flag in a cluster.
// When is an expression deciding whether the flag is recognized for a
// caller.
type Flag struct {
	Name   string   `yaml:"name"`
	Option bool     `yaml:"option,omitempty"`
	Values []string `yaml:"values,omitempty"`
	Next   string   `yaml:"next,omitempty"`
	When   string   `yaml:"when,omitempty"`
}

// Sample returns the manifest written by the init command.
func Sample() Document {
	return Document{
		Name: "app",
		Commands: []Document{
			{
				Name:     "list",
				Aliases:  []string{"ls"},
				Complete: []string{"files", "dirs"},
				Flags: []Flag{
					{Name: "a", Next: "l"},
					{Name: "l", Next: "a"},
					{Name: "sort", Values: []string{"name", "size", "time"}},
				},
				Run: `"listing " + join(args, " ") + (flags.sort != nil ? " by " + flags.sort : "")`,
			},
			{
				Name: "service",
				Commands: []Document{
					{Name: "start", Run: `"starting " + path`},
					{
						Name: "stop",
						Flags: []Flag{
							{Name: "force", When: `identity.HasRole("admin")`},
						},
						Run: `flags.force == true ? "stopping now" : "stopping"`,
					},
				},
			},
			{Name: "echo", Repeat: true, Flags: []Flag{{Name: "v"}}},
		},
	}
}
