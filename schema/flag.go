package schema

// Component is a named slice of a repository defined in codecov.yml.
type Component struct {
	ComponentID string `json:"component_id"`
	Name        string `json:"name"`
}

// Flag is an upload flag.
type Flag struct {
	FlagName string `json:"flag_name"`
}

// ParseComponent decodes a Component.
func ParseComponent(data []byte) (Component, error) {
	return decode[Component]("component", data)
}

// ParseFlag decodes a Flag.
func ParseFlag(data []byte) (Flag, error) {
	return decode[Flag]("flag", data)
}
