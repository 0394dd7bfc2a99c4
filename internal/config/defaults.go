package config

// Default configuration values.
const (
	DefaultOutput          = "auto"
	DefaultColor           = "auto"
	DefaultTabWidth        = 4
	DefaultIncludeComments = true
	DefaultLogLevel        = "warn"
)

// OutputModes lists the accepted values of the output setting.
var OutputModes = []string{"auto", "text", "table", "json", "yaml", "dump"}

// ColorModes lists the accepted values of the color setting.
var ColorModes = []string{"auto", "always", "never"}

// ApplyDefaults fills unset fields of a ProjectConfig.
// IncludeComments has no unset state and is left alone.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	if c.TabWidth == 0 {
		c.TabWidth = DefaultTabWidth
	}
}
