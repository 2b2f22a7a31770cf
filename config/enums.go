package config

//go:generate go tool go-enum --marshal --names

// Specification of requested output type.
// ENUM(yaml, json, files)
type OutputFmt int

// Ext returns file extension for formats producing single document.
func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtYaml:
		return ".yaml"
	case OutputFmtJson:
		return ".json"
	case OutputFmtFiles:
		return ""
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
