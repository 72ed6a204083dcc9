package driven

// ConfigStore persists settings under dotted keys such as "llm.provider".
// The first segment names a section; backends may store sections as tables.
type ConfigStore interface {
	// String returns the value at key, or "" when it is unset or not a string.
	String(key string) string

	// Int returns the value at key and whether an integer is stored there.
	// A stored zero is reported with ok set.
	Int(key string) (int, bool)

	// Set stores value at key and persists it before returning.
	Set(key string, value any) error

	// Path identifies where the settings live.
	Path() string
}
