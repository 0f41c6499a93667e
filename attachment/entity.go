package attachment

// Entity is the owner record a file is attached to. The manager reads the
// naming attributes off it to derive the base file name.
type Entity interface {
	// PrimaryKey returns the names of the primary key attributes, used as
	// the default naming attributes.
	PrimaryKey() []string
	// AttributeValue returns the current value of the named attribute, or
	// an empty string when it has no value yet.
	AttributeValue(name string) string
}

// Record is a map-backed Entity for callers without a richer model layer.
type Record struct {
	Keys  []string
	Attrs map[string]string
}

func (r Record) PrimaryKey() []string { return r.Keys }

func (r Record) AttributeValue(name string) string { return r.Attrs[name] }
