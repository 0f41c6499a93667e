package attachment

// Processor transforms one source file into one stored variant. A fresh
// processor is created per format from the original source, so formats are
// independent transforms and never chained.
type Processor interface {
	// Invoke applies a named operation with positional arguments.
	Invoke(op string, args ...any) error
	// Save persists the current result to the destination path.
	Save(path string) error
}

// ProcessorFactory creates a Processor reading from the given source path.
type ProcessorFactory func(sourcePath string) (Processor, error)
