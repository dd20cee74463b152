package model

// DefaultExt is the output extension a figure gets when its block does not
// set one.
const DefaultExt = "pdf"

// Figure is the format-agnostic representation of a `figure` block: one
// invocable routine inside a figure script. The descriptor fields are fixed
// at load time and never mutated afterwards.
type Figure struct {
	// Name is the block label, unique within its script.
	Name string

	// Generator names the registered Go handler that renders the artifact.
	Generator string

	// OutName is the artifact base name, defaulting to Name.
	OutName string

	// Ext is the artifact file extension, defaulting to DefaultExt.
	Ext string

	FSInformation *FSInfo
}

// ArtifactName returns the file name this figure resolves to inside the
// output directory.
func (f *Figure) ArtifactName() string {
	return f.OutName + "." + f.Ext
}
