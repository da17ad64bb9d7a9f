package entities

// ReleaseNote is the markdown document produced by the language model.
type ReleaseNote struct {
	Repository RepositoryRef
	Markdown   string
}
