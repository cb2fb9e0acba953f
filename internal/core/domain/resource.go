package domain

// Resource is a named, readable piece of reference text.
type Resource struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
	Text        string
}
