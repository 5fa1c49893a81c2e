package models

// Validate reports an error when title or contents is missing.
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// Apply replaces the mutable fields of p with those of patch.
func (p *Post) Apply(patch Post) {
	p.Title = patch.Title
	p.Contents = patch.Contents
}
