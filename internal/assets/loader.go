package assets

// AssetLoader loads the two halves of a theme: a stylesheet copied to
// styles/site.css and the page templates every page is rendered with.
type AssetLoader interface {
	// LoadStyle returns the CSS of a style, named without the .css extension.
	// Errors wrap ErrStyleNotFound or ErrInvalidAssetName.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet returns the four page templates of a template set.
	// Errors wrap ErrTemplateSetNotFound, ErrIncompleteTemplateSet or
	// ErrInvalidAssetName.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
