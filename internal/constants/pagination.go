package constants

// Post list limits
const (
	MinPostLimit = 1
	MaxPostLimit = 100
)
