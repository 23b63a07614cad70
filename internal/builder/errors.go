package builder

import "errors"

var (
	errNoRepo      = errors.New("builder: no repository given")
	errNoLanguages = errors.New("builder: no languages requested")
)
