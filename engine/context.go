package engine

import "io/fs"

// Context locates the item templates and the directory outputs are written to.
type Context struct {
	TmplFS     fs.FS
	OutputRoot string
}

func NewContext(tmplFS fs.FS, outputRoot string) Context {
	return Context{
		TmplFS:     tmplFS,
		OutputRoot: outputRoot,
	}
}
