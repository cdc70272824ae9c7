package filesystem

import (
	"github.com/arthur-debert/relink/pkg/types"
	"github.com/spf13/afero"
)

// NewOS returns the real filesystem behind the types.FS interface.
func NewOS() types.FS {
	return NewAferoFS(afero.NewOsFs())
}
