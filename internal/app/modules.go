package app

import (
	"github.com/agobeyn/figaro/internal/registry"

	"github.com/agobeyn/figaro/modules/fetch"
	"github.com/agobeyn/figaro/modules/scatter"
	"github.com/agobeyn/figaro/modules/sine"
)

// coreModules is the built-in generator set registered when the caller does
// not inject its own.
var coreModules = []registry.Module{
	&sine.Module{},
	&scatter.Module{},
	&fetch.Module{},
}
