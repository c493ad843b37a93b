// Package usecase holds the two session-level operations: cutting highlight
// clips out of a source video and composing the cut clips into one vertical
// shorts reel.
package usecase

import (
	"github.com/rs/zerolog"

	"github.com/shortsforge/shortsforge/internal/ports"
)

type Deps struct {
	Engine      ports.Engine
	Transcriber ports.Transcriber
	Log         zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }
