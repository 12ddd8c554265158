package main

import (
	"github.com/printpath/pathcore/comb"
	"github.com/printpath/pathcore/shape"
)

// singleExtruderLayer is the simplest possible comb.PartLayer: every train
// sees the same fixed set of parts, because this demo never models more than
// one extruder at a time.
type singleExtruderLayer struct {
	outline shape.Shape
}

func (l singleExtruderLayer) PartsOutline(comb.Extruder) shape.Shape {
	return l.outline
}
