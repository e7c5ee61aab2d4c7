package collision

import (
	"errors"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/gallery-walk/internal/logger"
	"github.com/Faultbox/gallery-walk/internal/scene"
	"github.com/Faultbox/gallery-walk/pkg/math"
)

// ErrNoShapecast is returned when the index factory yields no index able to
// answer shapecast queries.
var ErrNoShapecast = errors.New("collision: spatial index does not support shapecast")

// IndexFactory builds a spatial index over merged collider geometry.
type IndexFactory func(g *scene.Geometry) SpatialIndex

// BVHFactory is the default IndexFactory.
func BVHFactory(g *scene.Geometry) SpatialIndex {
	return NewBVH(g)
}

// Builder flattens a scene subtree into a single world-space collider.
type Builder struct {
	newIndex IndexFactory
	log      *zap.Logger
}

// NewBuilder returns a builder using factory, or the BVH when nil.
func NewBuilder(factory IndexFactory) *Builder {
	if factory == nil {
		factory = BVHFactory
	}
	return &Builder{newIndex: factory, log: logger.Named("collision")}
}

// Build merges every drawable node under root that is not flagged
// non-physical (a flagged node's whole subtree is skipped). Each geometry is
// cloned, baked to world space and stripped to positions; the clones are
// disposed once merged. An empty scene yields a zero-triangle collider.
// The source graph is only read, apart from refreshing world matrices.
func (b *Builder) Build(root *scene.Node) (*Collider, error) {
	start := time.Now()
	root.UpdateMatrixWorld()

	var clones []*scene.Geometry
	skipped := 0
	root.Walk(func(n *scene.Node) bool {
		if n.UserData.NonPhysical {
			skipped++
			return false
		}
		if n.Geometry == nil || n.Geometry.Disposed() {
			return true
		}
		if err := n.Geometry.Validate(); err != nil {
			b.log.Warn("skipping malformed geometry", zap.String("node", n.Name), zap.Error(err))
			return true
		}
		c := n.Geometry.Clone()
		c.ApplyMatrix(n.MatrixWorld())
		c.StripAttributes()
		clones = append(clones, c)
		return true
	})

	merged := scene.Merge(clones)
	for _, c := range clones {
		c.Dispose()
	}

	index := b.newIndex(merged)
	if isNil(index) {
		merged.Dispose()
		return nil, ErrNoShapecast
	}

	col := &Collider{
		Geometry:    merged,
		MatrixWorld: math.Identity(),
		Index:       index,
	}

	b.log.Info("collider built",
		zap.Int("meshes", len(clones)),
		zap.Int("triangles", col.TriangleCount()),
		zap.Int("nonphysical_subtrees", skipped),
		zap.Duration("took", time.Since(start)))

	return col, nil
}

// isNil also catches a nil pointer wrapped in the interface.
func isNil(ix SpatialIndex) bool {
	if ix == nil {
		return true
	}
	v := reflect.ValueOf(ix)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
