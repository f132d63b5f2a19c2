package renderer

import (
	"cmp"
	"slices"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
)

// drawOrder returns mesh indices with opaque meshes first, in model order,
// then transparent meshes sorted far to near from eye.
func drawOrder(meshes []gpuMesh, model math.Mat4, eye math.Vec3) []int {
	order := make([]int, 0, len(meshes))
	var transparent []int
	for i := range meshes {
		if meshes[i].transparent {
			transparent = append(transparent, i)
		} else {
			order = append(order, i)
		}
	}

	dist := make(map[int]float32, len(transparent))
	for _, i := range transparent {
		dist[i] = model.TransformVec3(meshes[i].centroid).Distance(eye)
	}
	slices.SortStableFunc(transparent, func(a, b int) int {
		return cmp.Compare(dist[b], dist[a])
	})
	return append(order, transparent...)
}
