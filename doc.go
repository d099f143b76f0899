// Package atlas packs many small rectangular images ("sprites") into a
// small number of larger square textures ("atlases"), minimizing the
// number of distinct textures a renderer has to bind.
//
// # Overview
//
// atlas is built for workloads that allocate and release small image
// regions of arbitrary size throughout a program's lifetime, such as
// dynamically generated labels and icons. Space on each surface is
// managed by a binary space-partition tree: free leaves are split on
// demand, handed out on allocation, and reclaimed on release.
//
// # Quick Start
//
//	import "github.com/gogpu/atlas"
//
//	m := atlas.NewManager(atlas.ManagerConfig{Size: 1024})
//
//	node, err := m.Allocate(64, 32)
//	if err != nil {
//	    // request exceeds the configured surface size
//	}
//
//	// Draw into node.Rect() on node.Surface().Canvas(), sample the
//	// region through node.Texture(), and hand the space back when done:
//	m.Release(node)
//
// # Allocation Modes
//
// Three entry points cover different client patterns:
//   - Allocate: synchronous, returns the node or an error immediately.
//   - AllocateAsync: returns an already-settled Allocation future, for
//     callers that consume results asynchronously.
//   - AllocateBatch + Solve: queue many requests, then resolve them
//     together in submission order.
//
// # Boundary Interfaces
//
// atlas never draws client pixels itself. The drawing surface and the
// GPU texture handle are consumed through the Canvas, Texture,
// CanvasProvider, and TextureBinder interfaces; image-backed defaults
// are provided for software use and testing.
//
// # Limitations
//
// Splits are permanent: a released leaf is reusable only at its exact
// tree position, and surfaces are never defragmented or repacked. All
// surfaces share one configured power-of-two size; a request larger
// than that size fails rather than growing the surface.
package atlas

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
