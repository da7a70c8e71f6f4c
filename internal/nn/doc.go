// Package nn implements the StaticVectors layer and its collaborators:
//   - Parameter: trainable parameters with an accumulating gradient buffer
//   - StaticVectors: static embedding lookup + learned linear projection
//   - WordIDs: document batch → padded id sequence adapter
//   - Xavier / LSUVInit: weight initializers
//
// The embedding table itself is frozen; only the projection is trained.
package nn
