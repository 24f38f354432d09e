// Package algebra generates and composes the finite groups the catalog serves:
// cyclic Z_n, dihedral D_n and symmetric S_n.
//
// The package is pure. Every function is synchronous, deterministic and free of
// shared state, so results can be cached or recomputed at will.
//
// Components:
//
//   - Enumerate lists a group's elements in canonical order. That order is the
//     row and column order of the Cayley table and never changes for a given
//     (family, order).
//   - Compose multiplies two element labels under the family's operation.
//   - Build fills the full Cayley table and fixes the identity.
//   - ClassifyCycles buckets symmetric-group elements by cycle type.
//   - Stepper / Trace fold a user-chosen element sequence left to right,
//     halting on the first label that is not a member.
//
// Element labels:
//
//	Cyclic     "0" .. "n-1"
//	Dihedral   "e", "r1" .. "r(n-1)", "s", "sr1" .. "sr(n-1)"
//	Symmetric  disjoint-cycle notation, fixed points omitted, identity "()"
//
// Symmetric groups are capped at MaxSymmetricOrder. Requests beyond the cap fail
// with ErrCapacityExceeded; they never produce a placeholder table.
package algebra
