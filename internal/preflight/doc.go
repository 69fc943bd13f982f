// Package preflight provides readiness checks for the filesystem paths and
// remote endpoints capcorpus depends on.
//
// These checks run in two contexts:
//   - fetch calls RunAll before touching the network and aborts when any
//     check fails, so a missing key or an unwritable data directory surfaces
//     before quota is spent.
//   - The CLI "capcorpus check" command prints every result.
package preflight
