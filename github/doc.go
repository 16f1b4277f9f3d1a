// Package github models GitHub resources as a graph of immutable
// handles. A handle is a lightweight value carrying exactly the
// identity needed to derive its REST endpoint from its ownership
// chain and to navigate back to its parent: Client resolves an
// Account (Organization or User), an Account resolves a Repository,
// and a Repository resolves its git objects (Commit, Tree, Blob,
// Reference) and issue resources (Issue, Comment).
//
// Handles hold their parent by value, parent-to-child ownership only;
// no handle ever points back outward past its direct parent, so
// sharing and copying handles across call sites is always safe.
// Every remote fetch returns a fresh handle; mutation methods write
// to the remote and leave local state untouched, so the remote stays
// the source of truth.
package github
