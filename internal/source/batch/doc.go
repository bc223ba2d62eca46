// Package batch splits an id set into fixed-size chunks for backends whose
// storage limits how many ids one statement may carry.
//
// The view-model always submits the whole selection in a single UpdateMany
// call; chunking happens behind that call, inside the backend.
package batch
