//go:build dnfdebug

package types

// debugAssertions makes builders check the invariants of every union and
// intersection they intern. Enable with -tags dnfdebug.
const debugAssertions = true
