//go:build !dnfdebug

package types

const debugAssertions = false
