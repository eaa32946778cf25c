// Package service wires MCP transports to the tour domain handlers.
//
// It knows how to run MCP over stdio or streamable HTTP and delegates meaning
// to the domain package.
package service
