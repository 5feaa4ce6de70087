// Package main provides the CLI entrypoint for propchain.
//
// propchain scans Go packages for reactive.WhenChanged, WhenChanging and
// bind call sites, plans the property chains they request and writes the
// typed path tables the runtime dispatches to:
//   - gen: analyze, plan and write *.partial.g.go / *.extensions.g.go files
//   - plan: print the generation plan without writing anything
//   - version: print the tool version
package main

import "propchain/cmd/propchain/internal/command"

func main() {
	command.Execute()
}
