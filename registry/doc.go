// Package registry serves tools over the MCP JSON-RPC protocol.
//
// A Registry holds local tools with their handlers and answers initialize,
// tools/list and tools/call over stdio, streamable HTTP or SSE.
// RegisterCompendium installs the compendium tools, which drive a
// browser.Browser:
//
//   - compendium_open: open a category, optionally with presets
//   - compendium_query: edit the active filter and read results
//   - compendium_filter_data: a category's default filter and options
//   - compendium_traits: fuzzy trait option suggestions
//   - compendium_reset_filters: restore the default filter
//   - compendium_load_more: widen the result window
//   - compendium_packs: list or toggle pack load settings
//   - compendium_table: export results as roll table rows
//
// Tool arguments are decoded strictly and validated; invalid arguments map
// to the JSON-RPC invalid params code.
//
// Example usage:
//
//	reg := registry.New(registry.Config{
//	    ServerInfo: registry.ServerInfo{
//	        Name:    "compendium",
//	        Version: "1.0.0",
//	    },
//	})
//	if err := registry.RegisterCompendium(reg, b, "1.0.0"); err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	reg.Start(ctx)
//	defer reg.Stop()
//
//	registry.ServeStdio(ctx, reg, os.Stdin, os.Stdout)
package registry
