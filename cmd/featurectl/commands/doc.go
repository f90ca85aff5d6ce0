// Package commands defines the featurectl CLI, which drives the sample features from a terminal.
//
// Commands
//
//   - counter   Read counter commands from stdin and render the counter after each one
//   - items     Add items to the item list and print it
//   - nav       Print a navigation item
//
// # Implementation
//
// The root command installs the log, concurrency and configuration effect handlers
// before any subcommand runs; subcommands open stores on that context and every
// handler is closed once the command returns.
package commands
