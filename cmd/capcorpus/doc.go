// Package main hosts the capcorpus CLI entrypoint and command graph.
//
// The Cobra command tree harvests caption pairs from a YouTube channel,
// labels them into a training corpus, and inspects the results. It
// centralizes configuration resolution, the data directory lock, run
// bookkeeping, and logging setup so subcommands can focus on their output.
//
// Keep this package lean: new behavior belongs in the internal packages and
// is surfaced here through commands or flags.
package main
