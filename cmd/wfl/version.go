package main

// versionString is the driver's self-reported version (spec.md §6
// `--version`). Bumped by hand; there is no build-time stamping step.
const versionString = "wfl 0.1.0"
