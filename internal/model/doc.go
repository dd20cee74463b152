// Package model defines the format-agnostic representations of figure
// scripts: the Unit (a loaded script) and the Figure (one renderable block
// within it), plus the HCL decoding that produces them.
package model
