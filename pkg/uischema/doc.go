// Package uischema loads UI overlays that adjust how operations are
// presented (titles, labels, placeholders, help text, widgets) without
// touching the operation registry. Overlays are YAML or JSON documents keyed
// by "<category>.<operation>" and are applied to built form models through
// Decorator.
package uischema
