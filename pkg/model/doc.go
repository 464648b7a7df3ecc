// Package model defines the typed form model consumed by renderers. Each
// FormModel describes one registry operation; its Fields follow the
// operation's params one-to-one and in order, so Field.Position doubles as
// the argument index when a submission is decoded. Input params carry their
// InputKind; select params carry their Options with the empty placeholder
// flagged. The curated UIHints map (placeholder, helpText, widget, inputType,
// cssClass, hideLabel, ...) surfaces renderer-facing directives, usually
// supplied by uischema overlays.
package model
