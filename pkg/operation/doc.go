// Package operation defines admin operations and the UI hints attached to
// their parameters. An Operation pairs an ordered parameter list with a typed
// handler; New binds the handler's argument struct to the parameter list so
// arity and field types are checked once, at construction time.
package operation
