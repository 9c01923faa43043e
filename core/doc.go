// Package core implements a reflective object-production engine. An Invoker
// resolves a method by name on a class or an object instance, converts raw
// arguments to the parameter types and dispatches the call; the Runner and
// Producer strategies drive it for one-shot setup side effects and for
// producing values in singleton or prototype mode respectively.
package core
