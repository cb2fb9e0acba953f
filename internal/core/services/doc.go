// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The live corpus is owned by Library. Every read goes through
// Library.Current, which hands out the corpus pointer in force at the
// time of the call; extraction and reloads swap a new pointer in.
package services
