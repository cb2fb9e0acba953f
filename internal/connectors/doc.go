// Package connectors provides DocumentSource implementations that discover
// raw documentation files. The filesystem connector is the only one: the
// documentation set is prepared on disk before extraction runs.
package connectors
