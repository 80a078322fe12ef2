// Package seal resolves the recipient key and turns secret values into job
// parameters.
package seal
