// Package commands defines the paramseal CLI and wires dependencies for subcommands.
//
// Commands
//
//   - keygen       Generate a recipient key pair and store it under a passphrase
//   - pubkey       Print the stored public key (base64 SPKI or PEM)
//   - fingerprint  Print the stored public key's fingerprint
//   - seal         Seal a secret parameter value for the backend
//   - inspect      Print the structure of an envelope without opening it
//
// # Configuration
//
// Every flag can also be set through the environment as PARAMSEAL_<FLAG>, with
// dashes turned into underscores (PARAMSEAL_KEY_URL, PARAMSEAL_PASSPHRASE).
// Settings in <home>/config.yaml apply unless the flag or its variable is set.
//
// # Implementation
//
// The root command resolves configuration and builds the dependency graph
// (keystore, services, key fetcher, sealer) before any subcommand runs.
// Results go to stdout and diagnostics to stderr, so `paramseal seal` can be
// piped straight into a job definition.
package commands
