// Package domain defines core data models, sentinel errors and interfaces shared
// across paramseal. It contains plain types (wire/state) and contracts only.
package domain
