// Package api defines the capability interfaces the client needs from the
// remote workspace service, and the single concrete HTTP adapter that
// implements them against the hosted worker API. Higher layers depend on the
// interfaces only, so tests substitute fakes and no parallel backend
// implementations are needed.
package api
