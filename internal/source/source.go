package source

import (
	"net/http"

	"github.com/amberin/jobradar/internal/model"
)

// Policy documents how an adapter's failures reach the orchestrator.
// It is a property of the registration, not an implicit code path: strict
// adapters propagate transport/parse errors, lenient adapters degrade to an
// empty result. WeWorkRemotely is registered strict because a broken feed
// there should surface as an error, not vanish quietly.
type Policy string

const (
	PolicyStrict  Policy = "strict"
	PolicyLenient Policy = "lenient"
)

// Registration pairs an adapter with its declared failure policy.
type Registration struct {
	Adapter model.SourceAdapter
	Policy  Policy
}

// DefaultRegistry returns all built-in adapters with their policies, sharing
// one HTTP client.
func DefaultRegistry(client *http.Client) []Registration {
	return []Registration{
		{Adapter: NewRemoteOKAdapter(client), Policy: PolicyStrict},
		{Adapter: NewWeWorkRemotelyAdapter(client), Policy: PolicyStrict},
		{Adapter: NewRemotiveAdapter(client), Policy: PolicyLenient},
		{Adapter: NewJobicyAdapter(client), Policy: PolicyLenient},
	}
}
