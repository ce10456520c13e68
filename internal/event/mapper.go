// Package event translates the deployment provider's event taxonomy into
// the internal vocabulary and produces human-readable summaries. Everything
// here is pure: no I/O, no side effects.
package event

// Payload is the structured webhook body sent by the deployment provider.
type Payload struct {
	Type        string       `json:"type"`
	Project     *Project     `json:"project,omitempty"`
	Deployment  *Deployment  `json:"deployment,omitempty"`
	Environment *Environment `json:"environment,omitempty"`
}

// Project identifies the project an event belongs to.
type Project struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Deployment carries the deployment-specific fields of an event.
type Deployment struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Environment names the deployment target.
type Environment struct {
	Name string `json:"name,omitempty"`
}

// Kind is a normalized internal event-kind identifier.
type Kind string

// Known event kinds. An unrecognized provider type passes through as
// Kind(providerType) rather than erroring, so new provider events degrade to
// an unstyled notification downstream instead of being dropped.
const (
	KindDeploymentQueued  Kind = "deployment_queued"
	KindBuilding          Kind = "building"
	KindDeploying         Kind = "deploying"
	KindDeploymentSuccess Kind = "deployment_success"
	KindDeploymentFailed  Kind = "deployment_failed"
	KindServiceCrash      Kind = "service_crash"
	KindDeploymentRemoved Kind = "deployment_removed"
)

// DefaultEnvironment is assumed when the payload names no environment.
const DefaultEnvironment = "production"

// Normalize maps a provider event type to the internal vocabulary.
func Normalize(providerType string) Kind {
	switch providerType {
	case "deployment.queued":
		return KindDeploymentQueued
	case "deployment.building":
		return KindBuilding
	case "deployment.deploying":
		return KindDeploying
	case "deployment.success":
		return KindDeploymentSuccess
	case "deployment.failed":
		return KindDeploymentFailed
	case "deployment.crashed":
		return KindServiceCrash
	case "deployment.removed":
		return KindDeploymentRemoved
	default:
		// Identity passthrough for forward compatibility.
		return Kind(providerType)
	}
}

// Summarize produces the human-readable message for a payload.
//
// The switch is over the ORIGINAL provider type, not the normalized kind,
// so passthrough events still get a usable generic message.
func Summarize(p Payload) string {
	env := DefaultEnvironment
	if p.Environment != nil && p.Environment.Name != "" {
		env = p.Environment.Name
	}

	switch p.Type {
	case "deployment.queued":
		return "Deployment queued in " + env
	case "deployment.building":
		return "Building in " + env
	case "deployment.deploying":
		return "Deploying to " + env
	case "deployment.success":
		msg := "Successfully deployed to " + env
		if p.Deployment != nil && p.Deployment.URL != "" {
			msg += " at " + p.Deployment.URL
		}
		return msg
	case "deployment.failed":
		return "Deployment failed in " + env
	case "deployment.crashed":
		return "Service crashed in " + env
	case "deployment.removed":
		return "Deployment removed in " + env
	default:
		return p.Type + " in " + env
	}
}

// Map normalizes the event type and builds its summary in one step.
func Map(p Payload) (Kind, string) {
	return Normalize(p.Type), Summarize(p)
}
