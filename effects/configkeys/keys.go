// Package configkeys names the runtime settings that are resolved through the binding effect.
package configkeys

const (
	delimiter = "."

	ConfigPrefix = "config"

	ConfigStorePrefix = ConfigPrefix + delimiter + "store"

	// ConfigStoreActionBufferSize sizes the queue of actions waiting for the reducer.
	ConfigStoreActionBufferSize = ConfigStorePrefix + delimiter + "action_buffer_size"
	// ConfigStoreEffectBufferSize sizes the queue of effects waiting to be spawned.
	ConfigStoreEffectBufferSize = ConfigStorePrefix + delimiter + "effect_buffer_size"
	// ConfigStoreObserverBufferSize sizes each observer channel.
	ConfigStoreObserverBufferSize = ConfigStorePrefix + delimiter + "observer_buffer_size"

	DependenciesPrefix = "dependencies"

	// DependenciesContext holds the dependencies.Context of a scope.
	DependenciesContext = DependenciesPrefix + delimiter + "context"

	// DependencyValuePrefix prefixes every overridden dependency key.
	DependencyValuePrefix = DependenciesPrefix + delimiter + "value"
)

// DependencyValue is the binding key under which an override for the named dependency lives.
func DependencyValue(name string) string {
	return DependencyValuePrefix + delimiter + name
}
